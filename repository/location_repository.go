package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raj9661/paniwalaa-backend/models"
)

// LocationRepository defines data access for fulfillment locations and
// pincode mappings.
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.FulfillmentLocation, error)
	// FindActiveByPincode resolves the active location serving a pincode.
	// gorm.ErrRecordNotFound covers both "never mapped" and "mapped to an
	// inactive store".
	FindActiveByPincode(ctx context.Context, pincode string) (*models.FulfillmentLocation, error)
	FindMapping(ctx context.Context, pincode string) (*models.PincodeMapping, error)
	CreateMapping(ctx context.Context, mapping *models.PincodeMapping) error
	DeleteMapping(ctx context.Context, pincode string) error
}

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository.
func NewGormLocationRepository(db *gorm.DB) LocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID retrieves a location by id.
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.FulfillmentLocation, error) {
	var location models.FulfillmentLocation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// FindActiveByPincode joins the mapping with its location, requiring active.
func (r *GormLocationRepository) FindActiveByPincode(ctx context.Context, pincode string) (*models.FulfillmentLocation, error) {
	var location models.FulfillmentLocation
	err := r.db.WithContext(ctx).
		Joins("JOIN pincode_mappings ON pincode_mappings.location_id = fulfillment_locations.id").
		Where("pincode_mappings.pincode = ? AND fulfillment_locations.active = ?", pincode, true).
		First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// FindMapping retrieves the raw mapping for a pincode regardless of the
// location's active flag.
func (r *GormLocationRepository) FindMapping(ctx context.Context, pincode string) (*models.PincodeMapping, error) {
	var mapping models.PincodeMapping
	if err := r.db.WithContext(ctx).Where("pincode = ?", pincode).First(&mapping).Error; err != nil {
		return nil, err
	}
	return &mapping, nil
}

// CreateMapping inserts a pincode mapping. The unique index on pincode
// rejects a second mapping for the same code.
func (r *GormLocationRepository) CreateMapping(ctx context.Context, mapping *models.PincodeMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

// DeleteMapping removes the mapping for a pincode.
func (r *GormLocationRepository) DeleteMapping(ctx context.Context, pincode string) error {
	result := r.db.WithContext(ctx).
		Where("pincode = ?", pincode).
		Delete(&models.PincodeMapping{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
