package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raj9661/paniwalaa-backend/models"
)

// PartnerRepository defines read access to delivery partners, used to decide
// whether a location owner self-delivers.
type PartnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryPartner, error)
	FindByPhone(ctx context.Context, phone string) (*models.DeliveryPartner, error)
	FindByEmail(ctx context.Context, email string) (*models.DeliveryPartner, error)
}

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository.
func NewGormPartnerRepository(db *gorm.DB) PartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID retrieves an active partner by id.
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryPartner, error) {
	var partner models.DeliveryPartner
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// FindByPhone retrieves an active partner by phone.
func (r *GormPartnerRepository) FindByPhone(ctx context.Context, phone string) (*models.DeliveryPartner, error) {
	var partner models.DeliveryPartner
	if err := r.db.WithContext(ctx).
		Where("phone = ? AND active = ?", phone, true).
		First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// FindByEmail retrieves an active partner by email.
func (r *GormPartnerRepository) FindByEmail(ctx context.Context, email string) (*models.DeliveryPartner, error) {
	var partner models.DeliveryPartner
	if err := r.db.WithContext(ctx).
		Where("email = ? AND active = ?", email, true).
		First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}
