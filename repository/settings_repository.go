package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/raj9661/paniwalaa-backend/models"
)

// SettingsRepository loads the single site-wide settings aggregate. There is
// exactly one row; it is read once per order placement so every value used in
// a placement comes from the same snapshot.
type SettingsRepository interface {
	Load(ctx context.Context) (*models.SiteSettings, error)
	Save(ctx context.Context, settings *models.SiteSettings) error
}

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository.
func NewGormSettingsRepository(db *gorm.DB) SettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Load returns the settings row, creating a zero-valued one on first use.
func (r *GormSettingsRepository) Load(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.SiteSettings{}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save persists updated settings.
func (r *GormSettingsRepository) Save(ctx context.Context, settings *models.SiteSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
