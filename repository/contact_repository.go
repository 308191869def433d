package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/raj9661/paniwalaa-backend/models"
)

// ContactRepository stores contact-form submissions.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

// GormContactRepository implements ContactRepository using GORM.
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository.
func NewGormContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

// Create inserts a contact message.
func (r *GormContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}
