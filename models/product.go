package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable catalog item. All money fields are in paise.
type Product struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title           string    `gorm:"type:varchar(160);not null" json:"title"`
	PricePaise      int64     `gorm:"not null" json:"price_paise"`
	DepositPaise    int64     `gorm:"not null;default:0" json:"deposit_paise"` // per-unit refundable container deposit
	OneTimePurchase bool      `gorm:"not null;default:false" json:"one_time_purchase"`
	// Per-unit delivery commission override; nil falls back to the site default.
	CommissionPaise *int64         `json:"commission_paise,omitempty"`
	Active          bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
