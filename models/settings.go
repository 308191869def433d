package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteSettings is the site-wide configuration aggregate. Exactly one row
// exists; it is loaded once per order placement rather than resolved
// field-by-field.
type SiteSettings struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	// Delivery surcharge per order for buildings with floors, in paise.
	FloorChargePaise int64 `gorm:"not null;default:0" json:"floor_charge_paise"`
	// Default per-unit delivery-partner commission, in paise.
	DefaultCommissionPaise int64 `gorm:"not null;default:0" json:"default_commission_paise"`
	// Extra per-unit commission when the location owner delivers their own order.
	SelfDeliveryBonusPaise int64     `gorm:"not null;default:0" json:"self_delivery_bonus_paise"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
