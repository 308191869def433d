package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoType represents the type of discount a promo code provides.
type PromoType string

const (
	PromoTypePercentage PromoType = "percentage"
	PromoTypeFixed      PromoType = "fixed"
)

// PromoCode is a discount code. Codes are unique case-insensitively; all
// money fields are in paise. UsedCount only ever increases.
type PromoCode struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code             string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Type             PromoType `gorm:"type:varchar(20);not null" json:"type"`
	Value            int64     `gorm:"not null" json:"value"` // percentage points or fixed paise
	MinOrderPaise    int64     `gorm:"not null;default:0" json:"min_order_paise"`
	MaxDiscountPaise int64     `gorm:"not null;default:0" json:"max_discount_paise"` // 0 = uncapped
	MaxUses          int       `gorm:"not null;default:0" json:"max_uses"`           // 0 = unlimited
	MaxUsesPerUser   int       `gorm:"not null;default:0" json:"max_uses_per_user"`  // 0 = unlimited
	UsedCount        int       `gorm:"not null;default:0" json:"used_count"`
	ValidFrom        time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil       time.Time `gorm:"not null" json:"valid_until"`
	Active           bool      `gorm:"not null;default:true" json:"active"`
	// Empty means any role may redeem.
	AllowedRole string         `gorm:"type:varchar(32)" json:"allowed_role,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreatePromoRequest is the admin payload for creating a promo code.
type CreatePromoRequest struct {
	Code             string    `json:"code" binding:"required,min=3,max=64"`
	Type             PromoType `json:"type" binding:"required,oneof=percentage fixed"`
	Value            int64     `json:"value" binding:"required,gt=0"`
	MinOrderPaise    int64     `json:"min_order_paise" binding:"gte=0"`
	MaxDiscountPaise int64     `json:"max_discount_paise" binding:"gte=0"`
	MaxUses          int       `json:"max_uses" binding:"gte=0"`
	MaxUsesPerUser   int       `json:"max_uses_per_user" binding:"gte=0"`
	ValidFrom        time.Time `json:"valid_from" binding:"required"`
	ValidUntil       time.Time `json:"valid_until" binding:"required"`
	AllowedRole      string    `json:"allowed_role" binding:"max=32"`
}

// PreviewPromoRequest quotes a discount without redeeming the code.
type PreviewPromoRequest struct {
	Code             string `json:"code" binding:"required"`
	OrderAmountPaise int64  `json:"order_amount_paise" binding:"required,gt=0"`
}

// PreviewPromoResponse is the non-binding discount quote.
type PreviewPromoResponse struct {
	Code          string `json:"code"`
	DiscountPaise int64  `json:"discount_paise"`
	Rupees        string `json:"discount_rupees"`
}
