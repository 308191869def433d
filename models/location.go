package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentModel is how a fulfillment location is compensated.
type PaymentModel string

const (
	PaymentModelRent         PaymentModel = "rent"
	PaymentModelPerUnitShare PaymentModel = "per_unit_share"
)

// FulfillmentLocation is a dark store serving a fixed set of pincodes.
type FulfillmentLocation struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string       `gorm:"type:varchar(120);not null" json:"name"`
	Active       bool         `gorm:"not null;default:true" json:"active"`
	PaymentModel PaymentModel `gorm:"type:varchar(20);not null;default:'rent'" json:"payment_model"`
	// Per-unit earnings in paise; only meaningful under per_unit_share.
	PerUnitSharePaise int64  `gorm:"not null;default:0" json:"per_unit_share_paise"`
	OwnerName         string `gorm:"type:varchar(120)" json:"owner_name"`
	OwnerPhone        string `gorm:"type:varchar(20)" json:"owner_phone"`
	OwnerEmail        string `gorm:"type:varchar(160)" json:"owner_email"`
	// Explicit link to the owner's delivery-partner account, if any.
	OwnerPartnerID *uuid.UUID     `gorm:"type:uuid" json:"owner_partner_id,omitempty"`
	SelfDelivery   bool           `gorm:"not null;default:false" json:"self_delivery"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// PincodeMapping binds a 6-digit pincode to the location that serves it.
// At most one active mapping exists per pincode.
type PincodeMapping struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Pincode    string    `gorm:"type:varchar(6);uniqueIndex;not null" json:"pincode"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index" json:"location_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// DeliveryPartner is a registered delivery rider.
type DeliveryPartner struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(120);not null" json:"name"`
	Phone     string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Email     string         `gorm:"type:varchar(160);index" json:"email"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreatePincodeMappingRequest is the admin payload for mapping a pincode.
type CreatePincodeMappingRequest struct {
	Pincode    string    `json:"pincode" binding:"required,len=6,numeric"`
	LocationID uuid.UUID `json:"location_id" binding:"required"`
}

// ServiceabilityResponse is returned by the public pincode check.
type ServiceabilityResponse struct {
	Pincode      string `json:"pincode"`
	Deliverable  bool   `json:"deliverable"`
	LocationID   string `json:"location_id,omitempty"`
	LocationName string `json:"location_name,omitempty"`
}
