package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a storefront customer. Authentication lives behind the API
// gateway; this service only needs identity and role.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(120);not null" json:"name"`
	Email     string         `gorm:"type:varchar(160);uniqueIndex;not null" json:"email"`
	Phone     string         `gorm:"type:varchar(20);index" json:"phone"`
	Role      string         `gorm:"type:varchar(32);not null;default:'customer'" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Address is a delivery address. The pincode decides which dark store
// serves the order.
type Address struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Line1     string         `gorm:"type:varchar(255);not null" json:"line1"`
	Line2     string         `gorm:"type:varchar(255)" json:"line2,omitempty"`
	City      string         `gorm:"type:varchar(80);not null" json:"city"`
	Pincode   string         `gorm:"type:varchar(6);not null;index" json:"pincode"`
	Floor     int            `gorm:"not null;default:0" json:"floor"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
