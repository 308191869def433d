package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a storefront contact-form submission.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Email     string    `gorm:"type:varchar(160);not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ContactRequest is the contact-form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Message string `json:"message" binding:"required,max=2000"`
}
