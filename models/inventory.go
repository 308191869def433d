package models

import (
	"time"

	"github.com/google/uuid"
)

// StockTransactionType classifies an inventory ledger entry.
type StockTransactionType string

const (
	StockTxnStockIn        StockTransactionType = "stock_in"
	StockTxnStockOut       StockTransactionType = "stock_out"
	StockTxnAdjustment     StockTransactionType = "adjustment"
	StockTxnOrderDeduction StockTransactionType = "order_deduction"
)

// LocationStock tracks current stock of one product at one location.
// A row must be created explicitly before the product can be sold there;
// mutation goes through the inventory repository only.
type LocationStock struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LocationID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_product,priority:1" json:"location_id"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_product,priority:2" json:"product_id"`
	CurrentStock      int       `gorm:"not null;default:0" json:"current_stock"`
	MaxCapacity       int       `gorm:"not null" json:"max_capacity"`
	LowStockThreshold int       `gorm:"not null;default:0" json:"low_stock_threshold"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// StockTransaction is an immutable inventory ledger entry. For every
// (location, product) pair the entries form a chain: StockAfter of one entry
// equals StockBefore of the next.
type StockTransaction struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LocationID  uuid.UUID            `gorm:"type:uuid;not null;index:idx_stock_txn_pair,priority:1" json:"location_id"`
	ProductID   uuid.UUID            `gorm:"type:uuid;not null;index:idx_stock_txn_pair,priority:2" json:"product_id"`
	Type        StockTransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Quantity    int                  `gorm:"not null" json:"quantity"` // signed delta
	StockBefore int                  `gorm:"not null" json:"stock_before"`
	StockAfter  int                  `gorm:"not null" json:"stock_after"`
	OrderID     *uuid.UUID           `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Note        string               `gorm:"type:varchar(255)" json:"note,omitempty"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
}

// CreateStockConfigRequest sets up a (location, product) stock row.
type CreateStockConfigRequest struct {
	LocationID        uuid.UUID `json:"location_id" binding:"required"`
	ProductID         uuid.UUID `json:"product_id" binding:"required"`
	MaxCapacity       int       `json:"max_capacity" binding:"required,gt=0"`
	LowStockThreshold int       `json:"low_stock_threshold" binding:"gte=0"`
}

// AdjustStockRequest is the back-office stock-in / stock-out / adjustment payload.
type AdjustStockRequest struct {
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	ProductID  uuid.UUID `json:"product_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required"`
	Note       string    `json:"note" binding:"max=255"`
}
