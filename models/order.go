package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentMethodCOD PaymentMethod = "cod"
	PaymentMethodUPI PaymentMethod = "upi"
)

// PaymentStatus tracks manual payment verification. UPI orders start
// unverified (the claimed UTR is recorded for back-office checking), COD
// orders start pending.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusUnverified PaymentStatus = "unverified"
	PaymentStatusVerified   PaymentStatus = "verified"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// OrderStatus is the fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusPacked         OrderStatus = "packed"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Order is a placed order. Money components are in paise and satisfy
// FinalTotal = max(0, BaseTotal + FloorCharge - FloorChargeWaived +
// SecurityDeposit - Discount). Product and quantity are immutable after
// creation; money fields may be amended by staff.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_number"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	LocationID  uuid.UUID `gorm:"type:uuid;not null;index" json:"location_id"`

	// Address snapshot taken at placement time.
	AddressID      uuid.UUID `gorm:"type:uuid;not null" json:"address_id"`
	AddressLine    string    `gorm:"type:varchar(512);not null" json:"address_line"`
	AddressPincode string    `gorm:"type:varchar(6);not null" json:"address_pincode"`
	AddressFloor   int       `gorm:"not null;default:0" json:"address_floor"`

	BaseTotalPaise         int64 `gorm:"not null" json:"base_total_paise"`
	FloorChargePaise       int64 `gorm:"not null;default:0" json:"floor_charge_paise"`
	FloorChargeWaivedPaise int64 `gorm:"not null;default:0" json:"floor_charge_waived_paise"`
	SecurityDepositPaise   int64 `gorm:"not null;default:0" json:"security_deposit_paise"`
	DiscountPaise          int64 `gorm:"not null;default:0" json:"discount_paise"`
	FinalTotalPaise        int64 `gorm:"not null" json:"final_total_paise"`

	CommissionPaise       int64 `gorm:"not null;default:0" json:"commission_paise"`
	LocationEarningsPaise int64 `gorm:"not null;default:0" json:"location_earnings_paise"`

	PromoCode string `gorm:"type:varchar(64);index" json:"promo_code,omitempty"`

	PaymentMethod     PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	PaymentStatus     PaymentStatus `gorm:"type:varchar(15);not null;default:'pending'" json:"payment_status"`
	UpiReference      string        `gorm:"type:varchar(64)" json:"upi_reference,omitempty"`
	PaymentVerifiedBy *uuid.UUID    `gorm:"type:uuid" json:"payment_verified_by,omitempty"`
	PaymentVerifiedAt *time.Time    `json:"payment_verified_at,omitempty"`
	PaymentNote       string        `gorm:"type:varchar(255)" json:"payment_note,omitempty"`

	Status    OrderStatus    `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PlaceOrderRequest is the order-placement payload.
type PlaceOrderRequest struct {
	AddressID     uuid.UUID     `json:"address_id" binding:"required"`
	ProductID     uuid.UUID     `json:"product_id" binding:"required"`
	Quantity      int           `json:"quantity" binding:"required,gt=0"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,oneof=cod upi"`
	PromoCode     string        `json:"promo_code" binding:"max=64"`
	UpiReference  string        `json:"upi_reference" binding:"max=64"`
	// Staff override for the security deposit, in paise. Nil means compute
	// from the product.
	DepositOverridePaise *int64 `json:"deposit_override_paise" binding:"omitempty,gte=0"`
}

// OrderMoney is a money component rendered both in paise and as rupees.
type OrderMoney struct {
	Paise  int64  `json:"paise"`
	Rupees string `json:"rupees"`
}

// PlaceOrderResponse is the success payload of order placement.
type PlaceOrderResponse struct {
	Order        *Order     `json:"order"`
	LocationName string     `json:"location_name"`
	BaseTotal    OrderMoney `json:"base_total"`
	FloorCharge  OrderMoney `json:"floor_charge"`
	Deposit      OrderMoney `json:"security_deposit"`
	Discount     OrderMoney `json:"discount"`
	FinalTotal   OrderMoney `json:"final_total"`
}

// VerifyPaymentRequest is the admin payload for manual UPI verification.
type VerifyPaymentRequest struct {
	Status PaymentStatus `json:"status" binding:"required,oneof=verified failed"`
	Note   string        `json:"note" binding:"max=255"`
}

// WaiveFloorChargeRequest waives part or all of an order's floor charge.
type WaiveFloorChargeRequest struct {
	WaivedPaise int64 `json:"waived_paise" binding:"required,gte=0"`
}

// UpdateOrderStatusRequest moves an order through its lifecycle.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=placed packed out_for_delivery delivered cancelled"`
}

// Rupees formats a paise amount as a decimal rupee string.
func Rupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}

// Money pairs a paise amount with its rupee rendering.
func Money(paise int64) OrderMoney {
	return OrderMoney{Paise: paise, Rupees: Rupees(paise)}
}
