package services

import (
	"github.com/raj9661/paniwalaa-backend/models"
)

// Pricing is pure integer math over paise. Nothing in here touches the
// database or floating point.

// BaseTotal is unit price times quantity.
func BaseTotal(product *models.Product, quantity int) int64 {
	return product.PricePaise * int64(quantity)
}

// SecurityDeposit computes the refundable container deposit. One-time
// purchase products never carry a deposit; an explicit staff override wins
// over the product-derived amount.
func SecurityDeposit(product *models.Product, quantity int, override *int64) int64 {
	if product.OneTimePurchase {
		return 0
	}
	if override != nil {
		return *override
	}
	return product.DepositPaise * int64(quantity)
}

// Commission computes the delivery-partner commission for an order. Per-unit
// commission is the product override when present, else the site default;
// self-delivery adds the configured bonus per unit.
func Commission(product *models.Product, quantity int, settings *models.SiteSettings, selfDelivery bool) int64 {
	perUnit := settings.DefaultCommissionPaise
	if product.CommissionPaise != nil {
		perUnit = *product.CommissionPaise
	}
	if selfDelivery {
		perUnit += settings.SelfDeliveryBonusPaise
	}
	return perUnit * int64(quantity)
}

// LocationEarnings computes what the fulfillment location earns on this
// order. Rent-model locations are paid out-of-band and earn zero per order.
func LocationEarnings(location *models.FulfillmentLocation, quantity int) int64 {
	if location.PaymentModel != models.PaymentModelPerUnitShare {
		return 0
	}
	return location.PerUnitSharePaise * int64(quantity)
}

// FloorCharge returns the site-wide floor surcharge for addresses above the
// ground floor.
func FloorCharge(address *models.Address, settings *models.SiteSettings) int64 {
	if address.Floor <= 0 {
		return 0
	}
	return settings.FloorChargePaise
}

// FinalTotal applies the order money invariant:
// base + floorCharge - floorWaived + deposit - discount, clamped at zero.
func FinalTotal(base, floorCharge, floorWaived, deposit, discount int64) int64 {
	total := base + floorCharge - floorWaived + deposit - discount
	if total < 0 {
		return 0
	}
	return total
}

// PromoDiscount computes the discount a promo grants on an order amount.
// Percentage promos floor the division and respect the max-discount cap;
// fixed promos never exceed the order amount.
func PromoDiscount(promo *models.PromoCode, orderAmount int64) int64 {
	var discount int64
	switch promo.Type {
	case models.PromoTypePercentage:
		discount = orderAmount * promo.Value / 100
		if promo.MaxDiscountPaise > 0 && discount > promo.MaxDiscountPaise {
			discount = promo.MaxDiscountPaise
		}
	case models.PromoTypeFixed:
		discount = promo.Value
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	return discount
}
