package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/services"
)

func refillProduct() *models.Product {
	return &models.Product{
		Title:        "20L Water Can",
		PricePaise:   6500,
		DepositPaise: 15000,
		Active:       true,
	}
}

func testSettings() *models.SiteSettings {
	return &models.SiteSettings{
		FloorChargePaise:       500,
		DefaultCommissionPaise: 800,
		SelfDeliveryBonusPaise: 200,
	}
}

func TestOrderTotal_RefillWithFloorAndDeposit(t *testing.T) {
	product := refillProduct()
	address := &models.Address{Floor: 3}
	settings := testSettings()

	base := services.BaseTotal(product, 2)
	floor := services.FloorCharge(address, settings)
	deposit := services.SecurityDeposit(product, 2, nil)

	assert.Equal(t, int64(13000), base)
	assert.Equal(t, int64(500), floor)
	assert.Equal(t, int64(30000), deposit)
	assert.Equal(t, int64(43500), services.FinalTotal(base, floor, 0, deposit, 0))
}

func TestOrderTotal_OneTimePurchaseSkipsDeposit(t *testing.T) {
	product := refillProduct()
	product.OneTimePurchase = true
	address := &models.Address{Floor: 3}
	settings := testSettings()

	base := services.BaseTotal(product, 2)
	floor := services.FloorCharge(address, settings)
	deposit := services.SecurityDeposit(product, 2, nil)

	assert.Equal(t, int64(0), deposit)
	assert.Equal(t, int64(13500), services.FinalTotal(base, floor, 0, deposit, 0))
}

func TestSecurityDeposit_StaffOverrideWins(t *testing.T) {
	product := refillProduct()
	override := int64(10000)

	assert.Equal(t, int64(10000), services.SecurityDeposit(product, 2, &override))

	zero := int64(0)
	assert.Equal(t, int64(0), services.SecurityDeposit(product, 2, &zero))
}

func TestFloorCharge_GroundFloorIsFree(t *testing.T) {
	settings := testSettings()

	assert.Equal(t, int64(0), services.FloorCharge(&models.Address{Floor: 0}, settings))
	assert.Equal(t, int64(500), services.FloorCharge(&models.Address{Floor: 1}, settings))
}

func TestFinalTotal_ClampsAtZero(t *testing.T) {
	assert.Equal(t, int64(0), services.FinalTotal(1000, 0, 0, 0, 5000))
}

func TestPromoDiscount_PercentageRespectsCap(t *testing.T) {
	promo := &models.PromoCode{
		Type:             models.PromoTypePercentage,
		Value:            10,
		MaxDiscountPaise: 1000,
	}

	assert.Equal(t, int64(1000), services.PromoDiscount(promo, 20000))

	promo.MaxDiscountPaise = 0 // uncapped
	assert.Equal(t, int64(2000), services.PromoDiscount(promo, 20000))
}

func TestPromoDiscount_FixedNeverExceedsOrderAmount(t *testing.T) {
	promo := &models.PromoCode{
		Type:  models.PromoTypeFixed,
		Value: 5000,
	}

	assert.Equal(t, int64(5000), services.PromoDiscount(promo, 20000))
	assert.Equal(t, int64(3000), services.PromoDiscount(promo, 3000))
}

func TestCommission_ProductOverrideAndSelfDeliveryBonus(t *testing.T) {
	product := refillProduct()
	settings := testSettings()

	assert.Equal(t, int64(1600), services.Commission(product, 2, settings, false))
	assert.Equal(t, int64(2000), services.Commission(product, 2, settings, true))

	perUnit := int64(1200)
	product.CommissionPaise = &perUnit
	assert.Equal(t, int64(2400), services.Commission(product, 2, settings, false))
}

func TestLocationEarnings_RentModelEarnsNothing(t *testing.T) {
	rent := &models.FulfillmentLocation{PaymentModel: models.PaymentModelRent, PerUnitSharePaise: 300}
	share := &models.FulfillmentLocation{PaymentModel: models.PaymentModelPerUnitShare, PerUnitSharePaise: 300}

	assert.Equal(t, int64(0), services.LocationEarnings(rent, 4))
	assert.Equal(t, int64(1200), services.LocationEarnings(share, 4))
}

func TestRupees_Formatting(t *testing.T) {
	assert.Equal(t, "435.00", models.Rupees(43500))
	assert.Equal(t, "0.05", models.Rupees(5))
	assert.Equal(t, "-12.50", models.Rupees(-1250))
}
