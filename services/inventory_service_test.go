package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/services"
)

func newInventoryFixture() (services.InventoryService, *mockInventoryRepo, uuid.UUID, uuid.UUID) {
	logger, _ := zap.NewDevelopment()
	repo := newMockInventoryRepo()
	locationID := uuid.New()
	productID := uuid.New()
	repo.stocks[stockKey{locationID, productID}] = &models.LocationStock{
		LocationID:        locationID,
		ProductID:         productID,
		CurrentStock:      20,
		MaxCapacity:       100,
		LowStockThreshold: 5,
	}
	return services.NewInventoryService(repo, logger), repo, locationID, productID
}

func TestCreateStockConfig_ThresholdGuard(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	svc := services.NewInventoryService(newMockInventoryRepo(), logger)

	_, svcErr := svc.CreateStockConfig(context.Background(), &models.CreateStockConfigRequest{
		LocationID:        uuid.New(),
		ProductID:         uuid.New(),
		MaxCapacity:       50,
		LowStockThreshold: 60,
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeInvalidState, svcErr.Code)
}

func TestCreateStockConfig_StartsAtZero(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	svc := services.NewInventoryService(newMockInventoryRepo(), logger)

	stock, svcErr := svc.CreateStockConfig(context.Background(), &models.CreateStockConfigRequest{
		LocationID:        uuid.New(),
		ProductID:         uuid.New(),
		MaxCapacity:       50,
		LowStockThreshold: 10,
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, 0, stock.CurrentStock)
}

func TestStockIn_AppendsLedgerEntry(t *testing.T) {
	svc, repo, locationID, productID := newInventoryFixture()

	txn, svcErr := svc.StockIn(context.Background(), &models.AdjustStockRequest{
		LocationID: locationID,
		ProductID:  productID,
		Quantity:   30,
		Note:       "weekly delivery",
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, models.StockTxnStockIn, txn.Type)
	assert.Equal(t, 30, txn.Quantity)
	assert.Equal(t, 20, txn.StockBefore)
	assert.Equal(t, 50, txn.StockAfter)
	assert.Equal(t, 50, repo.stocks[stockKey{locationID, productID}].CurrentStock)
}

func TestStockIn_CapacityExceeded(t *testing.T) {
	svc, _, locationID, productID := newInventoryFixture()

	_, svcErr := svc.StockIn(context.Background(), &models.AdjustStockRequest{
		LocationID: locationID,
		ProductID:  productID,
		Quantity:   90,
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeCapacityExceeded, svcErr.Code)
	assert.Equal(t, "Capacity exceeded: at most 80 more units can be added", svcErr.Message)
}

func TestStockOut_NegatesQuantity(t *testing.T) {
	svc, repo, locationID, productID := newInventoryFixture()

	txn, svcErr := svc.StockOut(context.Background(), &models.AdjustStockRequest{
		LocationID: locationID,
		ProductID:  productID,
		Quantity:   8,
		Note:       "damaged cans",
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, models.StockTxnStockOut, txn.Type)
	assert.Equal(t, -8, txn.Quantity)
	assert.Equal(t, 12, repo.stocks[stockKey{locationID, productID}].CurrentStock)
}

func TestStockOut_CannotGoNegative(t *testing.T) {
	svc, _, locationID, productID := newInventoryFixture()

	_, svcErr := svc.StockOut(context.Background(), &models.AdjustStockRequest{
		LocationID: locationID,
		ProductID:  productID,
		Quantity:   25,
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeInsufficientStock, svcErr.Code)
	assert.Equal(t, "Insufficient stock: 20 available", svcErr.Message)
}

func TestMovements_RejectNonPositiveQuantities(t *testing.T) {
	svc, _, locationID, productID := newInventoryFixture()
	req := &models.AdjustStockRequest{LocationID: locationID, ProductID: productID, Quantity: -1}

	_, svcErr := svc.StockIn(context.Background(), req)
	assert.NotNil(t, svcErr)

	_, svcErr = svc.StockOut(context.Background(), req)
	assert.NotNil(t, svcErr)

	req.Quantity = 0
	_, svcErr = svc.Adjust(context.Background(), req)
	assert.NotNil(t, svcErr)
}

func TestMovements_UnconfiguredPair(t *testing.T) {
	svc, _, _, _ := newInventoryFixture()

	_, svcErr := svc.StockIn(context.Background(), &models.AdjustStockRequest{
		LocationID: uuid.New(),
		ProductID:  uuid.New(),
		Quantity:   5,
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeProductNotConfigured, svcErr.Code)
}

func TestLedgerChainInvariant(t *testing.T) {
	svc, repo, locationID, productID := newInventoryFixture()

	moves := []struct {
		fn  func(context.Context, *models.AdjustStockRequest) (*models.StockTransaction, *services.ServiceError)
		qty int
	}{
		{svc.StockIn, 10},
		{svc.StockOut, 4},
		{svc.Adjust, -2},
		{svc.StockIn, 7},
	}
	for _, m := range moves {
		_, svcErr := m.fn(context.Background(), &models.AdjustStockRequest{
			LocationID: locationID, ProductID: productID, Quantity: m.qty,
		})
		assert.Nil(t, svcErr)
	}

	// Every entry's StockAfter equals the next entry's StockBefore.
	txns := repo.txns
	for i := 1; i < len(txns); i++ {
		assert.Equal(t, txns[i-1].StockAfter, txns[i].StockBefore)
	}
	assert.Equal(t, txns[len(txns)-1].StockAfter, repo.stocks[stockKey{locationID, productID}].CurrentStock)
}
