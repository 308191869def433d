package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/repository"
)

// InventoryService exposes back-office stock management. Order placement
// does not go through here; it reserves directly inside the order
// transaction.
type InventoryService interface {
	CreateStockConfig(ctx context.Context, req *models.CreateStockConfigRequest) (*models.LocationStock, *ServiceError)
	StockIn(ctx context.Context, req *models.AdjustStockRequest) (*models.StockTransaction, *ServiceError)
	StockOut(ctx context.Context, req *models.AdjustStockRequest) (*models.StockTransaction, *ServiceError)
	Adjust(ctx context.Context, req *models.AdjustStockRequest) (*models.StockTransaction, *ServiceError)
	GetStock(ctx context.Context, locationID, productID uuid.UUID) (*models.LocationStock, *ServiceError)
	ListTransactions(ctx context.Context, locationID, productID uuid.UUID, page, limit int) ([]models.StockTransaction, int64, *ServiceError)
	ListLowStock(ctx context.Context, locationID uuid.UUID) ([]models.LocationStock, *ServiceError)
}

type inventoryServiceImpl struct {
	inventoryRepo repository.InventoryRepository
	logger        *zap.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo repository.InventoryRepository, logger *zap.Logger) InventoryService {
	return &inventoryServiceImpl{inventoryRepo: inventoryRepo, logger: logger}
}

// CreateStockConfig sets up a (location, product) stock row with zero stock.
func (s *inventoryServiceImpl) CreateStockConfig(ctx context.Context, req *models.CreateStockConfigRequest) (*models.LocationStock, *ServiceError) {
	if req.LowStockThreshold > req.MaxCapacity {
		return nil, newServiceError(400, CodeInvalidState, "Low-stock threshold cannot exceed capacity")
	}

	stock := &models.LocationStock{
		LocationID:        req.LocationID,
		ProductID:         req.ProductID,
		CurrentStock:      0,
		MaxCapacity:       req.MaxCapacity,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := s.inventoryRepo.CreateStockConfig(ctx, stock); err != nil {
		s.logger.Error("Failed to create stock config",
			zap.String("location_id", req.LocationID.String()),
			zap.String("product_id", req.ProductID.String()),
			zap.Error(err),
		)
		return nil, internalError("Failed to create stock configuration")
	}
	return stock, nil
}

// StockIn adds units, bounded by capacity.
func (s *inventoryServiceImpl) StockIn(ctx context.Context, req *models.AdjustStockRequest) (*models.StockTransaction, *ServiceError) {
	if req.Quantity <= 0 {
		return nil, newServiceError(400, CodeInvalidState, "Stock-in quantity must be positive")
	}
	return s.apply(ctx, req.LocationID, req.ProductID, req.Quantity, models.StockTxnStockIn, req.Note)
}

// StockOut removes units, bounded by available stock.
func (s *inventoryServiceImpl) StockOut(ctx context.Context, req *models.AdjustStockRequest) (*models.StockTransaction, *ServiceError) {
	if req.Quantity <= 0 {
		return nil, newServiceError(400, CodeInvalidState, "Stock-out quantity must be positive")
	}
	return s.apply(ctx, req.LocationID, req.ProductID, -req.Quantity, models.StockTxnStockOut, req.Note)
}

// Adjust applies a signed correction.
func (s *inventoryServiceImpl) Adjust(ctx context.Context, req *models.AdjustStockRequest) (*models.StockTransaction, *ServiceError) {
	if req.Quantity == 0 {
		return nil, newServiceError(400, CodeInvalidState, "Adjustment quantity cannot be zero")
	}
	return s.apply(ctx, req.LocationID, req.ProductID, req.Quantity, models.StockTxnAdjustment, req.Note)
}

func (s *inventoryServiceImpl) apply(ctx context.Context, locationID, productID uuid.UUID, delta int, txnType models.StockTransactionType, note string) (*models.StockTransaction, *ServiceError) {
	entry, err := s.inventoryRepo.Adjust(ctx, locationID, productID, delta, txnType, nil, note)
	if err != nil {
		return nil, s.mapInventoryError(err, locationID, productID)
	}

	if stock, err := s.inventoryRepo.GetStock(ctx, locationID, productID); err == nil &&
		stock.CurrentStock <= stock.LowStockThreshold {
		s.logger.Warn("Stock at or below threshold",
			zap.String("location_id", locationID.String()),
			zap.String("product_id", productID.String()),
			zap.Int("current_stock", stock.CurrentStock),
			zap.Int("threshold", stock.LowStockThreshold),
		)
	}

	return entry, nil
}

// GetStock returns the stock row for a (location, product) pair.
func (s *inventoryServiceImpl) GetStock(ctx context.Context, locationID, productID uuid.UUID) (*models.LocationStock, *ServiceError) {
	stock, err := s.inventoryRepo.GetStock(ctx, locationID, productID)
	if err != nil {
		return nil, s.mapInventoryError(err, locationID, productID)
	}
	return stock, nil
}

// ListTransactions returns the paginated ledger for a pair.
func (s *inventoryServiceImpl) ListTransactions(ctx context.Context, locationID, productID uuid.UUID, page, limit int) ([]models.StockTransaction, int64, *ServiceError) {
	txns, total, err := s.inventoryRepo.ListTransactions(ctx, locationID, productID, page, limit)
	if err != nil {
		s.logger.Error("Failed to list stock transactions", zap.Error(err))
		return nil, 0, internalError("Failed to list stock transactions")
	}
	return txns, total, nil
}

// ListLowStock returns stock rows at or below their threshold.
func (s *inventoryServiceImpl) ListLowStock(ctx context.Context, locationID uuid.UUID) ([]models.LocationStock, *ServiceError) {
	stocks, err := s.inventoryRepo.ListLowStock(ctx, locationID)
	if err != nil {
		s.logger.Error("Failed to list low stock", zap.Error(err))
		return nil, internalError("Failed to list low stock")
	}
	return stocks, nil
}

func (s *inventoryServiceImpl) mapInventoryError(err error, locationID, productID uuid.UUID) *ServiceError {
	var insufficient *repository.InsufficientStockError
	var capacity *repository.CapacityError

	switch {
	case errors.Is(err, repository.ErrStockNotConfigured):
		return newServiceError(400, CodeProductNotConfigured, "Product is not configured at this location")
	case errors.As(err, &insufficient):
		return newServiceError(400, CodeInsufficientStock,
			fmt.Sprintf("Insufficient stock: %d available", insufficient.Available))
	case errors.As(err, &capacity):
		return newServiceError(400, CodeCapacityExceeded,
			fmt.Sprintf("Capacity exceeded: at most %d more units can be added", capacity.MaxAddable))
	default:
		s.logger.Error("Inventory operation failed",
			zap.String("location_id", locationID.String()),
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		return internalError("Inventory operation failed")
	}
}
