package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raj9661/paniwalaa-backend/models"
)

// ErrStockNotConfigured means no stock row exists for the (location, product)
// pair. Distinct from running out of stock: it is a setup error, not a
// sell-out.
var ErrStockNotConfigured = errors.New("product not configured at location")

// InsufficientStockError reports how many units are actually available.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}

// CapacityError reports how many units could still be added.
type CapacityError struct {
	MaxAddable int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded: at most %d more units fit", e.MaxAddable)
}

// InventoryRepository is the only mutation path for stock. Every change
// appends an immutable StockTransaction recording stock before and after.
type InventoryRepository interface {
	WithTx(tx *gorm.DB) InventoryRepository
	CreateStockConfig(ctx context.Context, stock *models.LocationStock) error
	GetStock(ctx context.Context, locationID, productID uuid.UUID) (*models.LocationStock, error)
	// Reserve locks the stock row, deducts quantity and appends an
	// order_deduction ledger entry. Callers must run it inside the same
	// transaction as the order insert.
	Reserve(ctx context.Context, locationID, productID uuid.UUID, quantity int, orderID uuid.UUID) (*models.StockTransaction, error)
	// Adjust applies a signed delta for back-office stock_in / stock_out /
	// adjustment flows, with the same locking and ledger semantics.
	Adjust(ctx context.Context, locationID, productID uuid.UUID, delta int, txnType models.StockTransactionType, orderID *uuid.UUID, note string) (*models.StockTransaction, error)
	ListTransactions(ctx context.Context, locationID, productID uuid.UUID, page, limit int) ([]models.StockTransaction, int64, error)
	ListLowStock(ctx context.Context, locationID uuid.UUID) ([]models.LocationStock, error)
}

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository.
func NewGormInventoryRepository(db *gorm.DB) InventoryRepository {
	return &GormInventoryRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *GormInventoryRepository) WithTx(tx *gorm.DB) InventoryRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryRepository{db: tx}
}

// CreateStockConfig inserts a stock row for a (location, product) pair.
func (r *GormInventoryRepository) CreateStockConfig(ctx context.Context, stock *models.LocationStock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

// GetStock retrieves the stock row for a (location, product) pair.
func (r *GormInventoryRepository) GetStock(ctx context.Context, locationID, productID uuid.UUID) (*models.LocationStock, error) {
	var stock models.LocationStock
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND product_id = ?", locationID, productID).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStockNotConfigured
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// Reserve deducts quantity under a SELECT ... FOR UPDATE row lock so two
// concurrent placements against the same pair serialize; the loser re-reads
// the decremented stock and fails if not enough remains.
func (r *GormInventoryRepository) Reserve(ctx context.Context, locationID, productID uuid.UUID, quantity int, orderID uuid.UUID) (*models.StockTransaction, error) {
	var stock models.LocationStock
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("location_id = ? AND product_id = ?", locationID, productID).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStockNotConfigured
	}
	if err != nil {
		return nil, err
	}

	if stock.CurrentStock < quantity {
		return nil, &InsufficientStockError{Available: stock.CurrentStock}
	}

	before := stock.CurrentStock
	after := before - quantity

	if err := r.db.WithContext(ctx).
		Model(&models.LocationStock{}).
		Where("id = ?", stock.ID).
		UpdateColumn("current_stock", after).Error; err != nil {
		return nil, err
	}

	entry := &models.StockTransaction{
		LocationID:  locationID,
		ProductID:   productID,
		Type:        models.StockTxnOrderDeduction,
		Quantity:    -quantity,
		StockBefore: before,
		StockAfter:  after,
		OrderID:     &orderID,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

// Adjust applies a signed delta with the 0 <= stockAfter <= maxCapacity
// guard, under the same row lock as Reserve.
func (r *GormInventoryRepository) Adjust(ctx context.Context, locationID, productID uuid.UUID, delta int, txnType models.StockTransactionType, orderID *uuid.UUID, note string) (*models.StockTransaction, error) {
	var stock models.LocationStock
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("location_id = ? AND product_id = ?", locationID, productID).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStockNotConfigured
	}
	if err != nil {
		return nil, err
	}

	before := stock.CurrentStock
	after := before + delta
	if after < 0 {
		return nil, &InsufficientStockError{Available: before}
	}
	if after > stock.MaxCapacity {
		return nil, &CapacityError{MaxAddable: stock.MaxCapacity - before}
	}

	if err := r.db.WithContext(ctx).
		Model(&models.LocationStock{}).
		Where("id = ?", stock.ID).
		UpdateColumn("current_stock", after).Error; err != nil {
		return nil, err
	}

	entry := &models.StockTransaction{
		LocationID:  locationID,
		ProductID:   productID,
		Type:        txnType,
		Quantity:    delta,
		StockBefore: before,
		StockAfter:  after,
		OrderID:     orderID,
		Note:        note,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

// ListTransactions returns the ledger for a (location, product) pair, newest
// first, paginated.
func (r *GormInventoryRepository) ListTransactions(ctx context.Context, locationID, productID uuid.UUID, page, limit int) ([]models.StockTransaction, int64, error) {
	var txns []models.StockTransaction
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.StockTransaction{}).
		Where("location_id = ? AND product_id = ?", locationID, productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&txns).Error; err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}

// ListLowStock returns stock rows at or below their low-stock threshold.
// uuid.Nil means all locations.
func (r *GormInventoryRepository) ListLowStock(ctx context.Context, locationID uuid.UUID) ([]models.LocationStock, error) {
	var stocks []models.LocationStock
	query := r.db.WithContext(ctx).
		Where("current_stock <= low_stock_threshold")
	if locationID != uuid.Nil {
		query = query.Where("location_id = ?", locationID)
	}
	err := query.Order("current_stock ASC").Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}
