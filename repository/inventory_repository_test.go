package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func stockRow(id, locationID, productID uuid.UUID, current, capacity, threshold int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "location_id", "product_id", "current_stock", "max_capacity",
		"low_stock_threshold", "created_at", "updated_at",
	}).AddRow(id, locationID, productID, current, capacity, threshold, now, now)
}

func TestReserve_LocksRowForUpdate(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	stockID := uuid.New()
	locationID := uuid.New()
	productID := uuid.New()
	orderID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "location_stocks" WHERE location_id = $1 AND product_id = $2 ORDER BY "location_stocks"."id" LIMIT $3 FOR UPDATE`)).
		WithArgs(locationID, productID, 1).
		WillReturnRows(stockRow(stockID, locationID, productID, 10, 100, 5))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "location_stocks"`)).
		WithArgs(7, stockID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "stock_transactions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	entry, err := repo.Reserve(context.Background(), locationID, productID, 3, orderID)
	assert.NoError(t, err)
	assert.Equal(t, -3, entry.Quantity)
	assert.Equal(t, 10, entry.StockBefore)
	assert.Equal(t, 7, entry.StockAfter)
	assert.Equal(t, orderID, *entry.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserve_InsufficientStock(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	locationID := uuid.New()
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "location_stocks"`)).
		WithArgs(locationID, productID, 1).
		WillReturnRows(stockRow(uuid.New(), locationID, productID, 2, 100, 5))

	entry, err := repo.Reserve(context.Background(), locationID, productID, 3, uuid.New())
	assert.Nil(t, entry)

	var insufficient *repository.InsufficientStockError
	assert.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 2, insufficient.Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserve_NotConfigured(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	locationID := uuid.New()
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "location_stocks"`)).
		WithArgs(locationID, productID, 1).
		WillReturnRows(sqlmock.NewRows([]string{}))

	entry, err := repo.Reserve(context.Background(), locationID, productID, 1, uuid.New())
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, repository.ErrStockNotConfigured)
}

func TestAdjust_RejectsOverCapacity(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	locationID := uuid.New()
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "location_stocks"`)).
		WithArgs(locationID, productID, 1).
		WillReturnRows(stockRow(uuid.New(), locationID, productID, 95, 100, 5))

	entry, err := repo.Adjust(context.Background(), locationID, productID, 10,
		models.StockTxnStockIn, nil, "weekly delivery")
	assert.Nil(t, entry)

	var capacity *repository.CapacityError
	assert.True(t, errors.As(err, &capacity))
	assert.Equal(t, 5, capacity.MaxAddable)
}

func TestAdjust_RejectsNegativeResult(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	locationID := uuid.New()
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "location_stocks"`)).
		WithArgs(locationID, productID, 1).
		WillReturnRows(stockRow(uuid.New(), locationID, productID, 3, 100, 5))

	entry, err := repo.Adjust(context.Background(), locationID, productID, -5,
		models.StockTxnStockOut, nil, "damaged cans")
	assert.Nil(t, entry)

	var insufficient *repository.InsufficientStockError
	assert.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Available)
}
