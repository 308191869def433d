package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/raj9661/paniwalaa-backend/repository"
)

func TestFindByCodeForUpdate_LocksRow(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPromoRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "code", "type", "value", "max_uses", "used_count", "active"}).
		AddRow(uuid.New(), "WATER10", "percentage", 10, 5, 2, true)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "promo_codes" WHERE LOWER(code) = $1 AND "promo_codes"."deleted_at" IS NULL ORDER BY "promo_codes"."id" LIMIT $2 FOR UPDATE`)).
		WithArgs("water10", 1).
		WillReturnRows(rows)

	promo, err := repo.FindByCodeForUpdate(context.Background(), "WATER10")
	assert.NoError(t, err)
	assert.Equal(t, "WATER10", promo.Code)
	assert.Equal(t, 2, promo.UsedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsedCount_GuardsMaxUsesInUpdate(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPromoRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "promo_codes" SET "used_count"=used_count + 1 WHERE (LOWER(code) = $1 AND (max_uses = 0 OR used_count < max_uses)) AND "promo_codes"."deleted_at" IS NULL`)).
		WithArgs("water10").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.IncrementUsedCount(context.Background(), "WATER10"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsedCount_ExhaustedWhenNoRowMatches(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPromoRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "promo_codes"`)).
		WithArgs("lastone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.IncrementUsedCount(context.Background(), "LASTONE")
	assert.ErrorIs(t, err, repository.ErrPromoExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
