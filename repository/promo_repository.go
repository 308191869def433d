package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raj9661/paniwalaa-backend/models"
)

// ErrPromoExhausted is returned when a redemption would push used_count past
// max_uses. The check and the increment happen in one UPDATE so two
// concurrent redemptions of the last use cannot both succeed.
var ErrPromoExhausted = errors.New("promo code usage limit reached")

// PromoRepository defines the interface for promo-code data access.
type PromoRepository interface {
	WithTx(tx *gorm.DB) PromoRepository
	Create(ctx context.Context, promo *models.PromoCode) error
	// FindByCode is case-insensitive and returns inactive codes too; the
	// service decides how an inactive code fails.
	FindByCode(ctx context.Context, code string) (*models.PromoCode, error)
	// FindByCodeForUpdate locks the promo row for the transaction, so
	// concurrent redemptions check the caps against committed counts.
	FindByCodeForUpdate(ctx context.Context, code string) (*models.PromoCode, error)
	// IncrementUsedCount bumps used_count, guarded against exceeding
	// max_uses. Returns ErrPromoExhausted when the cap is already reached.
	IncrementUsedCount(ctx context.Context, code string) error
	Deactivate(ctx context.Context, code string) error
	FindAll(ctx context.Context, page, limit int) ([]models.PromoCode, int64, error)
}

// GormPromoRepository implements PromoRepository using GORM.
type GormPromoRepository struct {
	db *gorm.DB
}

// NewGormPromoRepository creates a new GormPromoRepository.
func NewGormPromoRepository(db *gorm.DB) PromoRepository {
	return &GormPromoRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *GormPromoRepository) WithTx(tx *gorm.DB) PromoRepository {
	if tx == nil {
		return r
	}
	return &GormPromoRepository{db: tx}
}

// Create inserts a new promo code.
func (r *GormPromoRepository) Create(ctx context.Context, promo *models.PromoCode) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

// FindByCode retrieves a promo code by its code, case-insensitive.
func (r *GormPromoRepository) FindByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.db.WithContext(ctx).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// FindByCodeForUpdate retrieves a promo code by its code with a row lock.
func (r *GormPromoRepository) FindByCodeForUpdate(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// IncrementUsedCount atomically increments the used_count of a promo code.
// The max_uses guard lives in the WHERE clause: a redemption racing for the
// last use loses by affecting zero rows, not by writing past the cap.
func (r *GormPromoRepository) IncrementUsedCount(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Model(&models.PromoCode{}).
		Where("LOWER(code) = ? AND (max_uses = 0 OR used_count < max_uses)", strings.ToLower(code)).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromoExhausted
	}
	return nil
}

// Deactivate sets active = false on a promo code.
func (r *GormPromoRepository) Deactivate(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Model(&models.PromoCode{}).
		Where("LOWER(code) = ?", strings.ToLower(code)).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindAll retrieves paginated promo codes.
func (r *GormPromoRepository) FindAll(ctx context.Context, page, limit int) ([]models.PromoCode, int64, error) {
	var promos []models.PromoCode
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PromoCode{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&promos).Error; err != nil {
		return nil, 0, err
	}

	return promos, total, nil
}
