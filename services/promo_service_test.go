package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/repository"
	"github.com/raj9661/paniwalaa-backend/services"
)

// --- Mock promo repository ---

type mockPromoRepo struct {
	promos map[string]*models.PromoCode
}

func newMockPromoRepo() *mockPromoRepo {
	return &mockPromoRepo{promos: make(map[string]*models.PromoCode)}
}

func (m *mockPromoRepo) WithTx(_ *gorm.DB) repository.PromoRepository { return m }

func (m *mockPromoRepo) Create(_ context.Context, p *models.PromoCode) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.promos[p.Code] = p
	return nil
}

func (m *mockPromoRepo) FindByCode(_ context.Context, code string) (*models.PromoCode, error) {
	p, ok := m.promos[strings.ToUpper(code)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockPromoRepo) FindByCodeForUpdate(ctx context.Context, code string) (*models.PromoCode, error) {
	return m.FindByCode(ctx, code)
}

func (m *mockPromoRepo) IncrementUsedCount(_ context.Context, code string) error {
	p, ok := m.promos[strings.ToUpper(code)]
	if !ok {
		return repository.ErrPromoExhausted
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return repository.ErrPromoExhausted
	}
	p.UsedCount++
	return nil
}

func (m *mockPromoRepo) Deactivate(_ context.Context, code string) error {
	p, ok := m.promos[strings.ToUpper(code)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	return nil
}

func (m *mockPromoRepo) FindAll(_ context.Context, _, _ int) ([]models.PromoCode, int64, error) {
	var result []models.PromoCode
	for _, p := range m.promos {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

// --- Mock order repository (promo usage history only) ---

type mockOrderRepo struct {
	orders []*models.Order
}

func (m *mockOrderRepo) WithTx(_ *gorm.DB) repository.OrderRepository { return m }

func (m *mockOrderRepo) Create(_ context.Context, o *models.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	m.orders = append(m.orders, o)
	return nil
}

func (m *mockOrderRepo) Update(_ context.Context, o *models.Order) error {
	for i, existing := range m.orders {
		if existing.ID == o.ID {
			m.orders[i] = o
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) FindByIDAndUserID(_ context.Context, id, userID uuid.UUID) (*models.Order, error) {
	for _, o := range m.orders {
		if o.ID == id && o.UserID == userID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) FindAll(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) CountByUserAndPromo(_ context.Context, userID uuid.UUID, code string) (int64, error) {
	var count int64
	for _, o := range m.orders {
		if o.UserID == userID && strings.EqualFold(o.PromoCode, code) {
			count++
		}
	}
	return count, nil
}

// --- Helpers ---

func newPromoTestService(promoRepo *mockPromoRepo, orderRepo *mockOrderRepo) services.PromoService {
	logger, _ := zap.NewDevelopment()
	return services.NewPromoService(promoRepo, orderRepo, logger)
}

func activePromo(code string) *models.PromoCode {
	return &models.PromoCode{
		ID:         uuid.New(),
		Code:       code,
		Type:       models.PromoTypePercentage,
		Value:      10,
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(24 * time.Hour),
		Active:     true,
	}
}

// --- Tests ---

func TestValidate_Success(t *testing.T) {
	promoRepo := newMockPromoRepo()
	promoRepo.promos["WATER10"] = activePromo("WATER10")
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	promo, discount, svcErr := svc.Validate(context.Background(), nil, "water10", 20000, uuid.New(), "customer")

	assert.Nil(t, svcErr)
	assert.Equal(t, "WATER10", promo.Code)
	assert.Equal(t, int64(2000), discount)
}

func TestValidate_UnknownCode(t *testing.T) {
	svc := newPromoTestService(newMockPromoRepo(), &mockOrderRepo{})

	_, _, svcErr := svc.Validate(context.Background(), nil, "NOPE", 20000, uuid.New(), "customer")

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodePromoNotFound, svcErr.Code)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestValidate_InactiveBeatsExpired(t *testing.T) {
	// An inactive code that is also expired reports inactive: the checks run
	// in a fixed order.
	promoRepo := newMockPromoRepo()
	promo := activePromo("OLD")
	promo.Active = false
	promo.ValidUntil = time.Now().Add(-time.Hour)
	promoRepo.promos["OLD"] = promo
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	_, _, svcErr := svc.Validate(context.Background(), nil, "OLD", 20000, uuid.New(), "customer")

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodePromoInactive, svcErr.Code)
}

func TestValidate_NotYetValid(t *testing.T) {
	promoRepo := newMockPromoRepo()
	promo := activePromo("SOON")
	promo.ValidFrom = time.Now().Add(time.Hour)
	promoRepo.promos["SOON"] = promo
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	_, _, svcErr := svc.Validate(context.Background(), nil, "SOON", 20000, uuid.New(), "customer")

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodePromoNotYetValid, svcErr.Code)
}

func TestValidate_Expired(t *testing.T) {
	promoRepo := newMockPromoRepo()
	promo := activePromo("GONE")
	promo.ValidUntil = time.Now().Add(-time.Minute)
	promoRepo.promos["GONE"] = promo
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	_, _, svcErr := svc.Validate(context.Background(), nil, "GONE", 20000, uuid.New(), "customer")

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodePromoExpired, svcErr.Code)
}

func TestValidate_GlobalUsageCap(t *testing.T) {
	promoRepo := newMockPromoRepo()
	promo := activePromo("CAPPED")
	promo.MaxUses = 5
	promo.UsedCount = 5
	promoRepo.promos["CAPPED"] = promo
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	_, _, svcErr := svc.Validate(context.Background(), nil, "CAPPED", 20000, uuid.New(), "customer")

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodePromoMaxUses, svcErr.Code)
}

func TestValidate_BelowMinOrder(t *testing.T) {
	promoRepo := newMockPromoRepo()
	promo := activePromo("BIG")
	promo.MinOrderPaise = 50000
	promoRepo.promos["BIG"] = promo
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	_, _, svcErr := svc.Validate(context.Background(), nil, "BIG", 20000, uuid.New(), "customer")

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodePromoBelowMinOrder, svcErr.Code)
}

func TestValidate_RoleRestriction(t *testing.T) {
	promoRepo := newMockPromoRepo()
	promo := activePromo("STAFF")
	promo.AllowedRole = "admin"
	promoRepo.promos["STAFF"] = promo
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	_, _, svcErr := svc.Validate(context.Background(), nil, "STAFF", 20000, uuid.New(), "customer")
	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodePromoRoleNotEligible, svcErr.Code)

	_, _, svcErr = svc.Validate(context.Background(), nil, "STAFF", 20000, uuid.New(), "admin")
	assert.Nil(t, svcErr)
}

func TestValidate_PerUserLimitFromOrderHistory(t *testing.T) {
	userID := uuid.New()
	promoRepo := newMockPromoRepo()
	promo := activePromo("ONCE")
	promo.MaxUsesPerUser = 1
	promoRepo.promos["ONCE"] = promo

	orderRepo := &mockOrderRepo{}
	orderRepo.orders = append(orderRepo.orders, &models.Order{
		ID:        uuid.New(),
		UserID:    userID,
		PromoCode: "ONCE",
	})
	svc := newPromoTestService(promoRepo, orderRepo)

	_, _, svcErr := svc.Validate(context.Background(), nil, "ONCE", 20000, userID, "customer")
	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodePromoPerUserLimit, svcErr.Code)

	// A different user is unaffected.
	_, _, svcErr = svc.Validate(context.Background(), nil, "ONCE", 20000, uuid.New(), "customer")
	assert.Nil(t, svcErr)
}

func TestRedeem_IncrementsUsedCount(t *testing.T) {
	promoRepo := newMockPromoRepo()
	promoRepo.promos["WATER10"] = activePromo("WATER10")
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	assert.NoError(t, svc.Redeem(context.Background(), nil, "WATER10"))
	assert.Equal(t, 1, promoRepo.promos["WATER10"].UsedCount)
}

func TestRedeem_RefusesLastUseTwice(t *testing.T) {
	promoRepo := newMockPromoRepo()
	promo := activePromo("LASTONE")
	promo.MaxUses = 1
	promoRepo.promos["LASTONE"] = promo
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	assert.NoError(t, svc.Redeem(context.Background(), nil, "LASTONE"))
	assert.ErrorIs(t, svc.Redeem(context.Background(), nil, "LASTONE"), repository.ErrPromoExhausted)
	assert.Equal(t, 1, promoRepo.promos["LASTONE"].UsedCount)
}

func TestCreatePromo_RejectsPercentageOver100(t *testing.T) {
	svc := newPromoTestService(newMockPromoRepo(), &mockOrderRepo{})

	_, svcErr := svc.CreatePromo(context.Background(), &models.CreatePromoRequest{
		Code:       "TOOMUCH",
		Type:       models.PromoTypePercentage,
		Value:      150,
		ValidFrom:  time.Now(),
		ValidUntil: time.Now().Add(time.Hour),
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestCreatePromo_UppercasesCode(t *testing.T) {
	promoRepo := newMockPromoRepo()
	svc := newPromoTestService(promoRepo, &mockOrderRepo{})

	promo, svcErr := svc.CreatePromo(context.Background(), &models.CreatePromoRequest{
		Code:       "water10",
		Type:       models.PromoTypeFixed,
		Value:      500,
		ValidFrom:  time.Now(),
		ValidUntil: time.Now().Add(time.Hour),
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, "WATER10", promo.Code)
}
