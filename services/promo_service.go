package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/repository"
)

// PromoService defines the interface for promo-code business logic.
type PromoService interface {
	CreatePromo(ctx context.Context, req *models.CreatePromoRequest) (*models.PromoCode, *ServiceError)
	// Validate checks a code against the activity window, caps, minimum order
	// and role, in that fixed sequence, and returns the promo with its
	// computed discount. It does not redeem: the usage increment belongs to
	// the order transaction.
	Validate(ctx context.Context, tx *gorm.DB, code string, orderAmount int64, userID uuid.UUID, role string) (*models.PromoCode, int64, *ServiceError)
	// Redeem bumps the global usage counter inside the caller's transaction.
	Redeem(ctx context.Context, tx *gorm.DB, code string) error
	Preview(ctx context.Context, req *models.PreviewPromoRequest, userID uuid.UUID, role string) (*models.PreviewPromoResponse, *ServiceError)
	DeactivatePromo(ctx context.Context, code string) *ServiceError
	ListPromos(ctx context.Context, page, limit int) ([]models.PromoCode, int64, *ServiceError)
}

type promoServiceImpl struct {
	promoRepo repository.PromoRepository
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

// NewPromoService creates a new PromoService.
func NewPromoService(promoRepo repository.PromoRepository, orderRepo repository.OrderRepository, logger *zap.Logger) PromoService {
	return &promoServiceImpl{
		promoRepo: promoRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// CreatePromo creates a new promo code.
func (s *promoServiceImpl) CreatePromo(ctx context.Context, req *models.CreatePromoRequest) (*models.PromoCode, *ServiceError) {
	if !req.ValidUntil.After(req.ValidFrom) {
		return nil, newServiceError(400, CodeInvalidState, "valid_until must be after valid_from")
	}
	if req.Type == models.PromoTypePercentage && req.Value > 100 {
		return nil, newServiceError(400, CodeInvalidState, "Percentage discount cannot exceed 100")
	}

	promo := &models.PromoCode{
		Code:             strings.ToUpper(req.Code),
		Type:             req.Type,
		Value:            req.Value,
		MinOrderPaise:    req.MinOrderPaise,
		MaxDiscountPaise: req.MaxDiscountPaise,
		MaxUses:          req.MaxUses,
		MaxUsesPerUser:   req.MaxUsesPerUser,
		ValidFrom:        req.ValidFrom,
		ValidUntil:       req.ValidUntil,
		AllowedRole:      req.AllowedRole,
		Active:           true,
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, newServiceError(409, CodeInvalidState, "Promo code already exists")
		}
		s.logger.Error("Failed to create promo", zap.Error(err))
		return nil, internalError("Failed to create promo code")
	}

	s.logger.Info("Promo code created",
		zap.String("code", promo.Code),
		zap.String("type", string(promo.Type)),
	)
	return promo, nil
}

// Validate runs the checks in a fixed order: existence, active flag,
// window start, window end, global cap, minimum order, role eligibility,
// per-user cap.
func (s *promoServiceImpl) Validate(ctx context.Context, tx *gorm.DB, code string, orderAmount int64, userID uuid.UUID, role string) (*models.PromoCode, int64, *ServiceError) {
	promoRepo := s.promoRepo.WithTx(tx)
	orderRepo := s.orderRepo.WithTx(tx)

	// Inside a placement transaction the promo row is locked, so two
	// concurrent redemptions of the same code are checked one at a time.
	var promo *models.PromoCode
	var err error
	if tx != nil {
		promo, err = promoRepo.FindByCodeForUpdate(ctx, code)
	} else {
		promo, err = promoRepo.FindByCode(ctx, code)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, newServiceError(400, CodePromoNotFound, "Promo code not found")
		}
		s.logger.Error("Promo lookup failed", zap.String("code", code), zap.Error(err))
		return nil, 0, internalError("Failed to validate promo code")
	}

	if !promo.Active {
		return nil, 0, newServiceError(400, CodePromoInactive, "Promo code is no longer active")
	}

	now := time.Now()
	if now.Before(promo.ValidFrom) {
		return nil, 0, newServiceError(400, CodePromoNotYetValid, "Promo code is not valid yet")
	}
	if now.After(promo.ValidUntil) {
		return nil, 0, newServiceError(400, CodePromoExpired, "Promo code has expired")
	}

	if promo.MaxUses > 0 && promo.UsedCount >= promo.MaxUses {
		return nil, 0, newServiceError(400, CodePromoMaxUses, "Promo code usage limit reached")
	}

	if orderAmount < promo.MinOrderPaise {
		return nil, 0, newServiceError(400, CodePromoBelowMinOrder,
			fmt.Sprintf("Minimum order of %s required for this promo", models.Rupees(promo.MinOrderPaise)))
	}

	if promo.AllowedRole != "" && promo.AllowedRole != role {
		return nil, 0, newServiceError(400, CodePromoRoleNotEligible, "Promo code is not available for your account")
	}

	if promo.MaxUsesPerUser > 0 {
		used, err := orderRepo.CountByUserAndPromo(ctx, userID, promo.Code)
		if err != nil {
			s.logger.Error("Promo usage count failed", zap.String("code", promo.Code), zap.Error(err))
			return nil, 0, internalError("Failed to validate promo code")
		}
		if used >= int64(promo.MaxUsesPerUser) {
			return nil, 0, newServiceError(400, CodePromoPerUserLimit, "You have already used this promo code")
		}
	}

	return promo, PromoDiscount(promo, orderAmount), nil
}

// Redeem bumps the global usage counter inside the caller's transaction.
func (s *promoServiceImpl) Redeem(ctx context.Context, tx *gorm.DB, code string) error {
	return s.promoRepo.WithTx(tx).IncrementUsedCount(ctx, code)
}

// Preview quotes a discount without redeeming the code.
func (s *promoServiceImpl) Preview(ctx context.Context, req *models.PreviewPromoRequest, userID uuid.UUID, role string) (*models.PreviewPromoResponse, *ServiceError) {
	promo, discount, svcErr := s.Validate(ctx, nil, req.Code, req.OrderAmountPaise, userID, role)
	if svcErr != nil {
		return nil, svcErr
	}
	return &models.PreviewPromoResponse{
		Code:          promo.Code,
		DiscountPaise: discount,
		Rupees:        models.Rupees(discount),
	}, nil
}

// DeactivatePromo deactivates a promo code.
func (s *promoServiceImpl) DeactivatePromo(ctx context.Context, code string) *ServiceError {
	if err := s.promoRepo.Deactivate(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newServiceError(404, CodePromoNotFound, "Promo code not found")
		}
		s.logger.Error("Failed to deactivate promo", zap.String("code", code), zap.Error(err))
		return internalError("Failed to deactivate promo code")
	}

	s.logger.Info("Promo code deactivated", zap.String("code", code))
	return nil
}

// ListPromos returns paginated promo codes.
func (s *promoServiceImpl) ListPromos(ctx context.Context, page, limit int) ([]models.PromoCode, int64, *ServiceError) {
	promos, total, err := s.promoRepo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list promos", zap.Error(err))
		return nil, 0, internalError("Failed to list promo codes")
	}
	return promos, total, nil
}
