package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raj9661/paniwalaa-backend/kafka"
	"github.com/raj9661/paniwalaa-backend/models"
	aws_pkg "github.com/raj9661/paniwalaa-backend/pkg/aws"
	"github.com/raj9661/paniwalaa-backend/repository"
)

// OrderListResponse is the paginated order listing payload.
type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

// MetaData carries pagination info.
type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// OrderService defines the interface for order business logic.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.PlaceOrderResponse, *ServiceError)
	GetUserOrders(ctx context.Context, userID uuid.UUID, page, limit int) (*OrderListResponse, *ServiceError)
	GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, *ServiceError)
	GetAllOrders(ctx context.Context, page, limit int) (*OrderListResponse, *ServiceError)
	VerifyPayment(ctx context.Context, orderID, adminID uuid.UUID, req *models.VerifyPaymentRequest) (*models.Order, *ServiceError)
	WaiveFloorCharge(ctx context.Context, orderID uuid.UUID, req *models.WaiveFloorChargeRequest) (*models.Order, *ServiceError)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, *ServiceError)
}

type orderServiceImpl struct {
	txManager      repository.TxManager
	orderRepo      repository.OrderRepository
	inventoryRepo  repository.InventoryRepository
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
	partnerRepo    repository.PartnerRepository
	settingsRepo   repository.SettingsRepository
	deliverability DeliverabilityService
	promoService   PromoService
	orderProducer  kafka.ProducerAPI
	snsClient      aws_pkg.SNSPublisher
	snsTopicArn    string
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	txManager repository.TxManager,
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	partnerRepo repository.PartnerRepository,
	settingsRepo repository.SettingsRepository,
	deliverability DeliverabilityService,
	promoService PromoService,
	orderProducer kafka.ProducerAPI,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		txManager:      txManager,
		orderRepo:      orderRepo,
		inventoryRepo:  inventoryRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		partnerRepo:    partnerRepo,
		settingsRepo:   settingsRepo,
		deliverability: deliverability,
		promoService:   promoService,
		orderProducer:  orderProducer,
		snsClient:      snsClient,
		snsTopicArn:    snsTopicArn,
		logger:         logger,
	}
}

// PlaceOrder validates the request, reserves stock, computes the money
// breakdown and persists the order with its ledger entry in one transaction.
// Either everything commits or nothing does; a promo failure after the
// reserve rolls the reserve back too.
func (s *orderServiceImpl) PlaceOrder(ctx context.Context, userID uuid.UUID, req *models.PlaceOrderRequest) (*models.PlaceOrderResponse, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, s.referenceError(err, "User not found")
	}
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, s.referenceError(err, "Product not found")
	}
	address, err := s.userRepo.FindAddress(ctx, req.AddressID, userID)
	if err != nil {
		return nil, s.referenceError(err, "Address not found")
	}

	// Deliverability is always resolved against current state, never reused
	// from an earlier quote.
	location, svcErr := s.deliverability.Resolve(ctx, address.Pincode)
	if svcErr != nil {
		return nil, svcErr
	}

	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load site settings", zap.Error(err))
		return nil, internalError("Failed to load site settings")
	}

	baseTotal := BaseTotal(product, req.Quantity)
	floorCharge := FloorCharge(address, settings)
	deposit := SecurityDeposit(product, req.Quantity, req.DepositOverridePaise)
	selfDelivery := s.ownerDeliversOwnOrders(ctx, location)
	commission := Commission(product, req.Quantity, settings, selfDelivery)
	earnings := LocationEarnings(location, req.Quantity)

	orderID := uuid.New()
	order := &models.Order{
		ID:          orderID,
		OrderNumber: newOrderNumber(),
		UserID:      userID,
		ProductID:   product.ID,
		Quantity:    req.Quantity,
		LocationID:  location.ID,

		AddressID:      address.ID,
		AddressLine:    snapshotAddress(address),
		AddressPincode: address.Pincode,
		AddressFloor:   address.Floor,

		BaseTotalPaise:        baseTotal,
		FloorChargePaise:      floorCharge,
		SecurityDepositPaise:  deposit,
		CommissionPaise:       commission,
		LocationEarningsPaise: earnings,

		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.OrderStatusPlaced,
	}
	if req.PaymentMethod == models.PaymentMethodUPI {
		order.PaymentStatus = models.PaymentStatusUnverified
		order.UpiReference = req.UpiReference
	}

	txErr := s.txManager.InTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.inventoryRepo.WithTx(tx).Reserve(ctx, location.ID, product.ID, req.Quantity, orderID); err != nil {
			return err
		}

		if req.PromoCode != "" {
			promo, discount, svcErr := s.promoService.Validate(ctx, tx, req.PromoCode, baseTotal, userID, user.Role)
			if svcErr != nil {
				return svcErr
			}
			order.PromoCode = promo.Code
			order.DiscountPaise = discount
		}

		order.FinalTotalPaise = FinalTotal(baseTotal, floorCharge, 0, deposit, order.DiscountPaise)

		if err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}

		if order.PromoCode != "" {
			if err := s.promoService.Redeem(ctx, tx, order.PromoCode); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, s.mapPlacementError(txErr)
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.String("location_id", location.ID.String()),
		zap.Int64("final_total_paise", order.FinalTotalPaise),
	)

	// Step 9: downstream events are best-effort. The order is durable either way.
	s.publishOrderCreated(ctx, order)
	s.sendConfirmation(ctx, order, user, product)

	return &models.PlaceOrderResponse{
		Order:        order,
		LocationName: location.Name,
		BaseTotal:    models.Money(order.BaseTotalPaise),
		FloorCharge:  models.Money(order.FloorChargePaise),
		Deposit:      models.Money(order.SecurityDepositPaise),
		Discount:     models.Money(order.DiscountPaise),
		FinalTotal:   models.Money(order.FinalTotalPaise),
	}, nil
}

// ownerDeliversOwnOrders reports whether the location owner is a registered
// delivery partner. Lookup priority is phone, then email, then the explicit
// partner link; the first hit wins.
func (s *orderServiceImpl) ownerDeliversOwnOrders(ctx context.Context, location *models.FulfillmentLocation) bool {
	if !location.SelfDelivery {
		return false
	}
	if location.OwnerPhone != "" {
		_, err := s.partnerRepo.FindByPhone(ctx, location.OwnerPhone)
		if s.partnerFound(location, err) {
			return true
		}
	}
	if location.OwnerEmail != "" {
		_, err := s.partnerRepo.FindByEmail(ctx, location.OwnerEmail)
		if s.partnerFound(location, err) {
			return true
		}
	}
	if location.OwnerPartnerID != nil {
		_, err := s.partnerRepo.FindByID(ctx, *location.OwnerPartnerID)
		if s.partnerFound(location, err) {
			return true
		}
	}
	return false
}

// partnerFound interprets a partner lookup error. A missing row means the
// owner is simply not a partner; any other error is logged before the bonus
// is skipped, so a flaky lookup never fails the order.
func (s *orderServiceImpl) partnerFound(location *models.FulfillmentLocation, err error) bool {
	if err == nil {
		return true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("Partner lookup failed, skipping self-delivery bonus",
			zap.String("location_id", location.ID.String()),
			zap.Error(err),
		)
	}
	return false
}

// GetUserOrders retrieves paginated orders for a specific user.
func (s *orderServiceImpl) GetUserOrders(ctx context.Context, userID uuid.UUID, page, limit int) (*OrderListResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internalError("Failed to fetch orders")
	}
	return newOrderListResponse(orders, total, page, limit), nil
}

// GetAllOrders retrieves paginated orders for all users (admin only).
func (s *orderServiceImpl) GetAllOrders(ctx context.Context, page, limit int) (*OrderListResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch all orders", zap.Error(err))
		return nil, internalError("Failed to fetch orders")
	}
	return newOrderListResponse(orders, total, page, limit), nil
}

// GetOrderByID retrieves a specific order for a user.
func (s *orderServiceImpl) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newServiceError(404, CodeInvalidReference, "Order not found")
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalError("Failed to fetch order")
	}
	return order, nil
}

// VerifyPayment records the outcome of manual UPI verification.
func (s *orderServiceImpl) VerifyPayment(ctx context.Context, orderID, adminID uuid.UUID, req *models.VerifyPaymentRequest) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, s.referenceError(err, "Order not found")
	}
	if order.PaymentMethod != models.PaymentMethodUPI {
		return nil, newServiceError(400, CodeInvalidState, "Only UPI payments are manually verified")
	}
	if order.PaymentStatus == models.PaymentStatusVerified {
		return nil, newServiceError(400, CodeInvalidState, "Payment is already verified")
	}

	now := time.Now()
	order.PaymentStatus = req.Status
	order.PaymentVerifiedBy = &adminID
	order.PaymentVerifiedAt = &now
	order.PaymentNote = req.Note

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update payment status", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalError("Failed to update payment status")
	}

	s.logger.Info("Payment verification recorded",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(req.Status)),
		zap.String("verified_by", adminID.String()),
	)
	return order, nil
}

// WaiveFloorCharge amends the waived amount and recomputes the final total
// under the money invariant. Product and quantity stay untouched.
func (s *orderServiceImpl) WaiveFloorCharge(ctx context.Context, orderID uuid.UUID, req *models.WaiveFloorChargeRequest) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, s.referenceError(err, "Order not found")
	}
	if req.WaivedPaise > order.FloorChargePaise {
		return nil, newServiceError(400, CodeInvalidState,
			fmt.Sprintf("Waiver cannot exceed the floor charge of %s", models.Rupees(order.FloorChargePaise)))
	}

	order.FloorChargeWaivedPaise = req.WaivedPaise
	order.FinalTotalPaise = FinalTotal(
		order.BaseTotalPaise,
		order.FloorChargePaise,
		order.FloorChargeWaivedPaise,
		order.SecurityDepositPaise,
		order.DiscountPaise,
	)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to waive floor charge", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalError("Failed to waive floor charge")
	}
	return order, nil
}

// UpdateStatus moves an order through its lifecycle. Cancelling an
// undelivered order restores its stock with a linked adjustment entry, in
// the same transaction as the status change.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, s.referenceError(err, "Order not found")
	}
	if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusDelivered {
		return nil, newServiceError(400, CodeInvalidState,
			fmt.Sprintf("Order is already %s", order.Status))
	}

	if req.Status == models.OrderStatusCancelled {
		txErr := s.txManager.InTransaction(ctx, func(tx *gorm.DB) error {
			note := "restock on cancellation of " + order.OrderNumber
			if _, err := s.inventoryRepo.WithTx(tx).Adjust(ctx, order.LocationID, order.ProductID,
				order.Quantity, models.StockTxnAdjustment, &order.ID, note); err != nil {
				return err
			}
			order.Status = models.OrderStatusCancelled
			return s.orderRepo.WithTx(tx).Update(ctx, order)
		})
		if txErr != nil {
			return nil, s.mapPlacementError(txErr)
		}
		s.logger.Info("Order cancelled and stock restored", zap.String("order_id", order.ID.String()))
		return order, nil
	}

	order.Status = req.Status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order status", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalError("Failed to update order status")
	}
	return order, nil
}

func (s *orderServiceImpl) referenceError(err error, message string) *ServiceError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newServiceError(404, CodeInvalidReference, message)
	}
	s.logger.Error("Reference lookup failed", zap.Error(err))
	return internalError("Failed to load order references")
}

// mapPlacementError translates transaction failures into the error taxonomy.
func (s *orderServiceImpl) mapPlacementError(err error) *ServiceError {
	var svcErr *ServiceError
	var insufficient *repository.InsufficientStockError
	var capacity *repository.CapacityError

	switch {
	case errors.As(err, &svcErr):
		return svcErr
	case errors.Is(err, repository.ErrStockNotConfigured):
		return newServiceError(400, CodeProductNotConfigured, "Product is not configured at this location")
	case errors.Is(err, repository.ErrPromoExhausted):
		return newServiceError(400, CodePromoMaxUses, "Promo code usage limit reached")
	case errors.As(err, &insufficient):
		return newServiceError(400, CodeInsufficientStock,
			fmt.Sprintf("Insufficient stock: %d available", insufficient.Available))
	case errors.As(err, &capacity):
		return newServiceError(400, CodeCapacityExceeded,
			fmt.Sprintf("Capacity exceeded: at most %d more units can be added", capacity.MaxAddable))
	default:
		s.logger.Error("Order transaction failed", zap.Error(err))
		return internalError("Failed to place order")
	}
}

func (s *orderServiceImpl) publishOrderCreated(ctx context.Context, order *models.Order) {
	if s.orderProducer == nil {
		return
	}
	event := models.OrderCreatedEvent{
		EventType:       "order_created",
		OrderID:         order.ID.String(),
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID.String(),
		ProductID:       order.ProductID.String(),
		Quantity:        order.Quantity,
		LocationID:      order.LocationID.String(),
		FinalTotalPaise: order.FinalTotalPaise,
		PaymentMethod:   string(order.PaymentMethod),
		Timestamp:       time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal order_created event", zap.Error(err))
		return
	}
	if err := s.orderProducer.Publish(ctx, []byte(order.UserID.String()), payload); err != nil {
		s.logger.Error("Failed to publish order_created event",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

func (s *orderServiceImpl) sendConfirmation(ctx context.Context, order *models.Order, user *models.User, product *models.Product) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}
	confirmation := models.OrderConfirmation{
		EventType:       "order_confirmation",
		OrderID:         order.ID.String(),
		OrderNumber:     order.OrderNumber,
		RecipientEmail:  user.Email,
		RecipientName:   user.Name,
		ProductTitle:    product.Title,
		Quantity:        order.Quantity,
		FinalTotalPaise: order.FinalTotalPaise,
		FinalTotal:      models.Rupees(order.FinalTotalPaise),
		Timestamp:       time.Now(),
	}
	payload, err := json.Marshal(confirmation)
	if err != nil {
		s.logger.Error("Failed to marshal order confirmation", zap.Error(err))
		return
	}
	if err := s.snsClient.Publish(ctx, s.snsTopicArn, payload); err != nil {
		s.logger.Error("Order confirmation publish failed (order is unaffected)",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

func newOrderListResponse(orders []models.Order, total int64, page, limit int) *OrderListResponse {
	return &OrderListResponse{
		Orders: orders,
		Meta: MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func newOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102-150405") + "-" + uuid.New().String()[:8]
}

func snapshotAddress(a *models.Address) string {
	line := a.Line1
	if a.Line2 != "" {
		line += ", " + a.Line2
	}
	return line + ", " + a.City + " " + a.Pincode
}
