package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/services"
)

// InventoryController handles back-office stock management endpoints.
type InventoryController struct {
	inventoryService services.InventoryService
}

// NewInventoryController creates a new InventoryController.
func NewInventoryController(inventoryService services.InventoryService) *InventoryController {
	return &InventoryController{inventoryService: inventoryService}
}

// CreateStockConfig handles POST /admin/inventory (admin only).
func (ic *InventoryController) CreateStockConfig(ctx *gin.Context) {
	var req models.CreateStockConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	stock, svcErr := ic.inventoryService.CreateStockConfig(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"stock": stock})
}

// StockIn handles POST /admin/inventory/stock-in (admin only).
func (ic *InventoryController) StockIn(ctx *gin.Context) {
	ic.applyMovement(ctx, ic.inventoryService.StockIn)
}

// StockOut handles POST /admin/inventory/stock-out (admin only).
func (ic *InventoryController) StockOut(ctx *gin.Context) {
	ic.applyMovement(ctx, ic.inventoryService.StockOut)
}

// Adjust handles POST /admin/inventory/adjust (admin only).
func (ic *InventoryController) Adjust(ctx *gin.Context) {
	ic.applyMovement(ctx, ic.inventoryService.Adjust)
}

func (ic *InventoryController) applyMovement(
	ctx *gin.Context,
	apply func(ctx context.Context, req *models.AdjustStockRequest) (*models.StockTransaction, *services.ServiceError),
) {
	var req models.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	txn, svcErr := apply(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// GetStock handles GET /admin/inventory/:locationId/:productId (admin only).
func (ic *InventoryController) GetStock(ctx *gin.Context) {
	locationID, productID, ok := parseStockPath(ctx)
	if !ok {
		return
	}

	stock, svcErr := ic.inventoryService.GetStock(ctx.Request.Context(), locationID, productID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"stock": stock})
}

// ListTransactions handles GET /admin/inventory/:locationId/:productId/transactions (admin only).
func (ic *InventoryController) ListTransactions(ctx *gin.Context) {
	locationID, productID, ok := parseStockPath(ctx)
	if !ok {
		return
	}

	page, limit := parsePaginationParams(ctx)
	txns, total, svcErr := ic.inventoryService.ListTransactions(ctx.Request.Context(), locationID, productID, page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"transactions": txns,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// ListLowStock handles GET /admin/inventory/low-stock (admin only).
func (ic *InventoryController) ListLowStock(ctx *gin.Context) {
	locationID := uuid.Nil
	if raw := ctx.Query("location_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
			return
		}
		locationID = parsed
	}

	stocks, svcErr := ic.inventoryService.ListLowStock(ctx.Request.Context(), locationID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"stocks": stocks})
}

func parseStockPath(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	locationID, err := uuid.Parse(ctx.Param("locationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return uuid.Nil, uuid.Nil, false
	}
	productID, err := uuid.Parse(ctx.Param("productId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return locationID, productID, true
}
