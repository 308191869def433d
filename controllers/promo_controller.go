package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raj9661/paniwalaa-backend/middleware"
	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/services"
)

// PromoController handles HTTP requests for promo-code operations.
type PromoController struct {
	promoService services.PromoService
}

// NewPromoController creates a new PromoController.
func NewPromoController(promoService services.PromoService) *PromoController {
	return &PromoController{promoService: promoService}
}

// CreatePromo handles POST /admin/promos (admin only).
func (pc *PromoController) CreatePromo(ctx *gin.Context) {
	var req models.CreatePromoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	promo, svcErr := pc.promoService.CreatePromo(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"promo": promo})
}

// PreviewPromo handles POST /promos/preview. It quotes a discount for the
// authenticated user without redeeming the code.
func (pc *PromoController) PreviewPromo(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.PreviewPromoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resp, svcErr := pc.promoService.Preview(ctx.Request.Context(), &req, userID, middleware.GetUserRole(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeactivatePromo handles DELETE /admin/promos/:code (admin only).
func (pc *PromoController) DeactivatePromo(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Promo code is required"})
		return
	}

	if svcErr := pc.promoService.DeactivatePromo(ctx.Request.Context(), code); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Promo code deactivated"})
}

// ListPromos handles GET /admin/promos (admin only).
func (pc *PromoController) ListPromos(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	promos, total, svcErr := pc.promoService.ListPromos(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"promos": promos,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}
