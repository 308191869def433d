package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/services"
)

// ServiceabilityController handles pincode coverage endpoints.
type ServiceabilityController struct {
	deliverability services.DeliverabilityService
}

// NewServiceabilityController creates a new ServiceabilityController.
func NewServiceabilityController(deliverability services.DeliverabilityService) *ServiceabilityController {
	return &ServiceabilityController{deliverability: deliverability}
}

// CheckPincode handles GET /serviceability/:pincode (public).
func (sc *ServiceabilityController) CheckPincode(ctx *gin.Context) {
	resp, svcErr := sc.deliverability.Check(ctx.Request.Context(), ctx.Param("pincode"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateMapping handles POST /admin/pincodes (admin only).
func (sc *ServiceabilityController) CreateMapping(ctx *gin.Context) {
	var req models.CreatePincodeMappingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	mapping, svcErr := sc.deliverability.CreateMapping(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"mapping": mapping})
}

// DeleteMapping handles DELETE /admin/pincodes/:pincode (admin only).
func (sc *ServiceabilityController) DeleteMapping(ctx *gin.Context) {
	if svcErr := sc.deliverability.DeleteMapping(ctx.Request.Context(), ctx.Param("pincode")); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Pincode mapping removed"})
}
