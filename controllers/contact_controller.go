package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/services"
)

// ContactController handles the public contact form.
type ContactController struct {
	contactService services.ContactService
}

// NewContactController creates a new ContactController.
func NewContactController(contactService services.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// SubmitMessage handles POST /contact (public, rate limited).
func (cc *ContactController) SubmitMessage(ctx *gin.Context) {
	var req models.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	message, svcErr := cc.contactService.SubmitMessage(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Thanks for reaching out", "id": message.ID})
}
