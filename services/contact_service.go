package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/repository"
)

// ContactService stores messages submitted through the public contact form.
type ContactService interface {
	SubmitMessage(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, *ServiceError)
}

type contactServiceImpl struct {
	contactRepo repository.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo repository.ContactRepository, logger *zap.Logger) ContactService {
	return &contactServiceImpl{contactRepo: contactRepo, logger: logger}
}

func (s *contactServiceImpl) SubmitMessage(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, *ServiceError) {
	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := s.contactRepo.Create(ctx, message); err != nil {
		s.logger.Error("Failed to store contact message", zap.Error(err))
		return nil, internalError("Failed to submit message")
	}
	s.logger.Info("Contact message received", zap.String("email", req.Email))
	return message, nil
}
