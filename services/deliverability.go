package services

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/repository"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// DeliverabilityService resolves which dark store serves a pincode. Callers
// must resolve at placement time, not from an earlier quote: store activation
// can change between cart and checkout.
type DeliverabilityService interface {
	// Resolve returns the active location for a pincode, or a NotDeliverable
	// error. An unmapped pincode and a pincode mapped to an inactive store
	// fail identically.
	Resolve(ctx context.Context, pincode string) (*models.FulfillmentLocation, *ServiceError)
	Check(ctx context.Context, pincode string) (*models.ServiceabilityResponse, *ServiceError)
	CreateMapping(ctx context.Context, req *models.CreatePincodeMappingRequest) (*models.PincodeMapping, *ServiceError)
	DeleteMapping(ctx context.Context, pincode string) *ServiceError
}

type deliverabilityServiceImpl struct {
	locationRepo repository.LocationRepository
	logger       *zap.Logger
}

// NewDeliverabilityService creates a new DeliverabilityService.
func NewDeliverabilityService(locationRepo repository.LocationRepository, logger *zap.Logger) DeliverabilityService {
	return &deliverabilityServiceImpl{locationRepo: locationRepo, logger: logger}
}

// Resolve validates the pincode shape and looks up the active mapping.
func (s *deliverabilityServiceImpl) Resolve(ctx context.Context, pincode string) (*models.FulfillmentLocation, *ServiceError) {
	if !pincodePattern.MatchString(pincode) {
		return nil, newServiceError(400, CodeNotDeliverable, "Pincode must be 6 digits")
	}

	location, err := s.locationRepo.FindActiveByPincode(ctx, pincode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Distinguish mapped-but-inactive from unmapped for operators
			// only; the caller sees one merged result.
			if _, mapErr := s.locationRepo.FindMapping(ctx, pincode); mapErr == nil {
				s.logger.Debug("Pincode mapped to inactive location", zap.String("pincode", pincode))
			}
			return nil, newServiceError(400, CodeNotDeliverable, "We do not deliver to this pincode yet")
		}
		s.logger.Error("Pincode lookup failed", zap.String("pincode", pincode), zap.Error(err))
		return nil, internalError("Failed to check deliverability")
	}

	return location, nil
}

// CreateMapping assigns a pincode to a fulfillment location. A pincode maps
// to at most one location, so remapping requires deleting the old row first.
func (s *deliverabilityServiceImpl) CreateMapping(ctx context.Context, req *models.CreatePincodeMappingRequest) (*models.PincodeMapping, *ServiceError) {
	if _, err := s.locationRepo.FindByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newServiceError(404, CodeInvalidReference, "Location not found")
		}
		s.logger.Error("Location lookup failed", zap.Error(err))
		return nil, internalError("Failed to create pincode mapping")
	}
	if _, err := s.locationRepo.FindMapping(ctx, req.Pincode); err == nil {
		return nil, newServiceError(409, CodeInvalidState, "Pincode is already mapped")
	}

	mapping := &models.PincodeMapping{
		Pincode:    req.Pincode,
		LocationID: req.LocationID,
	}
	if err := s.locationRepo.CreateMapping(ctx, mapping); err != nil {
		s.logger.Error("Failed to create pincode mapping", zap.String("pincode", req.Pincode), zap.Error(err))
		return nil, internalError("Failed to create pincode mapping")
	}
	s.logger.Info("Pincode mapped",
		zap.String("pincode", req.Pincode),
		zap.String("location_id", req.LocationID.String()),
	)
	return mapping, nil
}

// DeleteMapping removes a pincode from coverage.
func (s *deliverabilityServiceImpl) DeleteMapping(ctx context.Context, pincode string) *ServiceError {
	if err := s.locationRepo.DeleteMapping(ctx, pincode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newServiceError(404, CodeInvalidReference, "Pincode mapping not found")
		}
		s.logger.Error("Failed to delete pincode mapping", zap.String("pincode", pincode), zap.Error(err))
		return internalError("Failed to delete pincode mapping")
	}
	return nil
}

// Check is the non-binding storefront serviceability probe.
func (s *deliverabilityServiceImpl) Check(ctx context.Context, pincode string) (*models.ServiceabilityResponse, *ServiceError) {
	location, svcErr := s.Resolve(ctx, pincode)
	if svcErr != nil {
		if svcErr.Code == CodeNotDeliverable && svcErr.StatusCode != 500 {
			return &models.ServiceabilityResponse{Pincode: pincode, Deliverable: false}, nil
		}
		return nil, svcErr
	}
	return &models.ServiceabilityResponse{
		Pincode:      pincode,
		Deliverable:  true,
		LocationID:   location.ID.String(),
		LocationName: location.Name,
	}, nil
}
