package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/raj9661/paniwalaa-backend/models"
	"github.com/raj9661/paniwalaa-backend/services"
)

func newDeliverabilityFixture() (services.DeliverabilityService, *mockLocationRepo) {
	logger, _ := zap.NewDevelopment()
	repo := newMockLocationRepo()
	return services.NewDeliverabilityService(repo, logger), repo
}

func TestResolve_ValidPincode(t *testing.T) {
	svc, repo := newDeliverabilityFixture()
	locationID := uuid.New()
	repo.locations[locationID] = &models.FulfillmentLocation{ID: locationID, Name: "Dwarka Store", Active: true}
	repo.mappings["110078"] = locationID

	location, svcErr := svc.Resolve(context.Background(), "110078")

	assert.Nil(t, svcErr)
	assert.Equal(t, "Dwarka Store", location.Name)
}

func TestResolve_RejectsMalformedPincode(t *testing.T) {
	svc, _ := newDeliverabilityFixture()

	for _, pincode := range []string{"1234", "1234567", "11004x", ""} {
		_, svcErr := svc.Resolve(context.Background(), pincode)
		assert.NotNil(t, svcErr, pincode)
		assert.Equal(t, services.CodeNotDeliverable, svcErr.Code)
	}
}

func TestResolve_UnmappedAndInactiveFailIdentically(t *testing.T) {
	svc, repo := newDeliverabilityFixture()
	locationID := uuid.New()
	repo.locations[locationID] = &models.FulfillmentLocation{ID: locationID, Active: false}
	repo.mappings["110078"] = locationID

	_, unmappedErr := svc.Resolve(context.Background(), "110001")
	_, inactiveErr := svc.Resolve(context.Background(), "110078")

	assert.NotNil(t, unmappedErr)
	assert.NotNil(t, inactiveErr)
	assert.Equal(t, unmappedErr.Code, inactiveErr.Code)
	assert.Equal(t, unmappedErr.Message, inactiveErr.Message)
}

func TestCheck_ReportsDeliverability(t *testing.T) {
	svc, repo := newDeliverabilityFixture()
	locationID := uuid.New()
	repo.locations[locationID] = &models.FulfillmentLocation{ID: locationID, Name: "Dwarka Store", Active: true}
	repo.mappings["110078"] = locationID

	resp, svcErr := svc.Check(context.Background(), "110078")
	assert.Nil(t, svcErr)
	assert.True(t, resp.Deliverable)
	assert.Equal(t, "Dwarka Store", resp.LocationName)

	resp, svcErr = svc.Check(context.Background(), "560001")
	assert.Nil(t, svcErr)
	assert.False(t, resp.Deliverable)
	assert.Empty(t, resp.LocationName)
}

func TestCreateMapping_RejectsDuplicateAndUnknownLocation(t *testing.T) {
	svc, repo := newDeliverabilityFixture()
	locationID := uuid.New()
	repo.locations[locationID] = &models.FulfillmentLocation{ID: locationID, Active: true}

	_, svcErr := svc.CreateMapping(context.Background(), &models.CreatePincodeMappingRequest{
		Pincode:    "110078",
		LocationID: uuid.New(),
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)

	mapping, svcErr := svc.CreateMapping(context.Background(), &models.CreatePincodeMappingRequest{
		Pincode:    "110078",
		LocationID: locationID,
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, "110078", mapping.Pincode)

	_, svcErr = svc.CreateMapping(context.Background(), &models.CreatePincodeMappingRequest{
		Pincode:    "110078",
		LocationID: locationID,
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}
