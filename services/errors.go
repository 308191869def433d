package services

// Error codes returned alongside HTTP status so callers can branch without
// parsing messages.
const (
	CodeInvalidReference     = "INVALID_REFERENCE"
	CodeNotDeliverable       = "NOT_DELIVERABLE"
	CodeProductNotConfigured = "PRODUCT_NOT_CONFIGURED"
	CodeInsufficientStock    = "INSUFFICIENT_STOCK"
	CodeCapacityExceeded     = "CAPACITY_EXCEEDED"
	CodePromoNotFound        = "PROMO_NOT_FOUND"
	CodePromoInactive        = "PROMO_INACTIVE"
	CodePromoNotYetValid     = "PROMO_NOT_YET_VALID"
	CodePromoExpired         = "PROMO_EXPIRED"
	CodePromoMaxUses         = "PROMO_MAX_USES_REACHED"
	CodePromoBelowMinOrder   = "PROMO_BELOW_MIN_ORDER"
	CodePromoRoleNotEligible = "PROMO_ROLE_NOT_ELIGIBLE"
	CodePromoPerUserLimit    = "PROMO_PER_USER_LIMIT"
	CodeInvalidState         = "INVALID_STATE"
	CodeInternal             = "INTERNAL"
)

// ServiceError represents a typed error with an HTTP status code and a
// machine-readable code.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func newServiceError(status int, code, message string) *ServiceError {
	return &ServiceError{StatusCode: status, Code: code, Message: message}
}

func internalError(message string) *ServiceError {
	return newServiceError(500, CodeInternal, message)
}
