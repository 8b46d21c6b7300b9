package utils

// Application constants
const (
	// Application name
	AppName = "WanderSphere"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// GST applied on every booking subtotal
	TaxRate = 0.18

	// Tolerance when comparing client submitted pricing to server pricing
	PricingEpsilon = 0.01

	// Public booking code alphabet and length
	BookingCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	BookingCodeLength = 8

	// How many times a colliding booking code is regenerated before giving up
	BookingCodeMaxAttempts = 5

	// Minimum hours before the slot start a booking can still be cancelled
	CancellationCutoffHours = 24

	// Booking quantity bounds per request
	MinBookingQuantity = 1
	MaxBookingQuantity = 20

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100
)

// Machine readable error codes returned to API clients
const (
	CodeValidationError           = "VALIDATION_ERROR"
	CodeExperienceNotFound        = "EXPERIENCE_NOT_FOUND"
	CodeExperienceNotAvailable    = "EXPERIENCE_NOT_AVAILABLE"
	CodeInvalidBookingDate        = "INVALID_BOOKING_DATE"
	CodeSlotNotAvailable          = "SLOT_NOT_AVAILABLE"
	CodeInsufficientCapacity      = "INSUFFICIENT_CAPACITY"
	CodePricingMismatch           = "PRICING_MISMATCH"
	CodeInvalidPromoCode          = "INVALID_PROMO_CODE"
	CodePromoValidationFailed     = "PROMO_CODE_VALIDATION_FAILED"
	CodeConcurrentBookingConflict = "CONCURRENT_BOOKING_CONFLICT"
	CodeSlotBookingFailed         = "SLOT_BOOKING_FAILED"
	CodeBookingNotFound           = "BOOKING_NOT_FOUND"
	CodeBookingAlreadyCancelled   = "BOOKING_ALREADY_CANCELLED"
	CodeCancellationTooLate       = "CANCELLATION_TOO_LATE"
	CodePromoCodeNotFound         = "PROMO_CODE_NOT_FOUND"
	CodePromoCodeInvalid          = "PROMO_CODE_INVALID"
)

// Error messages
const (
	ErrRecordNotFound = "Record not found"
	ErrDuplicateEntry = "Duplicate entry"
	ErrDBConnection   = "Database connection error"

	ErrInternalServer     = "Internal server error"
	ErrServiceUnavailable = "Service unavailable"
)
