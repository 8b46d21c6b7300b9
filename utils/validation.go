package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slotTimeRegex  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9] (am|pm)$`)
	promoCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)
)

// CustomerInfo carries the customer fields of a booking request
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// BookingDetails carries the slot selection of a booking request
type BookingDetails struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Quantity int    `json:"quantity"`
}

// SubmittedPricing carries the client computed pricing of a booking request
type SubmittedPricing struct {
	Subtotal float64 `json:"subtotal"`
	Taxes    float64 `json:"taxes"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// CreateBookingRequest is the createBooking request body
type CreateBookingRequest struct {
	ExperienceID   uint             `json:"experienceId"`
	CustomerInfo   CustomerInfo     `json:"customerInfo"`
	BookingDetails BookingDetails   `json:"bookingDetails"`
	Pricing        SubmittedPricing `json:"pricing"`
	PromoCode      string           `json:"promoCode"`
}

// Validate runs the request through one ordered rule set and returns every
// violation, so clients get a deterministic, complete picture in one pass.
func (r *CreateBookingRequest) Validate() FieldValidationErrors {
	var errs FieldValidationErrors

	if r.ExperienceID == 0 {
		errs = append(errs, FieldValidationError{"experienceId", "Experience ID is required"})
	}

	name := strings.TrimSpace(r.CustomerInfo.FullName)
	if len(name) < 2 || len(name) > 100 {
		errs = append(errs, FieldValidationError{"customerInfo.fullName", "Full name must be between 2 and 100 characters"})
	}

	email := strings.ToLower(strings.TrimSpace(r.CustomerInfo.Email))
	if !emailRegex.MatchString(email) {
		errs = append(errs, FieldValidationError{"customerInfo.email", "Please provide a valid email address"})
	}

	if r.BookingDetails.Date == "" {
		errs = append(errs, FieldValidationError{"bookingDetails.date", "Booking date is required"})
	} else if _, err := time.Parse("2006-01-02", r.BookingDetails.Date); err != nil {
		errs = append(errs, FieldValidationError{"bookingDetails.date", "Booking date must be in YYYY-MM-DD format"})
	}

	if !slotTimeRegex.MatchString(r.BookingDetails.Time) {
		errs = append(errs, FieldValidationError{"bookingDetails.time", "Time must be in format HH:MM am/pm"})
	}

	if r.BookingDetails.Quantity < MinBookingQuantity || r.BookingDetails.Quantity > MaxBookingQuantity {
		errs = append(errs, FieldValidationError{"bookingDetails.quantity",
			fmt.Sprintf("Quantity must be between %d and %d", MinBookingQuantity, MaxBookingQuantity)})
	}

	if r.Pricing.Subtotal < 0 || r.Pricing.Taxes < 0 || r.Pricing.Discount < 0 || r.Pricing.Total < 0 {
		errs = append(errs, FieldValidationError{"pricing", "Pricing fields cannot be negative"})
	}

	if r.PromoCode != "" && !promoCodeRegex.MatchString(strings.ToUpper(strings.TrimSpace(r.PromoCode))) {
		errs = append(errs, FieldValidationError{"promoCode", "Promo code can only contain uppercase letters and numbers (3-20 characters)"})
	}

	return errs
}

// NormalizedEmail returns the customer email in canonical lowercase form
func (r *CreateBookingRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.CustomerInfo.Email))
}

// NormalizedPromoCode returns the promo code in canonical uppercase form
func (r *CreateBookingRequest) NormalizedPromoCode() string {
	return strings.ToUpper(strings.TrimSpace(r.PromoCode))
}

// ParsedDate returns the requested booking date. Validate must have passed.
func (r *CreateBookingRequest) ParsedDate() time.Time {
	d, _ := time.Parse("2006-01-02", r.BookingDetails.Date)
	return d
}

// ValidatePromoRequestCode checks the fields of a standalone promo validation
// request
func ValidatePromoRequestCode(code string, orderAmount float64) FieldValidationErrors {
	var errs FieldValidationErrors
	if strings.TrimSpace(code) == "" {
		errs = append(errs, FieldValidationError{"code", "Promo code is required"})
	} else if !promoCodeRegex.MatchString(strings.ToUpper(strings.TrimSpace(code))) {
		errs = append(errs, FieldValidationError{"code", "Promo code can only contain uppercase letters and numbers (3-20 characters)"})
	}
	if orderAmount <= 0 {
		errs = append(errs, FieldValidationError{"orderAmount", "Order amount must be greater than zero"})
	}
	return errs
}
