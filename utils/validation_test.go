package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBookingRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ExperienceID: 1,
		CustomerInfo: CustomerInfo{
			FullName: "Asha Nair",
			Email:    "asha@example.com",
		},
		BookingDetails: BookingDetails{
			Date:     "2026-09-15",
			Time:     "10:00 am",
			Quantity: 2,
		},
		Pricing: SubmittedPricing{
			Subtotal: 1998,
			Taxes:    360,
			Total:    2358,
		},
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	req := validBookingRequest()
	assert.Empty(t, req.Validate())
}

func TestValidateReportsFieldsInDeclarationOrder(t *testing.T) {
	req := CreateBookingRequest{
		CustomerInfo:   CustomerInfo{FullName: "A", Email: "not-an-email"},
		BookingDetails: BookingDetails{Date: "15-09-2026", Time: "25:00", Quantity: 0},
		Pricing:        SubmittedPricing{Discount: -10},
		PromoCode:      "x",
	}

	errs := req.Validate()
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{
		"experienceId",
		"customerInfo.fullName",
		"customerInfo.email",
		"bookingDetails.date",
		"bookingDetails.time",
		"bookingDetails.quantity",
		"pricing",
		"promoCode",
	}, fields)
}

func TestValidateTimeFormats(t *testing.T) {
	req := validBookingRequest()

	for _, ok := range []string{"10:00 am", "2:30 pm", "12:45 pm"} {
		req.BookingDetails.Time = ok
		assert.Empty(t, req.Validate(), "time %q should be accepted", ok)
	}
	for _, bad := range []string{"10:00", "10:00AM", "10:75 am", "morning"} {
		req.BookingDetails.Time = bad
		assert.NotEmpty(t, req.Validate(), "time %q should be rejected", bad)
	}
}

func TestValidateQuantityBounds(t *testing.T) {
	req := validBookingRequest()

	req.BookingDetails.Quantity = MinBookingQuantity
	assert.Empty(t, req.Validate())

	req.BookingDetails.Quantity = MaxBookingQuantity
	assert.Empty(t, req.Validate())

	req.BookingDetails.Quantity = MaxBookingQuantity + 1
	assert.NotEmpty(t, req.Validate())
}

func TestValidatePromoCodeOptional(t *testing.T) {
	req := validBookingRequest()
	assert.Empty(t, req.Validate())

	req.PromoCode = "summer20"
	assert.Empty(t, req.Validate(), "promo codes are normalized to uppercase before matching")
	assert.Equal(t, "SUMMER20", req.NormalizedPromoCode())

	req.PromoCode = "a!"
	assert.NotEmpty(t, req.Validate())
}

func TestNormalizedEmail(t *testing.T) {
	req := validBookingRequest()
	req.CustomerInfo.Email = "  Asha@Example.COM "
	assert.Equal(t, "asha@example.com", req.NormalizedEmail())
}
