package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Govind-619/WanderSphere/config"
	"github.com/Govind-619/WanderSphere/models"
	"github.com/Govind-619/WanderSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateBooking handles the whole booking flow: request validation, canonical
// pricing, promo evaluation, capacity reservation and persistence. Capacity
// and promo usage are reserved before the booking row is written; when a
// later step fails the reservations are released again before the error goes
// out, so no half-created booking survives.
func CreateBooking(c *gin.Context) {
	utils.LogInfo("CreateBooking called")

	var req utils.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Malformed booking request body: %v", err)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeValidationError, "Validation failed", err.Error())
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		utils.LogError("Booking request failed validation: %v", errs)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeValidationError, "Validation failed", errs)
		return
	}
	utils.LogInfo("Booking request validated for experience ID: %d, email: %s", req.ExperienceID, req.NormalizedEmail())

	db := config.DB

	// Load the experience
	var experience models.Experience
	if err := db.First(&experience, req.ExperienceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Experience not found, ID: %d", req.ExperienceID)
			utils.ErrorWithCode(c, http.StatusNotFound, utils.CodeExperienceNotFound, "Experience not found", nil)
			return
		}
		utils.LogError("Failed to load experience ID: %d: %v", req.ExperienceID, err)
		utils.InternalServerError(c, "Failed to load experience", nil)
		return
	}

	if !experience.IsActive {
		utils.LogError("Experience not active, ID: %d", experience.ID)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeExperienceNotAvailable, "Experience is not available for booking", nil)
		return
	}

	// Calendar-day comparison: booking today is fine, yesterday is not
	bookingDate := req.ParsedDate()
	today := utils.NormalizeDate(time.Now())
	if bookingDate.Before(today) {
		utils.LogError("Past booking date %s for experience ID: %d", req.BookingDetails.Date, experience.ID)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeInvalidBookingDate, "Cannot book for past dates", nil)
		return
	}

	// Optimistic slot check before any state is touched. The reserve call
	// below re-checks under the conditional update, which is authoritative.
	slot, err := utils.GetSlot(db, experience.ID, bookingDate, req.BookingDetails.Time)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Slot not found for experience ID: %d, date: %s, time: %s", experience.ID, req.BookingDetails.Date, req.BookingDetails.Time)
			utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeSlotNotAvailable, "Requested time slot is not available", nil)
			return
		}
		utils.LogError("Failed to look up slot for experience ID: %d: %v", experience.ID, err)
		utils.InternalServerError(c, "Failed to look up slot", nil)
		return
	}
	if !slot.Available {
		utils.LogError("Slot unavailable for experience ID: %d, date: %s, time: %s", experience.ID, req.BookingDetails.Date, req.BookingDetails.Time)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeSlotNotAvailable, "Requested time slot is not available", nil)
		return
	}
	if slot.RemainingCapacity() < req.BookingDetails.Quantity {
		utils.LogError("Insufficient capacity for experience ID: %d, remaining: %d, requested: %d", experience.ID, slot.RemainingCapacity(), req.BookingDetails.Quantity)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeInsufficientCapacity, "Not enough capacity for this booking", nil)
		return
	}

	// Recompute canonical pricing server side
	var promo *models.PromoCode
	if req.PromoCode != "" {
		promo, err = utils.GetPromoByCode(db, req.NormalizedPromoCode())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.LogError("Unknown promo code %s on booking request", req.NormalizedPromoCode())
				utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeInvalidPromoCode, "Invalid promo code", nil)
				return
			}
			utils.LogError("Failed to load promo code %s: %v", req.NormalizedPromoCode(), err)
			utils.InternalServerError(c, "Failed to load promo code", nil)
			return
		}

		firstTime, err := utils.IsFirstTimeCustomer(db, req.NormalizedEmail())
		if err != nil {
			utils.LogError("Failed to check booking history for %s: %v", req.NormalizedEmail(), err)
			utils.InternalServerError(c, "Failed to check booking history", nil)
			return
		}

		orderAmount := experience.Price * float64(req.BookingDetails.Quantity)
		violations := utils.ValidatePromoForOrder(promo, orderAmount, experience.Category, experience.ID, firstTime)
		if len(violations) > 0 {
			utils.LogError("Promo code %s rejected for experience ID: %d: %v", promo.Code, experience.ID, violations)
			utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodePromoValidationFailed, violations[0], violations)
			return
		}
	}

	canonical := utils.ComputeCanonicalPricing(experience.Price, req.BookingDetails.Quantity, promo)
	submitted := utils.PricingBreakdown{
		Subtotal: req.Pricing.Subtotal,
		Taxes:    req.Pricing.Taxes,
		Discount: req.Pricing.Discount,
		Total:    req.Pricing.Total,
	}
	if !utils.PricingMatches(submitted, canonical) {
		utils.LogError("Pricing mismatch for experience ID: %d, submitted total: %.2f, canonical total: %.2f", experience.ID, submitted.Total, canonical.Total)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodePricingMismatch, "Pricing calculation mismatch", nil)
		return
	}
	utils.LogInfo("Canonical pricing verified for experience ID: %d, total: %.2f", experience.ID, canonical.Total)

	// Cross-check recorded demand against the slot, independent of the
	// ledger's own counters
	demand, err := utils.SlotDemandFromBookings(db, experience.ID, bookingDate, req.BookingDetails.Time)
	if err != nil {
		utils.LogError("Failed to cross-check slot demand for experience ID: %d: %v", experience.ID, err)
		utils.InternalServerError(c, "Failed to check slot demand", nil)
		return
	}
	if demand+req.BookingDetails.Quantity > slot.MaxCapacity {
		utils.LogError("Recorded demand %d plus requested %d exceeds capacity %d for experience ID: %d", demand, req.BookingDetails.Quantity, slot.MaxCapacity, experience.ID)
		utils.ErrorWithCode(c, http.StatusConflict, utils.CodeConcurrentBookingConflict, "Slot capacity exceeded due to concurrent bookings", nil)
		return
	}

	// Reserve promo usage first so a limited code can never be over-redeemed,
	// then reserve capacity. Both get released if anything later fails.
	promoReserved := false
	if promo != nil {
		if err := utils.ReservePromoUsage(db, promo.Code); err != nil {
			switch {
			case errors.Is(err, utils.ErrUsageLimitReached):
				utils.LogError("Promo code %s usage limit hit during reservation", promo.Code)
				utils.ErrorWithCode(c, http.StatusConflict, utils.CodePromoValidationFailed, "Promo code usage limit exceeded", nil)
			case errors.Is(err, utils.ErrPromoInactive):
				utils.LogError("Promo code %s deactivated during reservation", promo.Code)
				utils.ErrorWithCode(c, http.StatusConflict, utils.CodePromoValidationFailed, "Promo code is no longer active", nil)
			case errors.Is(err, utils.ErrPromoNotFound):
				utils.LogError("Promo code %s vanished during reservation", promo.Code)
				utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeInvalidPromoCode, "Invalid promo code", nil)
			default:
				utils.LogError("Failed to reserve promo usage for %s: %v", promo.Code, err)
				utils.InternalServerError(c, "Failed to apply promo code", nil)
			}
			return
		}
		promoReserved = true
		utils.LogInfo("Reserved promo usage for code: %s", promo.Code)
	}

	releasePromo := func() {
		if promoReserved {
			if err := utils.ReleasePromoUsage(db, promo.Code); err != nil {
				utils.LogError("Failed to release promo usage for %s: %v", promo.Code, err)
			}
		}
	}

	if err := utils.ReserveSlot(db, experience.ID, bookingDate, req.BookingDetails.Time, req.BookingDetails.Quantity); err != nil {
		releasePromo()
		switch {
		case errors.Is(err, utils.ErrSlotNotFound):
			utils.LogError("Slot vanished during reservation for experience ID: %d", experience.ID)
			utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeSlotNotAvailable, "Requested time slot is not available", nil)
		case errors.Is(err, utils.ErrCapacityExceeded):
			utils.LogError("Lost capacity race for experience ID: %d, date: %s, time: %s", experience.ID, req.BookingDetails.Date, req.BookingDetails.Time)
			utils.ErrorWithCode(c, http.StatusConflict, utils.CodeInsufficientCapacity, "Not enough capacity for this booking", nil)
		default:
			utils.LogError("Failed to reserve slot for experience ID: %d: %v", experience.ID, err)
			utils.InternalServerError(c, "Failed to reserve slot", nil)
		}
		return
	}
	utils.LogInfo("Reserved %d seats for experience ID: %d, date: %s, time: %s", req.BookingDetails.Quantity, experience.ID, req.BookingDetails.Date, req.BookingDetails.Time)

	booking := models.Booking{
		ExperienceID:  experience.ID,
		CustomerName:  req.CustomerInfo.FullName,
		CustomerEmail: req.NormalizedEmail(),
		BookingDate:   bookingDate,
		BookingTime:   req.BookingDetails.Time,
		Quantity:      req.BookingDetails.Quantity,
		Subtotal:      canonical.Subtotal,
		Taxes:         canonical.Taxes,
		Discount:      canonical.Discount,
		Total:         canonical.Total,
		Status:        models.BookingStatusConfirmed,
		PaymentStatus: models.PaymentStatusPaid,
	}
	if promo != nil {
		booking.PromoCode = promo.Code
	}

	if err := utils.CreateBookingWithCode(db, &booking); err != nil {
		// Compensate: the seats and the promo redemption go back
		utils.LogError("Failed to persist booking for experience ID: %d: %v", experience.ID, err)
		if relErr := utils.ReleaseSlot(db, experience.ID, bookingDate, req.BookingDetails.Time, req.BookingDetails.Quantity); relErr != nil {
			utils.LogError("Failed to release reserved seats for experience ID: %d: %v", experience.ID, relErr)
		}
		releasePromo()
		utils.ErrorWithCode(c, http.StatusInternalServerError, utils.CodeSlotBookingFailed, "Failed to complete booking", nil)
		return
	}
	utils.LogInfo("Created booking %s for experience ID: %d", booking.BookingCode, experience.ID)

	// Confirmation email is best effort; the booking stands either way
	if err := utils.SendBookingConfirmation(&booking, experience.Title); err != nil {
		utils.LogError("Failed to send confirmation email for booking %s: %v", booking.BookingCode, err)
	}

	utils.Created(c, "Booking created successfully", gin.H{
		"booking": gin.H{
			"bookingId":       booking.BookingCode,
			"experienceTitle": experience.Title,
			"customerName":    booking.CustomerName,
			"date":            booking.BookingDate.Format("2006-01-02"),
			"time":            booking.BookingTime,
			"quantity":        booking.Quantity,
			"total":           booking.Total,
			"status":          booking.Status,
			"createdAt":       booking.CreatedAt,
		},
	})
}
