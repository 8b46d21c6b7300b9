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

// CancelBooking cancels a booking by its public code and releases the seats
// it held back to the slot ledger.
func CancelBooking(c *gin.Context) {
	utils.LogInfo("CancelBooking called")

	bookingID := c.Param("bookingId")
	db := config.DB

	booking, err := utils.GetBookingByCode(db, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Booking not found for cancellation: %s", bookingID)
			utils.ErrorWithCode(c, http.StatusNotFound, utils.CodeBookingNotFound, "Booking not found", nil)
			return
		}
		utils.LogError("Failed to load booking %s: %v", bookingID, err)
		utils.InternalServerError(c, "Failed to load booking", nil)
		return
	}

	if booking.Status == models.BookingStatusCancelled {
		utils.LogError("Booking %s is already cancelled", booking.BookingCode)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeBookingAlreadyCancelled, "Booking is already cancelled", nil)
		return
	}

	if time.Until(booking.SlotStart()) < time.Duration(utils.CancellationCutoffHours)*time.Hour {
		utils.LogError("Booking %s inside the cancellation cutoff, slot start: %s", booking.BookingCode, booking.SlotStart())
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeCancellationTooLate,
			"Bookings can only be cancelled at least 24 hours before the slot", nil)
		return
	}

	booking.Status = models.BookingStatusCancelled
	booking.PaymentStatus = models.PaymentStatusRefunded
	if err := db.Save(booking).Error; err != nil {
		utils.LogError("Failed to cancel booking %s: %v", booking.BookingCode, err)
		utils.InternalServerError(c, "Failed to cancel booking", nil)
		return
	}
	utils.LogInfo("Cancelled booking %s", booking.BookingCode)

	// The cancellation stands even if the release fails; the ledger check
	// constraint keeps counters in range and the mismatch is logged for
	// reconciliation
	if err := utils.ReleaseSlot(db, booking.ExperienceID, booking.BookingDate, booking.BookingTime, booking.Quantity); err != nil {
		utils.LogError("Failed to release %d seats for cancelled booking %s: %v", booking.Quantity, booking.BookingCode, err)
	} else {
		utils.LogInfo("Released %d seats for cancelled booking %s", booking.Quantity, booking.BookingCode)
	}

	if err := utils.SendCancellationNotice(booking, booking.Experience.Title); err != nil {
		utils.LogError("Failed to send cancellation email for booking %s: %v", booking.BookingCode, err)
	}

	utils.Success(c, "Booking cancelled successfully", gin.H{
		"booking": gin.H{
			"bookingId": booking.BookingCode,
			"status":    booking.Status,
			"refund": gin.H{
				"amount": booking.Total,
				"status": booking.PaymentStatus,
			},
		},
	})
}
