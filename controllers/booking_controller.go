package controllers

import (
	"errors"
	"net/http"

	"github.com/Govind-619/WanderSphere/config"
	"github.com/Govind-619/WanderSphere/models"
	"github.com/Govind-619/WanderSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bookingDetail(b *models.Booking) gin.H {
	return gin.H{
		"bookingId":       b.BookingCode,
		"experienceId":    b.ExperienceID,
		"experienceTitle": b.Experience.Title,
		"location":        b.Experience.Location,
		"customerName":    b.CustomerName,
		"customerEmail":   b.CustomerEmail,
		"date":            b.BookingDate.Format("2006-01-02"),
		"time":            b.BookingTime,
		"quantity":        b.Quantity,
		"pricing": gin.H{
			"subtotal": b.Subtotal,
			"taxes":    b.Taxes,
			"discount": b.Discount,
			"total":    b.Total,
		},
		"promoCode":     b.PromoCode,
		"status":        b.Status,
		"paymentStatus": b.PaymentStatus,
		"createdAt":     b.CreatedAt,
	}
}

// GetBooking returns one booking by its public code
func GetBooking(c *gin.Context) {
	utils.LogInfo("GetBooking called")

	bookingID := c.Param("bookingId")
	booking, err := utils.GetBookingByCode(config.DB, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Booking not found: %s", bookingID)
			utils.ErrorWithCode(c, http.StatusNotFound, utils.CodeBookingNotFound, "Booking not found", nil)
			return
		}
		utils.LogError("Failed to load booking %s: %v", bookingID, err)
		utils.InternalServerError(c, "Failed to load booking", nil)
		return
	}

	utils.Success(c, "Booking retrieved successfully", gin.H{
		"booking": bookingDetail(booking),
	})
}

// GetCustomerBookings returns every booking made under an email, newest first
func GetCustomerBookings(c *gin.Context) {
	utils.LogInfo("GetCustomerBookings called")

	email := c.Param("email")
	bookings, err := utils.GetBookingsByEmail(config.DB, email)
	if err != nil {
		utils.LogError("Failed to load bookings for %s: %v", email, err)
		utils.InternalServerError(c, "Failed to load bookings", nil)
		return
	}
	utils.LogInfo("Found %d bookings for %s", len(bookings), email)

	details := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		details = append(details, bookingDetail(&bookings[i]))
	}

	utils.Success(c, "Bookings retrieved successfully", gin.H{
		"bookings": details,
		"count":    len(details),
	})
}
