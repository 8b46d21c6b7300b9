package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Govind-619/WanderSphere/config"
	"github.com/Govind-619/WanderSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// DownloadVoucher generates and returns a PDF voucher for the booking
func DownloadVoucher(c *gin.Context) {
	utils.LogInfo("Starting voucher download process")

	bookingID := c.Param("bookingId")
	booking, err := utils.GetBookingByCode(config.DB, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Booking not found for voucher download: %s", bookingID)
			utils.ErrorWithCode(c, http.StatusNotFound, utils.CodeBookingNotFound, "Booking not found", nil)
			return
		}
		utils.LogError("Failed to load booking %s for voucher: %v", bookingID, err)
		utils.InternalServerError(c, "Failed to load booking", nil)
		return
	}
	utils.LogInfo("Found booking for voucher generation: %s", booking.BookingCode)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Operator info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName)
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "42 Harbour Road, Fort Kochi, Kerala")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: bookings@wandersphere.in | Phone: +91-98765-43210")
	pdf.Ln(12)

	// Voucher title and booking info
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "BOOKING VOUCHER")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Booking ID: "+booking.BookingCode)
	pdf.Cell(70, 8, "Booked On: "+booking.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(60, 8, "Status: "+booking.Status)
	pdf.Cell(70, 8, "Payment: "+booking.PaymentStatus)
	pdf.Ln(10)

	// Guest info
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Guest:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, booking.CustomerName)
	pdf.Ln(6)
	pdf.Cell(100, 8, booking.CustomerEmail)
	pdf.Ln(10)

	// Experience details
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Experience:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, booking.Experience.Title)
	pdf.Ln(6)
	pdf.Cell(100, 8, booking.Experience.Location)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Date: "+booking.BookingDate.Format("2006-01-02")+" at "+booking.BookingTime)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Guests: "+strconv.Itoa(booking.Quantity))
	pdf.Ln(10)

	// Pricing table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", booking.Subtotal), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, "Taxes:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", booking.Taxes), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, "Discount:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", booking.Discount), "", 1, "R", false, 0, "")
	if booking.PromoCode != "" {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(150, 6, "Promo code applied: "+booking.PromoCode, "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(120, 10, "Grand Total:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", booking.Total), "", 1, "R", false, 0, "")

	// Note for the guest
	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Please present this voucher and a valid ID at the meeting point.")

	var buf bytes.Buffer
	_ = pdf.Output(&buf)
	utils.LogInfo("PDF voucher generated successfully for booking: %s", booking.BookingCode)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=voucher_"+booking.BookingCode+".pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	utils.LogInfo("Voucher download completed for booking: %s", booking.BookingCode)
}
