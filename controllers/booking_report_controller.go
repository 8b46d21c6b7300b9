package controllers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Govind-619/WanderSphere/config"
	"github.com/Govind-619/WanderSphere/models"
	"github.com/Govind-619/WanderSphere/utils"
)

// DownloadBookingsReportExcel exports the bookings of a period as an Excel
// sheet with a summary section.
func DownloadBookingsReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadBookingsReportExcel called")

	period := c.DefaultQuery("period", "day")
	utils.LogDebug("Generating Excel report for period: %s", period)

	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var bookings []models.Booking
	query := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("Experience").
		Order("created_at DESC")
	if err := query.Find(&bookings).Error; err != nil {
		utils.LogError("Failed to fetch bookings: %v", err)
		utils.InternalServerError(c, "Failed to fetch bookings", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d bookings for Excel report", len(bookings))

	// --- Calculate summary ---
	var summary struct {
		TotalBookings   int
		TotalRevenue    float64
		TotalGuests     int
		TotalCustomers  int
		TotalDiscounts  float64
		TotalRefunds    float64
		NetRevenue      float64
		AvgBookingValue float64
	}
	customerSet := make(map[string]bool)
	for _, booking := range bookings {
		summary.TotalBookings++
		summary.TotalGuests += booking.Quantity
		summary.TotalDiscounts += booking.Discount
		customerSet[booking.CustomerEmail] = true
		if booking.Status == models.BookingStatusCancelled {
			summary.TotalRefunds += booking.Total
		} else {
			summary.TotalRevenue += booking.Total
		}
	}
	summary.TotalCustomers = len(customerSet)
	if summary.TotalBookings > 0 {
		summary.AvgBookingValue = math.Round((summary.TotalRevenue/float64(summary.TotalBookings))*100) / 100
	}
	summary.NetRevenue = math.Round((summary.TotalRevenue-summary.TotalRefunds)*100) / 100
	summary.TotalRevenue = math.Round(summary.TotalRevenue*100) / 100
	summary.TotalDiscounts = math.Round(summary.TotalDiscounts*100) / 100
	summary.TotalRefunds = math.Round(summary.TotalRefunds*100) / 100

	// --- Excel Generation ---
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Bookings Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}
	utils.LogDebug("Created Excel sheet for bookings report")

	// Operator details
	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString(strings.ToUpper(utils.AppName) + " - Bookings Report")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("42 Harbour Road, Fort Kochi, Kerala")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Email: bookings@wandersphere.in")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Phone: +91-98765-43210")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	// Table headers
	headers := []string{"Booking ID", "Experience", "Customer", "Slot Date", "Slot Time", "Guests", "Subtotal", "Taxes", "Discount", "Total", "Promo Code", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	// Table rows
	for _, booking := range bookings {
		row := sheet.AddRow()
		row.AddCell().SetString(booking.BookingCode)
		row.AddCell().SetString(booking.Experience.Title)
		row.AddCell().SetString(booking.CustomerName)
		row.AddCell().SetString(booking.BookingDate.Format("2006-01-02"))
		row.AddCell().SetString(booking.BookingTime)
		row.AddCell().SetInt(booking.Quantity)
		row.AddCell().SetFloat(booking.Subtotal)
		row.AddCell().SetFloat(booking.Taxes)
		row.AddCell().SetFloat(booking.Discount)
		row.AddCell().SetFloat(booking.Total)
		row.AddCell().SetString(booking.PromoCode)
		row.AddCell().SetString(booking.Status)
	}

	sheet.AddRow() // spacing

	// --- Summary Section ---
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Bookings", fmt.Sprintf("%d", summary.TotalBookings)},
		{"Total Revenue", fmt.Sprintf("%.2f", summary.TotalRevenue)},
		{"Total Guests", fmt.Sprintf("%d", summary.TotalGuests)},
		{"Total Customers", fmt.Sprintf("%d", summary.TotalCustomers)},
		{"Total Discounts", fmt.Sprintf("%.2f", summary.TotalDiscounts)},
		{"Total Refunds", fmt.Sprintf("%.2f", summary.TotalRefunds)},
		{"Net Revenue", fmt.Sprintf("%.2f", summary.NetRevenue)},
		{"Avg. Booking Value", fmt.Sprintf("%.2f", summary.AvgBookingValue)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bookings_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}
