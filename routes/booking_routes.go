package routes

import (
	"github.com/Govind-619/WanderSphere/controllers"
	"github.com/gin-gonic/gin"
)

// initBookingRoutes initializes the booking routes
func initBookingRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings")
	{
		bookings.POST("", controllers.CreateBooking)
		bookings.GET("/reports/export", controllers.DownloadBookingsReportExcel)
		bookings.GET("/customer/:email", controllers.GetCustomerBookings)
		bookings.GET("/:bookingId", controllers.GetBooking)
		bookings.GET("/:bookingId/voucher", controllers.DownloadVoucher)
		bookings.PUT("/:bookingId/cancel", controllers.CancelBooking)
	}
}
