package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Govind-619/WanderSphere/models"
	"github.com/Govind-619/WanderSphere/utils"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func bookingColumns() []string {
	return []string{"id", "booking_code", "experience_id", "customer_name", "customer_email",
		"booking_date", "booking_time", "quantity", "total", "status", "payment_status"}
}

func TestCancelBookingNotFound(t *testing.T) {
	router, mock := bookingRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnError(gorm.ErrRecordNotFound)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPut,
		Path:   "/v1/bookings/NOPE1234/cancel",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, utils.CodeBookingNotFound, resp.Body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	router, mock := bookingRouter(t)

	slotDate := time.Now().AddDate(0, 0, 10)
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(bookingColumns()).
			AddRow(1, "AB12CD34", 1, "Asha Nair", "asha@example.com",
				slotDate, "10:00 am", 2, 2358, models.BookingStatusCancelled, models.PaymentStatusRefunded))
	mock.ExpectQuery(`SELECT \* FROM "experiences"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(1, "Backwater Kayaking"))

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPut,
		Path:   "/v1/bookings/AB12CD34/cancel",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, utils.CodeBookingAlreadyCancelled, resp.Body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingTooLate(t *testing.T) {
	router, mock := bookingRouter(t)

	// Slot starts in a few hours, inside the 24 hour cutoff
	slotDate := utils.NormalizeDate(time.Now())
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(bookingColumns()).
			AddRow(1, "AB12CD34", 1, "Asha Nair", "asha@example.com",
				slotDate, "11:59 pm", 2, 2358, models.BookingStatusConfirmed, models.PaymentStatusPaid))
	mock.ExpectQuery(`SELECT \* FROM "experiences"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(1, "Backwater Kayaking"))

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPut,
		Path:   "/v1/bookings/AB12CD34/cancel",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, utils.CodeCancellationTooLate, resp.Body["code"])
	// The booking row must not have been touched
	assert.NoError(t, mock.ExpectationsWereMet())
}
