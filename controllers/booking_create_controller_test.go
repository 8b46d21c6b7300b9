package controllers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Govind-619/WanderSphere/config"
	"github.com/Govind-619/WanderSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func bookingRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock := utils.NewMockDB()
	config.DB = db

	router := gin.New()
	router.POST("/v1/bookings", CreateBooking)
	router.PUT("/v1/bookings/:bookingId/cancel", CancelBooking)
	return router, mock
}

func bookingRequestBody(date string) gin.H {
	return gin.H{
		"experienceId": 1,
		"customerInfo": gin.H{
			"fullName": "Asha Nair",
			"email":    "asha@example.com",
		},
		"bookingDetails": gin.H{
			"date":     date,
			"time":     "10:00 am",
			"quantity": 2,
		},
		"pricing": gin.H{
			"subtotal": 1998,
			"taxes":    360,
			"discount": 0,
			"total":    2358,
		},
	}
}

func experienceColumns() []string {
	return []string{"id", "title", "location", "price", "category", "is_active"}
}

func TestCreateBookingValidationError(t *testing.T) {
	router, mock := bookingRouter(t)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/bookings",
		Body:   gin.H{"experienceId": 0},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, utils.CodeValidationError, resp.Body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingExperienceNotFound(t *testing.T) {
	router, mock := bookingRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "experiences"`).
		WillReturnError(gorm.ErrRecordNotFound)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/bookings",
		Body:   bookingRequestBody("2030-05-10"),
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, utils.CodeExperienceNotFound, resp.Body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingPastDateRejected(t *testing.T) {
	router, mock := bookingRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "experiences"`).
		WillReturnRows(sqlmock.NewRows(experienceColumns()).
			AddRow(1, "Backwater Kayaking", "Alleppey", 999, "adventure", true))

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/bookings",
		Body:   bookingRequestBody("2020-01-01"),
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, utils.CodeInvalidBookingDate, resp.Body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingInactiveExperienceRejected(t *testing.T) {
	router, mock := bookingRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "experiences"`).
		WillReturnRows(sqlmock.NewRows(experienceColumns()).
			AddRow(1, "Backwater Kayaking", "Alleppey", 999, "adventure", false))

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/bookings",
		Body:   bookingRequestBody("2030-05-10"),
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, utils.CodeExperienceNotAvailable, resp.Body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingPricingMismatchHasNoSideEffects(t *testing.T) {
	router, mock := bookingRouter(t)

	slotDate := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "experiences"`).
		WillReturnRows(sqlmock.NewRows(experienceColumns()).
			AddRow(1, "Backwater Kayaking", "Alleppey", 999, "adventure", true))
	mock.ExpectQuery(`SELECT \* FROM "experience_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "experience_id", "slot_date", "slot_time", "max_capacity", "current_bookings", "available"}).
			AddRow(1, 1, slotDate, "10:00 am", 8, 2, true))

	body := bookingRequestBody("2030-05-10")
	body["pricing"] = gin.H{
		"subtotal": 1998,
		"taxes":    360,
		"discount": 0,
		"total":    2100,
	}

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/bookings",
		Body:   body,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, utils.CodePricingMismatch, resp.Body["code"])
	// No reservation or insert may have run
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingSucceeds(t *testing.T) {
	router, mock := bookingRouter(t)

	slotDate := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "experiences"`).
		WillReturnRows(sqlmock.NewRows(experienceColumns()).
			AddRow(1, "Backwater Kayaking", "Alleppey", 999, "adventure", true))
	mock.ExpectQuery(`SELECT \* FROM "experience_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "experience_id", "slot_date", "slot_time", "max_capacity", "current_bookings", "available"}).
			AddRow(1, 1, slotDate, "10:00 am", 8, 2, true))
	// Demand cross-check finds no recorded bookings on the slot
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity", "booking_time"}))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "experience_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/bookings",
		Body:   bookingRequestBody("2030-05-10"),
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := resp.Body["data"].(map[string]interface{})
	booking := data["booking"].(map[string]interface{})
	assert.Regexp(t, `^[A-Z0-9]{8}$`, booking["bookingId"])
	assert.Equal(t, "Backwater Kayaking", booking["experienceTitle"])
	assert.Equal(t, "Asha Nair", booking["customerName"])
	assert.Equal(t, "2030-05-10", booking["date"])
	assert.Equal(t, "10:00 am", booking["time"])
	assert.Equal(t, 2.0, booking["quantity"])
	assert.Equal(t, 2358.0, booking["total"])
	assert.Equal(t, "confirmed", booking["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingPersistFailureReleasesReservations(t *testing.T) {
	router, mock := bookingRouter(t)

	// Promo usage and seats both get reserved; the booking insert then fails,
	// so both reservations must be handed back before the error goes out
	slotDate := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "experiences"`).
		WillReturnRows(sqlmock.NewRows(experienceColumns()).
			AddRow(1, "Backwater Kayaking", "Alleppey", 999, "adventure", true))
	mock.ExpectQuery(`SELECT \* FROM "experience_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "experience_id", "slot_date", "slot_time", "max_capacity", "current_bookings", "available"}).
			AddRow(1, 1, slotDate, "10:00 am", 8, 2, true))
	mock.ExpectQuery(`SELECT \* FROM "promo_codes"`).
		WillReturnRows(sqlmock.NewRows(promoColumns()).
			AddRow(1, "FLAT100", "Flat 100 off", "fixed", 100,
				true, time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 1, 0), nil, 0,
				0, false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity", "booking_time"}))
	// Reserve promo usage, then seats
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "promo_codes" SET "used_count"=used_count \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "experience_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// Persist fails with a non-retryable error
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnError(errors.New("pq: connection reset by peer"))
	mock.ExpectRollback()
	// Compensating releases: seats first, then the promo redemption
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "experience_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "promo_codes" SET "used_count"=GREATEST\(used_count - \$1, 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := bookingRequestBody("2030-05-10")
	body["promoCode"] = "FLAT100"
	body["pricing"] = gin.H{
		"subtotal": 1998,
		"taxes":    360,
		"discount": 100,
		"total":    2258,
	}

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/bookings",
		Body:   body,
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, utils.CodeSlotBookingFailed, resp.Body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingInsufficientCapacity(t *testing.T) {
	router, mock := bookingRouter(t)

	slotDate := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "experiences"`).
		WillReturnRows(sqlmock.NewRows(experienceColumns()).
			AddRow(1, "Backwater Kayaking", "Alleppey", 999, "adventure", true))
	mock.ExpectQuery(`SELECT \* FROM "experience_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "experience_id", "slot_date", "slot_time", "max_capacity", "current_bookings", "available"}).
			AddRow(1, 1, slotDate, "10:00 am", 8, 7, true))

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/bookings",
		Body:   bookingRequestBody("2030-05-10"),
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, utils.CodeInsufficientCapacity, resp.Body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
