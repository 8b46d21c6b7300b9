package utils

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/Govind-619/WanderSphere/models"
	"gorm.io/gorm"
)

// GenerateBookingCode produces an 8 character public booking code (A-Z0-9)
func GenerateBookingCode() string {
	code := make([]byte, BookingCodeLength)
	for i := range code {
		code[i] = BookingCodeChars[rand.Intn(len(BookingCodeChars))]
	}
	return string(code)
}

// CreateBookingWithCode persists the booking under a freshly generated public
// code, regenerating and retrying a bounded number of times when the code
// collides with an existing row.
func CreateBookingWithCode(db *gorm.DB, booking *models.Booking) error {
	var lastErr error
	for attempt := 0; attempt < BookingCodeMaxAttempts; attempt++ {
		booking.BookingCode = GenerateBookingCode()
		err := db.Create(booking).Error
		if err == nil {
			return nil
		}
		lastErr = err
		if !isUniqueViolation(err) {
			return err
		}
		LogError("Booking code collision on %s, attempt %d", booking.BookingCode, attempt+1)
		booking.ID = 0
	}
	return lastErr
}

// isUniqueViolation reports whether the error is a uniqueness constraint hit
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// GetBookingByCode looks a booking up by its public code
func GetBookingByCode(db *gorm.DB, code string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Preload("Experience").
		Where("booking_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBookingsByEmail returns a customer's bookings, newest first
func GetBookingsByEmail(db *gorm.DB, email string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Preload("Experience").
		Where("customer_email = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingsByExperienceAndDate returns the confirmed or completed bookings
// of an experience on a calendar day. The ledger's counters are authoritative
// for capacity; this query exists to cross-check aggregate demand against a
// slot independently of those counters.
func GetBookingsByExperienceAndDate(db *gorm.DB, experienceID uint, date time.Time) ([]models.Booking, error) {
	day := NormalizeDate(date)
	var bookings []models.Booking
	err := db.Where("experience_id = ? AND booking_date >= ? AND booking_date < ? AND status IN ?",
		experienceID, day, day.AddDate(0, 0, 1),
		[]string{models.BookingStatusConfirmed, models.BookingStatusCompleted}).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// SlotDemandFromBookings sums the booked quantity recorded against one slot
func SlotDemandFromBookings(db *gorm.DB, experienceID uint, date time.Time, timeLabel string) (int, error) {
	bookings, err := GetBookingsByExperienceAndDate(db, experienceID, date)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, b := range bookings {
		if b.BookingTime == timeLabel {
			total += b.Quantity
		}
	}
	return total, nil
}

// IsFirstTimeCustomer reports whether the email has no prior live booking
func IsFirstTimeCustomer(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.Booking{}).
		Where("customer_email = ? AND status <> ?",
			strings.ToLower(strings.TrimSpace(email)), models.BookingStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
