package models

import (
	"time"
)

// Booking status constants
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Payment status constants
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

type Booking struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BookingCode  string     `gorm:"uniqueIndex;size:8" json:"booking_code"`
	ExperienceID uint       `gorm:"index" json:"experience_id"`
	Experience   Experience `gorm:"foreignKey:ExperienceID" json:"experience,omitempty"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `gorm:"index" json:"customer_email"`

	BookingDate time.Time `gorm:"type:date;index" json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	Quantity    int       `json:"quantity"`

	// Pricing snapshot, frozen at creation time
	Subtotal  float64 `json:"subtotal"`
	Taxes     float64 `json:"taxes"`
	Discount  float64 `json:"discount"`
	PromoCode string  `json:"promo_code,omitempty"`
	Total     float64 `json:"total"`

	Status        string `gorm:"index" json:"status"`
	PaymentStatus string `json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlotStart combines the booking date with its parsed time label. Labels use
// the "3:04 pm" format; when a label does not parse the date at midnight is
// returned so callers still get a usable cutoff.
func (b *Booking) SlotStart() time.Time {
	t, err := time.Parse("3:04 pm", b.BookingTime)
	if err != nil {
		return b.BookingDate
	}
	return time.Date(
		b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		t.Hour(), t.Minute(), 0, 0, b.BookingDate.Location(),
	)
}
