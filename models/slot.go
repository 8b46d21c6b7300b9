package models

import (
	"time"
)

// ExperienceSlot is one bookable (date, time) unit of an experience.
// Slots are stored as individually addressable rows so capacity can be
// adjusted with conditional UPDATEs instead of load-then-save on a
// whole experience record.
type ExperienceSlot struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ExperienceID    uint      `gorm:"uniqueIndex:idx_slots_exp_date_time" json:"experience_id"`
	SlotDate        time.Time `gorm:"type:date;uniqueIndex:idx_slots_exp_date_time" json:"date"`
	SlotTime        string    `gorm:"uniqueIndex:idx_slots_exp_date_time" json:"time"`
	MaxCapacity     int       `gorm:"not null" json:"max_capacity"`
	CurrentBookings int       `gorm:"default:0" json:"current_bookings"`
	Available       bool      `gorm:"default:true" json:"available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RemainingCapacity returns the number of seats still open on the slot
func (s *ExperienceSlot) RemainingCapacity() int {
	remaining := s.MaxCapacity - s.CurrentBookings
	if remaining < 0 {
		return 0
	}
	return remaining
}
