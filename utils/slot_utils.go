package utils

import (
	"errors"
	"time"

	"github.com/Govind-619/WanderSphere/models"
	"gorm.io/gorm"
)

// NormalizeDate truncates a timestamp to its calendar day
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GetSlot looks up the slot row for (experience, date, time)
func GetSlot(db *gorm.DB, experienceID uint, date time.Time, timeLabel string) (*models.ExperienceSlot, error) {
	var slot models.ExperienceSlot
	err := db.Where("experience_id = ? AND slot_date = ? AND slot_time = ?",
		experienceID, NormalizeDate(date), timeLabel).First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetSlotsForDate returns the still-bookable slots of an experience on a date
func GetSlotsForDate(db *gorm.DB, experienceID uint, date time.Time) ([]models.ExperienceSlot, error) {
	var slots []models.ExperienceSlot
	err := db.Where("experience_id = ? AND slot_date = ? AND available = ? AND current_bookings < max_capacity",
		experienceID, NormalizeDate(date), true).
		Order("slot_time asc").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// ReserveSlot atomically claims quantity seats on a slot. The bound check and
// the increment happen in a single conditional UPDATE so two requests racing
// for the last seats can never both be admitted. Returns ErrSlotNotFound when
// the (date, time) pair does not exist and ErrCapacityExceeded when the
// remaining capacity is smaller than quantity.
func ReserveSlot(db *gorm.DB, experienceID uint, date time.Time, timeLabel string, quantity int) error {
	result := db.Model(&models.ExperienceSlot{}).
		Where("experience_id = ? AND slot_date = ? AND slot_time = ? AND current_bookings + ? <= max_capacity",
			experienceID, NormalizeDate(date), timeLabel, quantity).
		Updates(map[string]interface{}{
			"current_bookings": gorm.Expr("current_bookings + ?", quantity),
			"available":        gorm.Expr("current_bookings + ? < max_capacity", quantity),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// The guarded update matched nothing: find out which failure it was
	if _, err := GetSlot(db, experienceID, date, timeLabel); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return err
	}
	return ErrCapacityExceeded
}

// ReleaseSlot returns quantity seats to a slot, flooring the counter at zero
// and reopening availability. Callers must call it at most once per reserved
// quantity; releases are not idempotent.
func ReleaseSlot(db *gorm.DB, experienceID uint, date time.Time, timeLabel string, quantity int) error {
	result := db.Model(&models.ExperienceSlot{}).
		Where("experience_id = ? AND slot_date = ? AND slot_time = ?",
			experienceID, NormalizeDate(date), timeLabel).
		Updates(map[string]interface{}{
			"current_bookings": gorm.Expr("GREATEST(current_bookings - ?, 0)", quantity),
			"available":        gorm.Expr("GREATEST(current_bookings - ?, 0) < max_capacity", quantity),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}
