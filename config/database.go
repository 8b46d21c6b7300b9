package config

import (
	"log"

	"github.com/Govind-619/WanderSphere/models"
)

// ensureSlotBoundsConstraint backs the conditional slot updates with a hard
// database check so current_bookings can never leave [0, max_capacity].
func ensureSlotBoundsConstraint() {
	var constraintExists bool
	err := DB.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.table_constraints
			WHERE constraint_name = 'experience_slots_bookings_within_capacity'
		)
	`).Scan(&constraintExists).Error
	if err != nil {
		log.Printf("Failed to check slot bounds constraint: %v", err)
		return
	}

	if !constraintExists {
		err = DB.Exec(`
			ALTER TABLE experience_slots
			ADD CONSTRAINT experience_slots_bookings_within_capacity
			CHECK (current_bookings >= 0 AND current_bookings <= max_capacity)
		`).Error
		if err != nil {
			log.Printf("Failed to add slot bounds constraint: %v", err)
		}
	}
}

// EnsurePromoCodeTableExists makes sure the PromoCode table is created
func EnsurePromoCodeTableExists() {
	if !DB.Migrator().HasTable(&models.PromoCode{}) {
		DB.Migrator().CreateTable(&models.PromoCode{})
	}
}
