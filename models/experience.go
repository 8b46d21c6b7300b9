package models

import (
	"time"
)

// Experience categories
const (
	CategoryAdventure   = "adventure"
	CategoryNature      = "nature"
	CategoryCultural    = "cultural"
	CategoryWaterSports = "water-sports"
	CategoryHiking      = "hiking"
	CategorySightseeing = "sightseeing"
)

// ValidCategories lists every category an experience can belong to
var ValidCategories = []string{
	CategoryAdventure,
	CategoryNature,
	CategoryCultural,
	CategoryWaterSports,
	CategoryHiking,
	CategorySightseeing,
}

type Experience struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Title        string           `gorm:"not null" json:"title"`
	Description  string           `json:"description"`
	Location     string           `gorm:"index" json:"location"`
	Price        float64          `gorm:"not null" json:"price"`
	ImageURL     string           `json:"image_url"`
	Category     string           `gorm:"index" json:"category"`
	Duration     string           `json:"duration"`
	MinAge       int              `json:"min_age"`
	MaxGroupSize int              `json:"max_group_size"`
	IsActive     bool             `gorm:"default:true;index" json:"is_active"`
	Rating       float64          `json:"rating"`
	ReviewCount  int              `json:"review_count"`
	DisplayOrder int              `json:"display_order"`
	Slots        []ExperienceSlot `gorm:"foreignKey:ExperienceID" json:"slots,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// IsValidCategory reports whether the given category is one of the known ones
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
