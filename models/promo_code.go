package models

import (
	"strconv"
	"strings"
	"time"
)

// Promo discount types
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type PromoCode struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Code              string    `gorm:"uniqueIndex" json:"code"`
	Description       string    `json:"description"`
	DiscountType      string    `json:"discount_type"` // "percentage" or "fixed"
	DiscountValue     float64   `json:"discount_value"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	StartDate         time.Time `json:"start_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
	UsageLimit        *int      `json:"usage_limit"` // nil means unlimited
	UsedCount         int       `gorm:"default:0" json:"used_count"`
	MinOrderAmount    float64   `json:"min_order_amount"`
	MaxDiscountAmount *float64  `json:"max_discount_amount"` // nil means no cap
	// Comma separated category allow-list; empty means all categories
	ApplicableCategories string `gorm:"type:text" json:"applicable_categories"`
	// Comma separated experience IDs the code must not be used with
	ExcludedExperiences string    `gorm:"type:text" json:"excluded_experiences"`
	FirstTimeUserOnly   bool      `gorm:"default:false" json:"first_time_user_only"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// IsCurrentlyValid reports whether the code can be redeemed right now
func (p *PromoCode) IsCurrentlyValid() bool {
	now := time.Now()
	if !p.IsActive || now.Before(p.StartDate) || now.After(p.ExpiryDate) {
		return false
	}
	if p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit {
		return false
	}
	return true
}

// RemainingUses returns how many redemptions are left, or -1 when unlimited
func (p *PromoCode) RemainingUses() int {
	if p.UsageLimit == nil {
		return -1
	}
	remaining := *p.UsageLimit - p.UsedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CategoryAllowed reports whether the code applies to the given category.
// An empty allow-list permits every category.
func (p *PromoCode) CategoryAllowed(category string) bool {
	if strings.TrimSpace(p.ApplicableCategories) == "" {
		return true
	}
	for _, c := range strings.Split(p.ApplicableCategories, ",") {
		if strings.TrimSpace(c) == category {
			return true
		}
	}
	return false
}

// ExperienceExcluded reports whether the experience is on the exclusion list
func (p *PromoCode) ExperienceExcluded(experienceID uint) bool {
	if strings.TrimSpace(p.ExcludedExperiences) == "" {
		return false
	}
	for _, raw := range strings.Split(p.ExcludedExperiences, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
		if err != nil {
			continue
		}
		if uint(id) == experienceID {
			return true
		}
	}
	return false
}
