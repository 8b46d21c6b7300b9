package utils

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/Govind-619/WanderSphere/models"
	"gorm.io/gorm"
)

// GetPromoByCode fetches a promo code, normalizing to uppercase first
func GetPromoByCode(db *gorm.DB, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := db.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// ValidatePromoForOrder runs every eligibility rule for the code against the
// order and returns the violations in rule order. An empty slice means the
// code may be applied.
func ValidatePromoForOrder(promo *models.PromoCode, orderAmount float64, category string, experienceID uint, isFirstTimeUser bool) []string {
	var violations []string

	if !promo.IsActive {
		violations = append(violations, "Promo code is not active")
	}

	now := time.Now()
	if now.Before(promo.StartDate) {
		violations = append(violations, "Promo code is not yet valid")
	}
	if now.After(promo.ExpiryDate) {
		violations = append(violations, "Promo code has expired")
	}

	if promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit {
		violations = append(violations, "Promo code usage limit exceeded")
	}

	if orderAmount < promo.MinOrderAmount {
		violations = append(violations, "Order amount is below the minimum required for this promo code")
	}

	if !promo.CategoryAllowed(category) {
		violations = append(violations, "Promo code not applicable for this experience category")
	}

	if promo.ExperienceExcluded(experienceID) {
		violations = append(violations, "Promo code not applicable for this experience")
	}

	if promo.FirstTimeUserOnly && !isFirstTimeUser {
		violations = append(violations, "Promo code is only valid for first-time users")
	}

	return violations
}

// CalculateDiscount computes the discount a code grants on an order amount,
// clamped to the code's cap and to the order itself, rounded to the nearest
// whole currency unit.
func CalculateDiscount(promo *models.PromoCode, orderAmount float64) float64 {
	var discount float64

	switch promo.DiscountType {
	case models.DiscountTypePercentage:
		discount = orderAmount * promo.DiscountValue / 100
	case models.DiscountTypeFixed:
		discount = promo.DiscountValue
	}

	if promo.MaxDiscountAmount != nil && discount > *promo.MaxDiscountAmount {
		discount = *promo.MaxDiscountAmount
	}
	if discount > orderAmount {
		discount = orderAmount
	}

	return math.Round(discount)
}

// ReservePromoUsage claims one redemption of the code with a conditional
// increment, so a usage limit holds under concurrent bookings. It is called
// before the booking is persisted; ReleasePromoUsage is the compensating
// action when a later step fails. When the guarded update matches nothing a
// follow-up read tells apart a missing code, a deactivated code and an
// exhausted usage limit.
func ReservePromoUsage(db *gorm.DB, code string) error {
	result := db.Model(&models.PromoCode{}).
		Where("code = ? AND is_active = ? AND (usage_limit IS NULL OR used_count < usage_limit)",
			strings.ToUpper(strings.TrimSpace(code)), true).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	promo, err := GetPromoByCode(db, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromoNotFound
		}
		return err
	}
	if !promo.IsActive {
		return ErrPromoInactive
	}
	return ErrUsageLimitReached
}

// ReleasePromoUsage gives back a redemption claimed by ReservePromoUsage
func ReleasePromoUsage(db *gorm.DB, code string) error {
	result := db.Model(&models.PromoCode{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		UpdateColumn("used_count", gorm.Expr("GREATEST(used_count - ?, 0)", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("promo code not found")
	}
	return nil
}

// FindValidPromoCodes returns the codes that can currently be redeemed
func FindValidPromoCodes(db *gorm.DB) ([]models.PromoCode, error) {
	now := time.Now()
	var promos []models.PromoCode
	err := db.Where("is_active = ? AND start_date <= ? AND expiry_date >= ? AND (usage_limit IS NULL OR used_count < usage_limit)",
		true, now, now).
		Order("expiry_date asc").
		Find(&promos).Error
	if err != nil {
		return nil, err
	}
	return promos, nil
}
