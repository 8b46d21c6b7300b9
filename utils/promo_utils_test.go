package utils

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Govind-619/WanderSphere/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func validPromo() *models.PromoCode {
	limit := 10
	return &models.PromoCode{
		Code:          "SUMMER20",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 20,
		IsActive:      true,
		StartDate:     time.Now().AddDate(0, 0, -1),
		ExpiryDate:    time.Now().AddDate(0, 0, 30),
		UsageLimit:    &limit,
		UsedCount:     3,
	}
}

func TestValidatePromoForOrderAccepts(t *testing.T) {
	violations := ValidatePromoForOrder(validPromo(), 2000, models.CategoryAdventure, 1, true)
	assert.Empty(t, violations)
}

func TestValidatePromoForOrderExpired(t *testing.T) {
	promo := validPromo()
	promo.ExpiryDate = time.Now().AddDate(0, 0, -1)

	violations := ValidatePromoForOrder(promo, 2000, models.CategoryAdventure, 1, true)
	assert.Equal(t, []string{"Promo code has expired"}, violations)
}

func TestValidatePromoForOrderReportsViolationsInRuleOrder(t *testing.T) {
	promo := validPromo()
	promo.IsActive = false
	promo.ExpiryDate = time.Now().AddDate(0, 0, -1)
	promo.UsedCount = 10
	promo.MinOrderAmount = 5000

	violations := ValidatePromoForOrder(promo, 2000, models.CategoryAdventure, 1, true)
	assert.Equal(t, []string{
		"Promo code is not active",
		"Promo code has expired",
		"Promo code usage limit exceeded",
		"Order amount is below the minimum required for this promo code",
	}, violations)
}

func TestValidatePromoForOrderCategoryAndExclusion(t *testing.T) {
	promo := validPromo()
	promo.ApplicableCategories = models.CategoryAdventure + "," + models.CategoryHiking
	promo.ExcludedExperiences = "7,12"

	assert.Empty(t, ValidatePromoForOrder(promo, 2000, models.CategoryHiking, 1, true))

	violations := ValidatePromoForOrder(promo, 2000, models.CategoryCultural, 1, true)
	assert.Equal(t, []string{"Promo code not applicable for this experience category"}, violations)

	violations = ValidatePromoForOrder(promo, 2000, models.CategoryAdventure, 12, true)
	assert.Equal(t, []string{"Promo code not applicable for this experience"}, violations)
}

func TestValidatePromoForOrderFirstTimeOnly(t *testing.T) {
	promo := validPromo()
	promo.FirstTimeUserOnly = true

	assert.Empty(t, ValidatePromoForOrder(promo, 2000, models.CategoryAdventure, 1, true))

	violations := ValidatePromoForOrder(promo, 2000, models.CategoryAdventure, 1, false)
	assert.Equal(t, []string{"Promo code is only valid for first-time users"}, violations)
}

func TestCalculateDiscountPercentage(t *testing.T) {
	promo := validPromo()

	assert.Equal(t, 400.0, CalculateDiscount(promo, 2000))
}

func TestCalculateDiscountClampedToCap(t *testing.T) {
	promo := validPromo()
	cap := 250.0
	promo.MaxDiscountAmount = &cap

	assert.Equal(t, 250.0, CalculateDiscount(promo, 2000))
}

func TestCalculateDiscountClampedToOrderAmount(t *testing.T) {
	promo := validPromo()
	promo.DiscountType = models.DiscountTypeFixed
	promo.DiscountValue = 500

	assert.Equal(t, 300.0, CalculateDiscount(promo, 300))
}

func TestCalculateDiscountRoundsToWholeUnit(t *testing.T) {
	promo := validPromo()
	promo.DiscountValue = 15

	// 999 * 15% = 149.85 rounds to 150
	assert.Equal(t, 150.0, CalculateDiscount(promo, 999))
}

func TestReservePromoUsageClaimsOneRedemption(t *testing.T) {
	db, mock := NewMockDB()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "promo_codes" SET "used_count"=used_count \+ \$1`).
		WithArgs(1, "SUMMER20", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := ReservePromoUsage(db, "summer20")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservePromoUsageLimitReached(t *testing.T) {
	db, mock := NewMockDB()

	// Guarded update matches nothing; the follow-up read shows an active code
	// with its limit exhausted
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "promo_codes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "promo_codes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "is_active", "usage_limit", "used_count"}).
			AddRow(1, "SUMMER20", true, 10, 10))

	err := ReservePromoUsage(db, "SUMMER20")
	assert.ErrorIs(t, err, ErrUsageLimitReached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservePromoUsageDeactivatedCode(t *testing.T) {
	db, mock := NewMockDB()

	// A code switched off between validation and reservation must not be
	// reported as a usage limit problem
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "promo_codes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "promo_codes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "is_active", "usage_limit", "used_count"}).
			AddRow(1, "SUMMER20", false, 10, 3))

	err := ReservePromoUsage(db, "SUMMER20")
	assert.ErrorIs(t, err, ErrPromoInactive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservePromoUsageMissingCode(t *testing.T) {
	db, mock := NewMockDB()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "promo_codes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "promo_codes"`).
		WillReturnError(gorm.ErrRecordNotFound)

	err := ReservePromoUsage(db, "GHOST123")
	assert.ErrorIs(t, err, ErrPromoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleasePromoUsageGivesRedemptionBack(t *testing.T) {
	db, mock := NewMockDB()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "promo_codes" SET "used_count"=GREATEST\(used_count - \$1, 0\)`).
		WithArgs(1, "SUMMER20").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := ReleasePromoUsage(db, "SUMMER20")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
