package utils

import (
	"testing"
	"time"

	"github.com/Govind-619/WanderSphere/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeCanonicalPricing(t *testing.T) {
	pricing := ComputeCanonicalPricing(999, 2, nil)

	assert.Equal(t, 1998.0, pricing.Subtotal)
	assert.Equal(t, 360.0, pricing.Taxes)
	assert.Equal(t, 0.0, pricing.Discount)
	assert.Equal(t, 2358.0, pricing.Total)
}

func TestComputeCanonicalPricingWithFixedPromo(t *testing.T) {
	promo := &models.PromoCode{
		Code:          "FLAT100",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 100,
		IsActive:      true,
		StartDate:     time.Now().AddDate(0, 0, -1),
		ExpiryDate:    time.Now().AddDate(0, 0, 30),
	}

	pricing := ComputeCanonicalPricing(999, 2, promo)

	assert.Equal(t, 1998.0, pricing.Subtotal)
	assert.Equal(t, 360.0, pricing.Taxes)
	assert.Equal(t, 100.0, pricing.Discount)
	assert.Equal(t, 2258.0, pricing.Total)
}

func TestComputeCanonicalPricingTaxRounding(t *testing.T) {
	// 1499.50 * 0.18 = 269.91, rounds up to 270
	pricing := ComputeCanonicalPricing(1499.50, 1, nil)

	assert.Equal(t, 1499.50, pricing.Subtotal)
	assert.Equal(t, 270.0, pricing.Taxes)
	assert.Equal(t, 1769.50, pricing.Total)
}

func TestPricingMatchesWithinEpsilon(t *testing.T) {
	canonical := ComputeCanonicalPricing(999, 2, nil)

	submitted := canonical
	submitted.Total += 0.009
	assert.True(t, PricingMatches(submitted, canonical))

	submitted = canonical
	submitted.Total += 0.02
	assert.False(t, PricingMatches(submitted, canonical))
}

func TestPricingMatchesComparesEveryField(t *testing.T) {
	canonical := ComputeCanonicalPricing(999, 2, nil)

	// Total agrees but the breakdown does not
	submitted := canonical
	submitted.Subtotal += 5
	submitted.Taxes -= 5
	assert.False(t, PricingMatches(submitted, canonical))
}
