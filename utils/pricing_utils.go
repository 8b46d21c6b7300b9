package utils

import (
	"math"

	"github.com/Govind-619/WanderSphere/models"
)

// PricingBreakdown is the server side recomputation of an order's pricing.
// It is authoritative over anything the client submitted.
type PricingBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Taxes    float64 `json:"taxes"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// ComputeCanonicalPricing rebuilds the full pricing from the unit price and
// quantity. Taxes are rounded to the nearest whole currency unit; the promo
// discount, when a code applies, follows CalculateDiscount's rounding.
func ComputeCanonicalPricing(unitPrice float64, quantity int, promo *models.PromoCode) PricingBreakdown {
	subtotal := unitPrice * float64(quantity)
	taxes := math.Round(subtotal * TaxRate)

	var discount float64
	if promo != nil {
		discount = CalculateDiscount(promo, subtotal)
	}

	return PricingBreakdown{
		Subtotal: subtotal,
		Taxes:    taxes,
		Discount: discount,
		Total:    subtotal + taxes - discount,
	}
}

// PricingMatches compares client submitted pricing against the canonical
// breakdown field by field within PricingEpsilon.
func PricingMatches(submitted, canonical PricingBreakdown) bool {
	return math.Abs(submitted.Subtotal-canonical.Subtotal) <= PricingEpsilon &&
		math.Abs(submitted.Taxes-canonical.Taxes) <= PricingEpsilon &&
		math.Abs(submitted.Discount-canonical.Discount) <= PricingEpsilon &&
		math.Abs(submitted.Total-canonical.Total) <= PricingEpsilon
}
