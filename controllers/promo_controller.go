package controllers

import (
	"errors"
	"net/http"

	"github.com/Govind-619/WanderSphere/config"
	"github.com/Govind-619/WanderSphere/models"
	"github.com/Govind-619/WanderSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ValidatePromoRequest is the payload for the standalone promo check the
// checkout UI calls before the booking is submitted.
type ValidatePromoRequest struct {
	Code          string  `json:"code"`
	OrderAmount   float64 `json:"orderAmount"`
	ExperienceID  uint    `json:"experienceId"`
	CustomerEmail string  `json:"customerEmail"`
}

// ValidatePromoCode checks a promo code against an order amount and returns
// the discount it would grant. Nothing is reserved here; usage is only
// claimed when the booking itself is created.
func ValidatePromoCode(c *gin.Context) {
	utils.LogInfo("ValidatePromoCode called")

	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Malformed promo validation request: %v", err)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeValidationError, "Validation failed", err.Error())
		return
	}

	if errs := utils.ValidatePromoRequestCode(req.Code, req.OrderAmount); len(errs) > 0 {
		utils.LogError("Promo validation request failed validation: %v", errs)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeValidationError, "Validation failed", errs)
		return
	}

	db := config.DB

	promo, err := utils.GetPromoByCode(db, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Promo code not found: %s", req.Code)
			utils.ErrorWithCode(c, http.StatusNotFound, utils.CodePromoCodeNotFound, "Promo code not found", nil)
			return
		}
		utils.LogError("Failed to load promo code %s: %v", req.Code, err)
		utils.InternalServerError(c, "Failed to load promo code", nil)
		return
	}

	category := ""
	var experienceID uint
	if req.ExperienceID != 0 {
		var experience models.Experience
		if err := db.First(&experience, req.ExperienceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.LogError("Experience not found for promo validation, ID: %d", req.ExperienceID)
				utils.ErrorWithCode(c, http.StatusNotFound, utils.CodeExperienceNotFound, "Experience not found", nil)
				return
			}
			utils.LogError("Failed to load experience ID: %d: %v", req.ExperienceID, err)
			utils.InternalServerError(c, "Failed to load experience", nil)
			return
		}
		category = experience.Category
		experienceID = experience.ID
	}

	// First-time-only codes cannot be judged without knowing the customer
	firstTime := true
	if req.CustomerEmail != "" {
		firstTime, err = utils.IsFirstTimeCustomer(db, req.CustomerEmail)
		if err != nil {
			utils.LogError("Failed to check booking history for %s: %v", req.CustomerEmail, err)
			utils.InternalServerError(c, "Failed to check booking history", nil)
			return
		}
	} else if promo.FirstTimeUserOnly {
		utils.LogError("Promo code %s is first-time-only but no customer email was supplied", promo.Code)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeValidationError, "Validation failed",
			utils.FieldValidationErrors{{Field: "customerEmail", Message: "Customer email is required to validate this promo code"}})
		return
	}

	violations := utils.ValidatePromoForOrder(promo, req.OrderAmount, category, experienceID, firstTime)
	if len(violations) > 0 {
		utils.LogError("Promo code %s invalid for order: %v", promo.Code, violations)
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodePromoCodeInvalid, violations[0], gin.H{
			"reasons": violations,
		})
		return
	}

	discount := utils.CalculateDiscount(promo, req.OrderAmount)
	utils.LogInfo("Promo code %s grants discount %.2f on order amount %.2f", promo.Code, discount, req.OrderAmount)

	utils.Success(c, "Promo code is valid", gin.H{
		"promoCode": gin.H{
			"code":          promo.Code,
			"description":   promo.Description,
			"discountType":  promo.DiscountType,
			"discountValue": promo.DiscountValue,
			"remainingUses": promo.RemainingUses(),
		},
		"discountAmount": discount,
		"orderSummary": gin.H{
			"orderAmount":    req.OrderAmount,
			"discountAmount": discount,
			"finalAmount":    req.OrderAmount - discount,
		},
	})
}

// GetActivePromoCodes lists the codes that can currently be redeemed
func GetActivePromoCodes(c *gin.Context) {
	utils.LogInfo("GetActivePromoCodes called")

	promos, err := utils.FindValidPromoCodes(config.DB)
	if err != nil {
		utils.LogError("Failed to load active promo codes: %v", err)
		utils.InternalServerError(c, "Failed to load promo codes", nil)
		return
	}
	utils.LogInfo("Found %d active promo codes", len(promos))

	list := make([]gin.H, 0, len(promos))
	for _, promo := range promos {
		list = append(list, gin.H{
			"code":           promo.Code,
			"description":    promo.Description,
			"discountType":   promo.DiscountType,
			"discountValue":  promo.DiscountValue,
			"minOrderAmount": promo.MinOrderAmount,
			"expiryDate":     promo.ExpiryDate,
			"remainingUses":  promo.RemainingUses(),
		})
	}

	utils.Success(c, "Active promo codes retrieved successfully", gin.H{
		"promoCodes": list,
		"count":      len(list),
	})
}

// GetPromoCode returns one promo code's public details. Codes that cannot
// currently be redeemed are reported as not found rather than exposed.
func GetPromoCode(c *gin.Context) {
	utils.LogInfo("GetPromoCode called")

	code := c.Param("code")
	promo, err := utils.GetPromoByCode(config.DB, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Promo code not found: %s", code)
			utils.ErrorWithCode(c, http.StatusNotFound, utils.CodePromoCodeNotFound, "Promo code not found", nil)
			return
		}
		utils.LogError("Failed to load promo code %s: %v", code, err)
		utils.InternalServerError(c, "Failed to load promo code", nil)
		return
	}

	if !promo.IsCurrentlyValid() {
		utils.LogError("Promo code %s is not currently redeemable", promo.Code)
		utils.ErrorWithCode(c, http.StatusNotFound, utils.CodePromoCodeNotFound, "Promo code not found", nil)
		return
	}

	utils.Success(c, "Promo code retrieved successfully", gin.H{
		"promoCode": gin.H{
			"code":              promo.Code,
			"description":       promo.Description,
			"discountType":      promo.DiscountType,
			"discountValue":     promo.DiscountValue,
			"minOrderAmount":    promo.MinOrderAmount,
			"maxDiscountAmount": promo.MaxDiscountAmount,
			"startDate":         promo.StartDate,
			"expiryDate":        promo.ExpiryDate,
			"remainingUses":     promo.RemainingUses(),
			"firstTimeUserOnly": promo.FirstTimeUserOnly,
		},
	})
}
