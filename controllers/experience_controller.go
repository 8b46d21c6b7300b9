package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Govind-619/WanderSphere/config"
	"github.com/Govind-619/WanderSphere/models"
	"github.com/Govind-619/WanderSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func slotSummary(s *models.ExperienceSlot) gin.H {
	return gin.H{
		"date":              s.SlotDate.Format("2006-01-02"),
		"time":              s.SlotTime,
		"maxCapacity":       s.MaxCapacity,
		"currentBookings":   s.CurrentBookings,
		"remainingCapacity": s.RemainingCapacity(),
		"available":         s.Available,
	}
}

// GetExperiences lists active experiences with optional category, location,
// price range and search filters, paginated.
func GetExperiences(c *gin.Context) {
	utils.LogInfo("GetExperiences called")

	pagination := utils.NewPagination(c)
	db := config.DB

	query := db.Model(&models.Experience{}).Where("is_active = ?", true)

	if category := c.Query("category"); category != "" {
		if !models.IsValidCategory(category) {
			utils.LogError("Invalid category filter: %s", category)
			utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeValidationError, "Invalid category", nil)
			return
		}
		query = query.Where("category = ?", category)
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count experiences: %v", err)
		utils.InternalServerError(c, "Failed to load experiences", nil)
		return
	}
	pagination.SetTotal(total)

	var experiences []models.Experience
	if err := query.Order("display_order asc, id asc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&experiences).Error; err != nil {
		utils.LogError("Failed to load experiences: %v", err)
		utils.InternalServerError(c, "Failed to load experiences", nil)
		return
	}
	utils.LogInfo("Found %d experiences (page %d)", len(experiences), pagination.Page)

	utils.SendPaginatedResponse(c, experiences, pagination)
}

// GetExperienceByID returns one active experience with its future available
// slots attached.
func GetExperienceByID(c *gin.Context) {
	utils.LogInfo("GetExperienceByID called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid experience ID: %s", c.Param("id"))
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeValidationError, "Invalid experience ID", nil)
		return
	}

	today := utils.NormalizeDate(time.Now())

	var experience models.Experience
	err = config.DB.
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Where("slot_date >= ? AND available = ?", today, true).
				Order("slot_date asc, slot_time asc")
		}).
		Where("is_active = ?", true).
		First(&experience, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Experience not found, ID: %d", id)
			utils.ErrorWithCode(c, http.StatusNotFound, utils.CodeExperienceNotFound, "Experience not found", nil)
			return
		}
		utils.LogError("Failed to load experience ID: %d: %v", id, err)
		utils.InternalServerError(c, "Failed to load experience", nil)
		return
	}
	utils.LogInfo("Found experience ID: %d with %d upcoming slots", experience.ID, len(experience.Slots))

	utils.Success(c, "Experience retrieved successfully", gin.H{
		"experience": experience,
	})
}

// GetExperienceSlots returns the bookable slots of an experience on one date
func GetExperienceSlots(c *gin.Context) {
	utils.LogInfo("GetExperienceSlots called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid experience ID: %s", c.Param("id"))
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeValidationError, "Invalid experience ID", nil)
		return
	}

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		utils.LogError("Invalid date %s for experience slots", c.Param("date"))
		utils.ErrorWithCode(c, http.StatusBadRequest, utils.CodeValidationError, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	db := config.DB

	var experience models.Experience
	if err := db.Where("is_active = ?", true).First(&experience, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Experience not found, ID: %d", id)
			utils.ErrorWithCode(c, http.StatusNotFound, utils.CodeExperienceNotFound, "Experience not found", nil)
			return
		}
		utils.LogError("Failed to load experience ID: %d: %v", id, err)
		utils.InternalServerError(c, "Failed to load experience", nil)
		return
	}

	slots, err := utils.GetSlotsForDate(db, experience.ID, date)
	if err != nil {
		utils.LogError("Failed to load slots for experience ID: %d, date: %s: %v", experience.ID, c.Param("date"), err)
		utils.InternalServerError(c, "Failed to load slots", nil)
		return
	}
	utils.LogInfo("Found %d bookable slots for experience ID: %d on %s", len(slots), experience.ID, c.Param("date"))

	summaries := make([]gin.H, 0, len(slots))
	for i := range slots {
		summaries = append(summaries, slotSummary(&slots[i]))
	}

	utils.Success(c, "Slots retrieved successfully", gin.H{
		"experienceId": experience.ID,
		"date":         date.Format("2006-01-02"),
		"slots":        summaries,
	})
}

// GetExperienceCategories lists the known categories
func GetExperienceCategories(c *gin.Context) {
	utils.LogInfo("GetExperienceCategories called")
	utils.Success(c, "Categories retrieved successfully", gin.H{
		"categories": models.ValidCategories,
	})
}

// GetExperienceLocations lists the distinct locations with active experiences
func GetExperienceLocations(c *gin.Context) {
	utils.LogInfo("GetExperienceLocations called")

	var locations []string
	err := config.DB.Model(&models.Experience{}).
		Where("is_active = ?", true).
		Distinct("location").
		Order("location asc").
		Pluck("location", &locations).Error
	if err != nil {
		utils.LogError("Failed to load locations: %v", err)
		utils.InternalServerError(c, "Failed to load locations", nil)
		return
	}
	utils.LogInfo("Found %d locations", len(locations))

	utils.Success(c, "Locations retrieved successfully", gin.H{
		"locations": locations,
	})
}
