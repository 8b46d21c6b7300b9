package routes

import (
	"github.com/Govind-619/WanderSphere/controllers"
	"github.com/gin-gonic/gin"
)

// initExperienceRoutes initializes the experience catalog routes
func initExperienceRoutes(router *gin.RouterGroup) {
	experiences := router.Group("/experiences")
	{
		experiences.GET("", controllers.GetExperiences)
		experiences.GET("/categories", controllers.GetExperienceCategories)
		experiences.GET("/locations", controllers.GetExperienceLocations)
		experiences.GET("/:id", controllers.GetExperienceByID)
		experiences.GET("/:id/slots/:date", controllers.GetExperienceSlots)
	}
}
