package routes

import (
	"github.com/Govind-619/WanderSphere/controllers"
	"github.com/gin-gonic/gin"
)

// initPromoRoutes initializes the promo code routes
func initPromoRoutes(router *gin.RouterGroup) {
	promo := router.Group("/promo")
	{
		promo.POST("/validate", controllers.ValidatePromoCode)
		promo.GET("/active", controllers.GetActivePromoCodes)
		promo.GET("/:code", controllers.GetPromoCode)
	}
}
