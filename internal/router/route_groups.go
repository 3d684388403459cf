package router

import (
	"soletracker_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupItemRoutes sets up the inventory item routes.
func SetupItemRoutes(apiGroup *gin.RouterGroup, itemHandler *handlers.ItemHandler) {
	itemRoutes := apiGroup.Group("/items")
	{
		itemRoutes.POST("", itemHandler.CreateItem)
		itemRoutes.GET("", itemHandler.GetItems)
		itemRoutes.POST("/:id/sell", itemHandler.SellItem)
		itemRoutes.DELETE("/:id", itemHandler.DeleteItem)
	}
}

// SetupDashboardRoutes sets up the analytics routes.
func SetupDashboardRoutes(apiGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := apiGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/stats", dashboardHandler.GetStats)
		dashboardRoutes.GET("/trend", dashboardHandler.GetTrend)
	}
}
