package router

import (
	"database/sql"

	"soletracker_backend/internal/handlers"
	"soletracker_backend/internal/repositories"
	"soletracker_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	itemRepo := repositories.NewItemRepository(db)
	saleRepo := repositories.NewSaleRepository(db)

	// Initialize Services
	itemService := services.NewItemService(itemRepo, saleRepo, db)
	saleService := services.NewSaleService(itemRepo, saleRepo, db)
	analyticsService := services.NewAnalyticsService(itemRepo, saleRepo)

	// Initialize Handlers
	itemHandler := handlers.NewItemHandler(itemService, saleService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService)

	apiV1 := engine.Group("/api/v1")

	SetupItemRoutes(apiV1, itemHandler)
	SetupDashboardRoutes(apiV1, dashboardHandler)
}
