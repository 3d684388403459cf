package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"soletracker_backend/internal/database"
	router_pkg "soletracker_backend/internal/router"
	"soletracker_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present, then initialize the logger.
	godotenv.Load()
	utils.InitLogger()

	// Load database configuration from environment variables. The default
	// driver is postgres; DB_DRIVER=sqlite runs the server against an
	// embedded database instead (SQLITE_PATH selects the file).
	dbDriver := utils.Getenv("DB_DRIVER", "postgres")
	var dsn string
	var dbSchemaPath string
	if dbDriver == "sqlite" {
		dsn = utils.Getenv("SQLITE_PATH", "soletracker.db")
	} else {
		dbHost := utils.Getenv("DB_HOST", "localhost")
		dbPort := utils.Getenv("DB_PORT", "5432")
		dbUser := utils.Getenv("DB_USER", "soletracker_user")
		dbPassword := utils.Getenv("DB_PASSWORD", "soletracker_password")
		dbName := utils.Getenv("DB_NAME", "soletracker_db")
		dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
		dsn = database.PostgresDSN(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
		dbSchemaPath = utils.Getenv("DB_SCHEMA_PATH", "")
	}

	// Initialize Database
	database.InitDB(dbDriver, dsn, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"driver": dbDriver})

	router := gin.Default()

	// Add GinLogger middleware for request logging
	router.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Resell Tracker API is running!"})
	})

	// Setup all application routes
	dbConn := database.GetDB()
	router_pkg.Setup(router, dbConn)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := router.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
