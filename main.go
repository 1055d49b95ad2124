package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/warinth/barlink-backend/config"
	"github.com/warinth/barlink-backend/hub"
	"github.com/warinth/barlink-backend/middlewares"
	"github.com/warinth/barlink-backend/router"
	"github.com/warinth/barlink-backend/services"
	"github.com/warinth/barlink-backend/sessions"
	"github.com/warinth/barlink-backend/utils"
)

func init() {
	// Load .env lebih dulu sebelum apapun membaca environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := config.AppLocation()

	// Session store dengan janitor sweep
	sessionStore := sessions.NewStore(config.SessionTTL())
	sessionStore.Start(time.Minute)
	defer sessionStore.Stop()

	// Fan-out hub untuk big screen dan dashboard
	screenHub := hub.New()

	// Upstream POS + cache
	odoo := services.NewOdooClientFromEnv()
	unpaidCache := services.NewUnpaidCache(odoo, config.UnpaidCacheTTL())

	r := router.SetupRouter(router.Deps{
		DB:       db,
		Sessions: sessionStore,
		Hub:      screenHub,
		Cache:    unpaidCache,
		Orders:   odoo,
		Points:   services.NewPointsService(db, loc),
		Contacts: services.NewContactService(db, loc),
	})

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
