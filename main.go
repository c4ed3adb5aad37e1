package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kennndev/mindflow/internal/config"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/routes"
	"github.com/kennndev/mindflow/internal/scheduling"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	// Distributed slot locking is optional; without Redis the unique index
	// on the booking slot key still prevents double-booking.
	locker := scheduling.NewNoopSlotLocker()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		locker = scheduling.NewRedisSlotLocker(client, 10*time.Second)
		log.Printf("Slot locking enabled via Redis at %s", cfg.Redis.Addr)
	}

	// Wire the session lifecycle service
	svc := scheduling.NewService(
		scheduling.NewGormSessionRepository(db),
		scheduling.NewGormDirectory(db),
		scheduling.NewGormCheckInRepository(db),
		locker,
		time.Duration(cfg.VideoLinkExpiryMinutes)*time.Minute,
	)

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg, svc)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
