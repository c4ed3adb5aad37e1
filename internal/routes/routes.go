package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kennndev/mindflow/internal/config"
	"github.com/kennndev/mindflow/internal/handlers"
	"github.com/kennndev/mindflow/internal/mailer"
	"github.com/kennndev/mindflow/internal/middleware"
	"github.com/kennndev/mindflow/internal/models"
	"github.com/kennndev/mindflow/internal/scheduling"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, svc *scheduling.Service) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, mailer.New(cfg.Mailer))
	profileHandler := handlers.NewProfileHandler(db)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(svc)
	notesHandler := handlers.NewNotesHandler(svc)
	checkInHandler := handlers.NewCheckInHandler(svc)
	journalHandler := handlers.NewJournalHandler(db)
	messageHandler := handlers.NewMessageHandler(db)
	videoHandler := handlers.NewVideoHandler(svc, cfg)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/request-code", authHandler.RequestCode)
			authRoutes.POST("/verify-code", authHandler.VerifyCode)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Role-specific profile completion
		profileRoutes := private.Group("/profile")
		{
			profileRoutes.GET("", profileHandler.GetMyProfile)
			profileRoutes.PUT("/patient", middleware.RoleAuthMiddleware(models.RolePatient), profileHandler.CompletePatientProfile)
			profileRoutes.PUT("/doctor", middleware.RoleAuthMiddleware(models.RoleDoctor), profileHandler.CompleteDoctorProfile)
		}

		// Doctor directory and assignment
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", userHandler.ListDoctors)
			doctorRoutes.GET("/:id", userHandler.GetDoctor)
			doctorRoutes.POST("/select", middleware.RoleAuthMiddleware(models.RolePatient), userHandler.SelectDoctor)
			doctorRoutes.GET("/my-patients", middleware.RoleAuthMiddleware(models.RoleDoctor), userHandler.MyPatients)
		}

		// Admin-only doctor approval
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/doctors/pending", userHandler.ListPendingDoctors)
			adminRoutes.PATCH("/doctors/:id/approve", userHandler.ApproveDoctor)
		}

		// Appointment lifecycle
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.Create)
			appointmentRoutes.GET("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.List)
			appointmentRoutes.GET("/schedule", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.Schedule)
			appointmentRoutes.GET("/:id", appointmentHandler.Get) // involvement checked in the service
			appointmentRoutes.DELETE("/:id", appointmentHandler.Cancel)
			appointmentRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.UpdateStatus)

			// Clinical notes sub-resource, doctor-only
			appointmentRoutes.GET("/:id/notes", middleware.RoleAuthMiddleware(models.RoleDoctor), notesHandler.Get)
			appointmentRoutes.PUT("/:id/notes", middleware.RoleAuthMiddleware(models.RoleDoctor), notesHandler.Update)

			// Video room credential, involvement checked in the handler
			appointmentRoutes.POST("/:id/video-token", videoHandler.Token)
		}

		// Pre-session check-ins
		checkInRoutes := private.Group("/check-ins")
		checkInRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			checkInRoutes.POST("", checkInHandler.Create)
			checkInRoutes.GET("", checkInHandler.List)
		}

		// Journal and mood tracking
		journalRoutes := private.Group("/journal")
		journalRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			journalRoutes.POST("/entries", journalHandler.CreateEntry)
			journalRoutes.GET("/entries", journalHandler.ListEntries)
			journalRoutes.POST("/moods", journalHandler.CreateMood)
			journalRoutes.GET("/moods", journalHandler.ListMoods)
		}

		// Messaging
		messageRoutes := private.Group("/messages")
		{
			messageRoutes.POST("/send", messageHandler.Send)
			messageRoutes.GET("/unread-count", messageHandler.UnreadCount)
			messageRoutes.GET("/with/:userId", messageHandler.Conversation)
			messageRoutes.PATCH("/with/:userId/read", messageHandler.MarkRead)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
