package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/content"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

// Dependencies are the long lived services built by main.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Audit    *audit.Dispatcher
	Notifier notify.NotificationSender
	Uploader storage.Uploader
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Log),
		gin.Recovery(),
		middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(deps.DB)
	contentStore := content.NewStore(deps.DB)
	mediaService := storage.NewMediaService(deps.DB, deps.Uploader)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, deps.Audit)
	updateBookingUC := ucBooking.NewUpdateBooking(bookingRepo, deps.Audit, deps.Notifier, deps.Log)
	updateStatusUC := ucBooking.NewUpdateBookingStatus(updateBookingUC)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, deps.Audit, deps.Notifier, deps.Log)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	createPublicUC := ucBooking.NewCreatePublicBooking(bookingRepo, deps.Audit, deps.Notifier, deps.Log)

	getSettingsUC := ucBooking.NewGetSettings(bookingRepo)
	saveSettingsUC := ucBooking.NewSaveSettings(bookingRepo, deps.Audit)
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(deps.DB, deps.Config.JWTSecret, deps.Log)
	meHandler := handlers.NewMeHandler(deps.DB)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateBookingUC,
		updateStatusUC,
		deleteBookingUC,
		listBookingsUC,
		deps.Log,
	)
	bookingConfigHandler := handlers.NewBookingConfigHandler(
		getSettingsUC,
		saveSettingsUC,
		availabilityUC,
		deps.Log,
	)

	publicHandler := handlers.NewPublicHandler(deps.DB, contentStore, createPublicUC, deps.Notifier, deps.Log)
	serviceHandler := handlers.NewServiceHandler(deps.DB, deps.Audit, deps.Log)
	clientHandler := handlers.NewClientHandler(deps.DB, deps.Audit, deps.Log)
	contentHandler := handlers.NewContentHandler(contentStore, deps.Audit, deps.Log)
	messageHandler := handlers.NewMessageHandler(deps.DB, deps.Log)
	mediaHandler := handlers.NewMediaHandler(mediaService, deps.Audit, deps.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB, deps.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/booking-config", bookingConfigHandler.Get)
		api.GET("/booking-config/availability", bookingConfigHandler.Availability)

		api.GET("/content/home", contentHandler.GetHome)
		api.GET("/content/about", contentHandler.GetAbout)
		api.GET("/content/contact", contentHandler.GetContact)

		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/services/:slug", publicHandler.GetService)
			publicAPI.POST("/bookings", publicHandler.CreateBooking)
			publicAPI.GET("/translations", publicHandler.Translations)
			publicAPI.POST("/messages", publicHandler.CreateMessage)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))
		{
			secured.GET("/auth/me", meHandler.GetMe)

			secured.PUT("/booking-config", bookingConfigHandler.Save)

			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/export.pdf", bookingHandler.ExportPDF)
			secured.POST("/bookings", bookingHandler.Create)
			secured.PUT("/bookings/:id", bookingHandler.Update)
			secured.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			secured.GET("/services", serviceHandler.List)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.PUT("/content/home", contentHandler.UpdateHome)
			secured.PUT("/content/about", contentHandler.UpdateAbout)
			secured.PUT("/content/contact", contentHandler.UpdateContact)

			secured.GET("/messages", messageHandler.List)
			secured.PATCH("/messages/:id/read", messageHandler.MarkRead)

			secured.GET("/media", mediaHandler.List)
			secured.POST("/media", mediaHandler.Upload)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
