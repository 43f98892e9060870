package routes

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lumina-studio/gallery-api/internal/audit"
	"github.com/lumina-studio/gallery-api/internal/cache"
	"github.com/lumina-studio/gallery-api/internal/config"
	"github.com/lumina-studio/gallery-api/internal/handlers"
	infraRepo "github.com/lumina-studio/gallery-api/internal/infra/repository"
	"github.com/lumina-studio/gallery-api/internal/middleware"
	"github.com/lumina-studio/gallery-api/internal/notify"
	"github.com/lumina-studio/gallery-api/internal/storage"
	ucBooking "github.com/lumina-studio/gallery-api/internal/usecase/booking"
)

const availabilityCacheTTL = 5 * time.Minute

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, availabilityCacheTTL)

	notifier := notify.NewLogNotifier()

	var photoStore storage.PhotoStore
	if s3Store, err := storage.NewS3Store(cfg); err != nil {
		log.Println("photo storage disabled:", err)
	} else {
		photoStore = s3Store
	}

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		availabilityCache,
		cfg.StudioTimezone,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
		availabilityCache,
		cfg.StudioTimezone,
	)

	deleteBookingUC := ucBooking.NewDeleteBooking(
		bookingRepo,
		auditDispatcher,
		availabilityCache,
	)

	listUserBookingsUC := ucBooking.NewListUserBookings(
		bookingRepo,
		cfg.StudioTimezone,
	)

	availableDatesUC := ucBooking.NewGetAvailableDates(
		bookingRepo,
		availabilityCache,
		cfg.StudioTimezone,
	)

	adminListBookingsUC := ucBooking.NewAdminListBookings(
		bookingRepo,
		cfg.StudioTimezone,
	)

	adminUpdateBookingUC := ucBooking.NewAdminUpdateBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
		availabilityCache,
	)

	adminCalendarUC := ucBooking.NewAdminCalendar(
		bookingRepo,
		cfg.StudioTimezone,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	homeHandler := handlers.NewHomeHandler(db)
	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	galleryHandler := handlers.NewGalleryHandler(db, photoStore, auditDispatcher)
	usersHandler := handlers.NewUsersHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		cancelBookingUC,
		deleteBookingUC,
		listUserBookingsUC,
		availableDatesUC,
	)

	adminBookingHandler := handlers.NewAdminBookingHandler(
		adminListBookingsUC,
		adminUpdateBookingUC,
		adminCalendarUC,
		bookingRepo,
		cfg.StudioTimezone,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/", homeHandler.Index)
		api.GET("/services", serviceHandler.List)
		api.GET("/gallery", galleryHandler.List)
		api.GET("/gallery/:id", galleryHandler.Detail)
		api.GET("/availability", bookingHandler.AvailableDates)
		api.GET("/availability/check", bookingHandler.CheckDate)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", profileHandler.Get)
			secured.PATCH("/me", profileHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.DELETE("/me/bookings/:id", bookingHandler.Delete)

			// ------------------------------
			// 👮 STAFF
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireStaff())
			{
				admin.GET("/bookings", adminBookingHandler.List)
				admin.GET("/bookings/:id", adminBookingHandler.Get)
				admin.PATCH("/bookings/:id", adminBookingHandler.Update)
				admin.GET("/calendar", adminBookingHandler.Calendar)

				admin.GET("/users", usersHandler.List)

				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)

				admin.POST("/photos", galleryHandler.Upload)
				admin.DELETE("/photos/:id", galleryHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
