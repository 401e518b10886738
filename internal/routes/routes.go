package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bkalafat/barberly/internal/cache"
	"github.com/bkalafat/barberly/internal/config"
	"github.com/bkalafat/barberly/internal/events"
	"github.com/bkalafat/barberly/internal/handlers"
	infraRepo "github.com/bkalafat/barberly/internal/infra/repository"
	"github.com/bkalafat/barberly/internal/middleware"
	ucAppointment "github.com/bkalafat/barberly/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	slotCache *cache.SlotCache,
	dispatcher *events.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	outboxRepo := infraRepo.NewOutboxGormRepository(db)
	directoryRepo := infraRepo.NewDirectoryGormRepository(db)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	availabilityUC := ucAppointment.NewAvailability(appointmentRepo, directoryRepo, slotCache)
	bookUC := ucAppointment.NewBook(appointmentRepo, slotCache, dispatcher)
	cancelUC := ucAppointment.NewCancel(appointmentRepo, slotCache, dispatcher)
	rescheduleUC := ucAppointment.NewReschedule(appointmentRepo, slotCache)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	directoryHandler := handlers.NewDirectoryHandler(db)
	schedulingHandler := handlers.NewSchedulingHandler(
		availabilityUC,
		bookUC,
		cancelUC,
		rescheduleUC,
		appointmentRepo,
	)
	outboxAdminHandler := handlers.NewOutboxAdminHandler(outboxRepo)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC DIRECTORY + AVAILABILITY
		// ------------------------------
		api.GET("/shops", directoryHandler.ListShops)
		api.GET("/shops/:id", directoryHandler.GetShop)
		api.GET("/shops/:id/barbers", directoryHandler.ListShopBarbers)
		api.GET("/shops/:id/services", directoryHandler.ListShopServices)
		api.GET("/barbers/:id", directoryHandler.GetBarber)
		api.GET("/services/:id", directoryHandler.GetService)

		api.GET("/barbers/:id/availability", schedulingHandler.GetAvailability)

		// ------------------------------
		// APPOINTMENTS (AUTH)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/appointments", schedulingHandler.Create)
			secured.GET("/appointments/:id", schedulingHandler.Get)
			secured.DELETE("/appointments/:id", schedulingHandler.Cancel)
			secured.PATCH("/appointments/:id", schedulingHandler.Reschedule)

			secured.GET("/admin/outbox/stats", outboxAdminHandler.Stats)
		}
	}
}
