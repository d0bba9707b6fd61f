package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/notification"
	"github.com/BruksfildServices01/salon-scheduler/internal/payments"
	"github.com/BruksfildServices01/salon-scheduler/internal/settings"
	ucscheduling "github.com/BruksfildServices01/salon-scheduler/internal/usecase/scheduling"
)

// Deps agrupa a infra criada no main; handlers e use cases nascem aqui.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Settings *settings.Store
	Notifier *notification.Dispatcher
	Payments payments.Provider // nil quando MP_ACCESS_TOKEN não está setado
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	db := deps.DB

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — SCHEDULING
	// ======================================================
	createAppointmentUC := ucscheduling.NewCreateAppointment(
		schedulingRepo,
		deps.Settings,
		cfg.Scheduling,
		auditDispatcher,
		deps.Notifier,
		deps.Payments,
	)

	updateAppointmentUC := ucscheduling.NewUpdateAppointment(
		schedulingRepo,
		deps.Settings,
		cfg.Scheduling,
		auditDispatcher,
	)

	cancelAppointmentUC := ucscheduling.NewCancelAppointment(
		schedulingRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucscheduling.NewCompleteAppointment(
		schedulingRepo,
		auditDispatcher,
	)

	confirmDepositUC := ucscheduling.NewConfirmDeposit(
		schedulingRepo,
		auditDispatcher,
	)

	availabilityUC := ucscheduling.NewGetAvailability(
		schedulingRepo,
		deps.Settings,
		cfg.Scheduling,
	)

	listAppointmentsByDateUC := ucscheduling.NewListAppointmentsByDate(
		schedulingRepo,
	)

	listUpcomingByPhoneUC := ucscheduling.NewListUpcomingByPhone(
		schedulingRepo,
	)

	expireHoldsUC := ucscheduling.NewExpireHolds(
		schedulingRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	stylistHandler := handlers.NewStylistHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	timeOffHandler := handlers.NewTimeOffHandler(db)
	settingsHandler := handlers.NewSettingsHandler(deps.Settings)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		confirmDepositUC,
		listAppointmentsByDateUC,
		listUpcomingByPhoneUC,
		expireHoldsUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		createAppointmentUC,
		availabilityUC,
		listUpcomingByPhoneUC,
	)

	webhookHandler := handlers.NewWebhookHandler(
		deps.Payments,
		confirmDepositUC,
		deps.Redis,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (vitrine por slug)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/:slug/my-appointments", publicHandler.MyAppointments)
		}

		// ------------------------------
		// 🔔 WEBHOOKS (sem auth; valida contra o gateway)
		// ------------------------------
		api.POST("/webhooks/mercadopago", webhookHandler.MercadoPago)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (painel do salão)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		secured.Use(middleware.TenantContext(db))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/stylists", stylistHandler.List)
			secured.POST("/me/stylists", stylistHandler.Create)
			secured.PATCH("/me/stylists/:id", stylistHandler.Update)

			secured.GET("/me/customers", customerHandler.List)
			secured.GET("/me/customers/by-phone", customerHandler.GetByPhone)

			secured.GET("/me/stylists/:stylistId/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/stylists/:stylistId/working-hours", workingHoursHandler.Update)

			secured.GET("/me/time-off", timeOffHandler.List)
			secured.POST("/me/time-off", timeOffHandler.Create)
			secured.DELETE("/me/time-off/:id", timeOffHandler.Delete)

			secured.GET("/me/settings", settingsHandler.List)
			secured.PUT("/me/settings", settingsHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/upcoming", appointmentHandler.ListUpcomingByPhone)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/me/appointments/:id/confirm-deposit", appointmentHandler.ConfirmDeposit)
			secured.POST("/me/appointments/expire-holds", appointmentHandler.ExpireHolds)

			secured.GET("/me/availability", availabilityHandler.GetFreeSlots)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
