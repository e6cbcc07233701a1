package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	"github.com/BruksfildServices01/coach-calendar/internal/config"
	domainAccount "github.com/BruksfildServices01/coach-calendar/internal/domain/account"
	domainBooking "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/handlers"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/middleware"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
	"github.com/BruksfildServices01/coach-calendar/internal/notify"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
	ucAccount "github.com/BruksfildServices01/coach-calendar/internal/usecase/account"
	ucClient "github.com/BruksfildServices01/coach-calendar/internal/usecase/client"
	ucCoach "github.com/BruksfildServices01/coach-calendar/internal/usecase/coach"
	"github.com/BruksfildServices01/coach-calendar/internal/web"
)

// AccountStore is the identity and account side of the store.
type AccountStore interface {
	identity.Store
	domainAccount.Repository
}

// Infra is the set of singletons the routes are built on. main chooses
// between the Postgres and in-memory implementations.
type Infra struct {
	Accounts  AccountStore
	Events    domainBooking.Repository
	Broker    realtime.Broker
	Audit     *audit.Dispatcher
	AuditLogs handlers.AuditReader
	Emails    notify.Enqueuer
}

func RegisterRoutes(r *gin.Engine, infra Infra, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.SetHTMLTemplate(web.Templates())

	r.Use(middleware.RequestLogger())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.Sessions(cfg))

	// ======================================================
	// SERVICES
	// ======================================================
	authService := identity.NewService(infra.Accounts, infra.Broker, cfg)
	notifier := notify.NewNotifier(infra.Emails, cfg.Timezone)

	r.Use(middleware.Authenticate(authService))

	// ======================================================
	// USE CASES COACH
	// ======================================================
	listEventsUC := ucCoach.NewListEvents(infra.Events)
	listBookingsUC := ucCoach.NewListBookings(infra.Events)
	getEventUC := ucCoach.NewGetEvent(infra.Events)
	createEventUC := ucCoach.NewCreateEvent(infra.Events, infra.Audit, cfg.Timezone)
	updateEventUC := ucCoach.NewUpdateEvent(infra.Events, notifier, infra.Audit, cfg.Timezone)
	deleteEventUC := ucCoach.NewDeleteEvent(infra.Events, infra.Audit)
	decideBookingUC := ucCoach.NewDecideBooking(infra.Events, notifier, infra.Audit)
	decideAllUC := ucCoach.NewDecideAllBookings(infra.Events, notifier, infra.Audit)

	// ======================================================
	// USE CASES CLIENT
	// ======================================================
	loadCorpusUC := ucClient.NewLoadCorpus(infra.Events)
	selectCoachUC := ucClient.NewSelectCoach(infra.Events)
	locateEventUC := ucClient.NewLocateEvent(infra.Events)
	requestBookingUC := ucClient.NewRequestBooking(infra.Events, infra.Audit)
	cancelBookingUC := ucClient.NewCancelBooking(infra.Events, infra.Audit)

	// ======================================================
	// USE CASES ACCOUNT
	// ======================================================
	deleteAccountUC := ucAccount.NewDeleteAccount(
		infra.Accounts,
		authService,
		infra.Broker,
		infra.Audit,
		cfg.RecentLoginWindow,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authService)
	meHandler := handlers.NewMeHandler(infra.Accounts, deleteAccountUC)
	pageHandler := handlers.NewPageHandler()

	coachHandler := handlers.NewCoachHandler(
		listEventsUC,
		listBookingsUC,
		getEventUC,
		createEventUC,
		updateEventUC,
		deleteEventUC,
		decideBookingUC,
		decideAllUC,
	)

	clientHandler := handlers.NewClientHandler(
		loadCorpusUC,
		selectCoachUC,
		locateEventUC,
		requestBookingUC,
		cancelBookingUC,
	)

	streamHandler := handlers.NewStreamHandler(
		infra.Broker,
		realtime.NewUpgrader(cfg.AllowedOrigins),
		infra.Events,
		listEventsUC,
		loadCorpusUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(infra.AuditLogs)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// PAGES (HTML)
	// ======================================================
	r.GET("/", pageHandler.Home)
	r.GET("/login", pageHandler.Login)
	r.GET("/signup", pageHandler.SignUp)
	r.GET("/coach", middleware.Guard(infra.Accounts, models.RoleCoach, middleware.GuardPage), pageHandler.Coach)
	r.GET("/client", middleware.Guard(infra.Accounts, models.RoleClient, middleware.GuardPage), pageHandler.Client)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.SignUp)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.POST("/auth/reauthenticate", middleware.RequireAuth(), authHandler.Reauthenticate)

		api.GET("/me", middleware.RequireAuth(), meHandler.GetMe)
		api.DELETE("/me", middleware.RequireAuth(), meHandler.Delete)

		// ------------------------------
		// COACH
		// ------------------------------
		coach := api.Group("/coach")
		coach.Use(middleware.Guard(infra.Accounts, models.RoleCoach, middleware.GuardAPI))
		{
			coach.GET("/events", coachHandler.ListEvents)
			coach.POST("/events", coachHandler.CreateEvent)
			coach.GET("/events/:eventId", coachHandler.GetEvent)
			coach.PUT("/events/:eventId", coachHandler.UpdateEvent)
			coach.DELETE("/events/:eventId", coachHandler.DeleteEvent)

			coach.PATCH("/events/:eventId/bookings", coachHandler.DecideAllBookings)
			coach.PATCH("/events/:eventId/bookings/:index", coachHandler.DecideBooking)
			coach.GET("/bookings", coachHandler.ListBookings)

			coach.GET("/audit-logs", auditLogsHandler.List)

			coach.GET("/stream", streamHandler.CoachEvents)
			coach.GET("/events/:eventId/stream", streamHandler.CoachEvent)
		}

		// ------------------------------
		// CLIENT
		// ------------------------------
		client := api.Group("/client")
		client.Use(middleware.Guard(infra.Accounts, models.RoleClient, middleware.GuardAPI))
		{
			client.GET("/coaches", clientHandler.SearchCoaches)
			client.GET("/coaches/:coachId/events", clientHandler.CoachEvents)
			client.POST("/coaches/:coachId/events/:eventId/booking", clientHandler.RequestBooking)
			client.DELETE("/coaches/:coachId/events/:eventId/booking", clientHandler.CancelBooking)

			client.GET("/bookings", clientHandler.MyBookings)
			client.GET("/events/:eventId/locate", clientHandler.LocateEvent)

			client.GET("/stream", streamHandler.Client)
		}
	}
}
