package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/nyaaysathi/legal-api/internal/api/handler"
	"github.com/nyaaysathi/legal-api/internal/api/middleware"
	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"

	_ "github.com/nyaaysathi/legal-api/docs"
)

// Services are the core services the HTTP layer depends on.
type Services struct {
	Auth         ports.AuthService
	Applications ports.ApplicationService
	Firm         ports.FirmService
	Resources    ports.ResourceService
	Directory    ports.DirectoryService
	Chat         ports.ChatService
}

// Options tune the router. Zero values fall back to sensible defaults.
type Options struct {
	Prefix         string
	CORSOrigins    []string
	GuestChatRPS   float64
	RequestTimeout time.Duration
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

const (
	defaultPrefix         = "/api"
	defaultRequestTimeout = 30 * time.Second
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, health *handler.HealthHandler, opts Options, log zerolog.Logger) *echo.Echo {
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "legal_api",
		Registerer: opts.Registerer,
	}))
	e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
		Timeout: opts.RequestTimeout,
	}))

	// --- Operational endpoints at the root ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	appHandler := handler.NewApplicationHandler(svc.Applications)
	lawyerHandler := handler.NewFirmLawyerHandler(svc.Firm)
	clientHandler := handler.NewFirmClientHandler(svc.Firm)
	resourceHandler := handler.NewResourceHandler(svc.Resources)
	directoryHandler := handler.NewDirectoryHandler(svc.Directory)
	chatHandler := handler.NewChatHandler(svc.Chat)

	authn := middleware.Auth(svc.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	managerOnly := middleware.RBAC(domain.RoleLawFirm)
	managerOrAdmin := middleware.RBAC(domain.RoleLawFirm, domain.RoleAdmin)

	api := e.Group(opts.Prefix)

	// --- Health checks (no auth required) ---
	api.GET("/health", health.Liveness)
	api.GET("/health/ready", health.Readiness)

	// --- Auth ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authn)

	// --- Directories and public submissions ---
	api.GET("/lawyers", directoryHandler.Lawyers)
	api.POST("/lawyers/applications", appHandler.SubmitLawyer)
	api.POST("/lawyer-applications", appHandler.SubmitLawyer)
	api.GET("/lawfirms", directoryHandler.LawFirms)
	api.POST("/lawfirms/applications", appHandler.SubmitLawFirm)
	api.POST("/waitlist", directoryHandler.JoinWaitlist)

	// --- Admin ---
	api.POST("/admin/login", authHandler.AdminLogin)
	admin := api.Group("/admin", authn, adminOnly)
	admin.GET("/lawyer-applications", appHandler.ListLawyerApplications)
	admin.PUT("/lawyer-applications/:id/approve", appHandler.ApproveLawyer)
	admin.PUT("/lawyer-applications/:id/reject", appHandler.RejectLawyer)
	admin.GET("/lawfirm-applications", appHandler.ListLawFirmApplications)
	admin.PUT("/lawfirm-applications/:id/approve", appHandler.ApproveLawFirm)
	admin.PUT("/lawfirm-applications/:id/reject", appHandler.RejectLawFirm)

	// --- Firm lawyers and tasks ---
	fl := api.Group("/firm-lawyers")
	fl.POST("/applications", appHandler.SubmitFirmLawyer)
	fl.GET("/applications", appHandler.ListFirmLawyerApplications, authn, managerOrAdmin)
	fl.PUT("/applications/:id/status", appHandler.DecideFirmLawyer, authn, managerOrAdmin)
	fl.POST("/login", authHandler.FirmLawyerLogin)
	fl.POST("", lawyerHandler.Create, authn, managerOnly)
	fl.GET("/by-firm/:firm_id", lawyerHandler.ListByFirm, authn, managerOrAdmin)
	fl.POST("/tasks", lawyerHandler.CreateTask, authn, managerOnly)
	fl.GET("/tasks/by-lawyer/:id", lawyerHandler.TasksByLawyer, authn)
	fl.GET("/tasks/by-firm/:firm_id", lawyerHandler.TasksByFirm, authn, managerOrAdmin)
	fl.PUT("/tasks/:id/status", lawyerHandler.UpdateTaskStatus, authn)
	fl.GET("/reports/firm/:firm_id", lawyerHandler.Report, authn, managerOrAdmin)
	fl.GET("/:id", lawyerHandler.Get, authn)
	fl.PUT("/:id/status", lawyerHandler.SetStatus, authn, managerOrAdmin)
	fl.DELETE("/:id", lawyerHandler.Delete, authn, managerOrAdmin)

	// --- Firm clients ---
	fc := api.Group("/firm-clients")
	fc.POST("/applications", appHandler.SubmitFirmClient)
	fc.GET("/applications/firm/:law_firm_id", appHandler.ListFirmClientApplications, authn, managerOrAdmin)
	fc.GET("/applications/all", appHandler.ListAllFirmClientApplications, authn, adminOnly)
	fc.PUT("/applications/:id/status", appHandler.DecideFirmClient, authn, managerOrAdmin)
	fc.POST("/register-paid", authHandler.RegisterPaid)
	fc.POST("/login", authHandler.FirmClientLogin)
	fc.POST("/case-updates", clientHandler.AddCaseUpdate, authn,
		middleware.RBAC(domain.RoleLawFirm, domain.RoleFirmLawyer, domain.RoleAdmin))
	fc.GET("/firm/:law_firm_id/list", clientHandler.ListByFirm, authn, managerOrAdmin)
	fc.GET("/:id", clientHandler.Get, authn)
	fc.PUT("/:id/assign-lawyer", clientHandler.AssignLawyer, authn, managerOrAdmin)
	fc.GET("/:id/case-updates", clientHandler.CaseUpdates, authn)

	// --- Owned resources ---
	api.POST("/cases", resourceHandler.CreateCase, authn)
	api.GET("/cases", resourceHandler.ListCases, authn)
	api.GET("/cases/:id", resourceHandler.GetCase, authn)
	api.POST("/documents", resourceHandler.CreateDocument, authn)
	api.GET("/documents", resourceHandler.ListDocuments, authn)
	api.POST("/bookings", resourceHandler.CreateBooking, authn)
	api.GET("/bookings", resourceHandler.ListBookings, authn)
	api.PATCH("/bookings/:id/status", resourceHandler.UpdateBookingStatus, authn, middleware.RBAC(domain.RoleLawyer))

	// --- Chat ---
	api.POST("/chat", chatHandler.Send, authn)
	api.GET("/chat/history", chatHandler.History, authn)
	api.POST("/chat/guest", chatHandler.SendGuest, guestLimiter(opts.GuestChatRPS))

	return e
}

// guestLimiter throttles unauthenticated chat per client IP.
func guestLimiter(rps float64) echo.MiddlewareFunc {
	if rps <= 0 {
		rps = 1
	}
	burst := int(rps * 5)
	if burst < 1 {
		burst = 1
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rps),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Warn()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
