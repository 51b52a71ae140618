// Package http provides the HTTP adapter for the application layer. It is a
// thin translation layer between requests and application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/service"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/infrastructure/export"
	ws "github.com/awahyudi/facility-portal/internal/interfaces/websocket"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	JWTSecret      []byte
	AllowedOrigins []string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Services bundles the application services the server exposes.
type Services struct {
	Permits    service.PermitService
	Attendance service.AttendanceService
	Guests     service.GuestService
	Overtime   service.OvertimeService
	Waste      service.WasteService
	Sarpras    service.SarprasService
	Briefings  service.BriefingService
	Users      service.UserService
	Reports    service.ReportService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	exporter   *export.Exporter
	archive    *export.Archive
	dispatcher dispatcher.Dispatcher
	hub        *ws.Hub
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	services Services,
	exporter *export.Exporter,
	archive *export.Archive,
	d dispatcher.Dispatcher,
	hub *ws.Hub,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:     config,
		router:     gin.New(),
		services:   services,
		exporter:   exporter,
		archive:    archive,
		dispatcher: d,
		hub:        hub,
		logger:     logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	corsConfig := cors.DefaultConfig()
	if len(s.config.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = s.config.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	s.router.Use(cors.New(corsConfig))
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.services, s.exporter, s.archive, s.dispatcher, s.logger)

	s.router.GET("/health", handlers.HealthCheck)

	auth := s.router.Group("/api/auth")
	{
		auth.POST("/signup", handlers.Signup)
		auth.POST("/login", handlers.Login)
		auth.GET("/me", RequireAuth(s.config.JWTSecret), handlers.Me)
	}

	api := s.router.Group("/api", RequireAuth(s.config.JWTSecret))
	{
		users := api.Group("/users", RequireRole())
		{
			users.GET("", handlers.ListUsers)
			users.PATCH("/:uid", handlers.UpdateUser)
		}

		permits := api.Group("/permits")
		{
			// Submission is self-service for every non-admin role, not
			// just employees; security and receptionists leave too.
			selfService := RequireRole(entity.RoleEmployee, entity.RoleReceptionist, entity.RoleSecurity)
			permits.POST("", selfService, handlers.SubmitPermit)
			permits.GET("/can-submit", selfService, handlers.CanSubmitPermit)
			permits.GET("/mine", selfService, handlers.MyPermits)

			permits.GET("", RequireRole(), handlers.ListPermits)
			permits.GET("/queue/admin", RequireRole(), handlers.AdminQueue)
			permits.GET("/queue/security-out", RequireRole(entity.RoleSecurity), handlers.SecurityOutQueue)
			permits.GET("/queue/security-return", RequireRole(entity.RoleSecurity), handlers.SecurityReturnQueue)
			permits.GET("/recap", RequireRole(), handlers.MonthlyRecap)
			permits.GET("/recap/export", RequireRole(), handlers.ExportMonthlyRecap)

			permits.GET("/:id", handlers.GetPermit)
			permits.GET("/:id/form", handlers.ExportPermitForm)
			permits.POST("/:id/approve", RequireRole(), handlers.ApprovePermit)
			permits.POST("/:id/reject", RequireRole(), handlers.RejectPermit)
			permits.POST("/:id/clarify", RequireRole(), handlers.ClarifyPermit)
			permits.POST("/:id/sign-out", RequireRole(entity.RoleSecurity), handlers.SignOutPermit)
			permits.POST("/:id/return", RequireRole(entity.RoleSecurity), handlers.ConfirmReturnPermit)
		}

		attendance := api.Group("/attendance")
		{
			// Every role clocks in; the permit precondition reads this
			// ledger for security and receptionists as well.
			attendance.POST("/clock-in", handlers.ClockIn)
			attendance.POST("/clock-out", handlers.ClockOut)
			attendance.GET("", handlers.ListAttendance)
			attendance.GET("/record", handlers.GetAttendance)
			attendance.PUT("/:id", RequireRole(), handlers.UpdateAttendance)
		}

		guests := api.Group("/guests", RequireRole(entity.RoleReceptionist, entity.RoleSecurity))
		{
			guests.POST("", handlers.AddGuest)
			guests.GET("", handlers.ListGuests)
		}

		overtime := api.Group("/overtime")
		{
			overtime.POST("", RequireRole(entity.RoleEmployee), handlers.AddOvertime)
			overtime.GET("", handlers.ListOvertime)
			overtime.PUT("/:id", RequireRole(), handlers.UpdateOvertime)
			overtime.DELETE("/:id", RequireRole(), handlers.DeleteOvertime)
			overtime.POST("/:id/status", RequireRole(), handlers.SetOvertimeStatus)
		}

		waste := api.Group("/waste", RequireRole())
		{
			waste.POST("", handlers.AddWaste)
			waste.GET("", handlers.ListWaste)
			waste.GET("/summary", handlers.WasteSummary)
			waste.PUT("/:id", handlers.UpdateWaste)
			waste.DELETE("/:id", handlers.DeleteWaste)
		}

		sarpras := api.Group("/sarpras", RequireRole())
		{
			sarpras.POST("", handlers.AddSarpras)
			sarpras.GET("", handlers.ListSarpras)
			sarpras.PUT("/:id", handlers.UpdateSarpras)
		}

		briefings := api.Group("/briefings", RequireRole())
		{
			briefings.POST("", handlers.AddBriefing)
			briefings.GET("", handlers.ListBriefings)
		}

		reports := api.Group("/reports", RequireRole())
		{
			reports.POST("/daily", handlers.GenerateDailyReport)
		}
	}

	if s.hub != nil {
		s.router.GET("/ws", RequireAuth(s.config.JWTSecret), func(c *gin.Context) {
			s.hub.HandleConnection(c.Writer, c.Request)
		})
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
