package http

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/vraxaserver/eygarpayment/internal/adapter/handler/http"
	"github.com/vraxaserver/eygarpayment/internal/config"
	"github.com/vraxaserver/eygarpayment/internal/infrastructure/database"
	"github.com/vraxaserver/eygarpayment/internal/middleware/auth"
	"github.com/vraxaserver/eygarpayment/internal/usecase"
	"github.com/vraxaserver/eygarpayment/internal/validator"
	"github.com/vraxaserver/eygarpayment/pkg/logger"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.NewString()
		},
	}))
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())

	allowOrigins := []string{"*"}
	if cfg.Service.ClientURL != "" {
		allowOrigins = []string{cfg.Service.ClientURL}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	s := &Server{
		config: cfg,
		logger: log,
		echo:   e,
		repos:  repos,
	}
	s.setupRoutes()

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Router exposes the echo instance, primarily for handler-level tests.
func (s *Server) Router() *echo.Echo {
	return s.echo
}

func (s *Server) setupRoutes() {
	// Health check (no authentication)
	healthHandler := handlers.NewHealthHandler(s.config)
	s.echo.GET("/health", healthHandler.Check)

	// Initialize handlers
	paymentService := usecase.NewPaymentService(s.repos.Payment, s.logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, s.config.Pagination, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
		},
	}

	// Payment routes (require authentication)
	payments := s.echo.Group("/payments", auth.JWTMiddleware(jwtConfig))
	payments.POST("", paymentHandler.CreatePayment)
	payments.GET("", paymentHandler.ListMyPayments)
	payments.GET("/admin/all", paymentHandler.ListAllPayments)
	payments.GET("/gateway/:payment_id", paymentHandler.GetPaymentByGatewayID)
	payments.GET("/booking/:booking_id", paymentHandler.ListBookingPayments)
	payments.GET("/:id", paymentHandler.GetPayment)
	payments.PUT("/:id", paymentHandler.UpdatePayment)
	payments.PATCH("/:id/status", paymentHandler.UpdatePaymentStatus)
	payments.DELETE("/:id", paymentHandler.CancelPayment)
}
