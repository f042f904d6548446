// Package httpapi serves the credential flows as a JSON REST API:
//
//	POST /api/register  {username, password} -> 201 {message, userId}
//	POST /api/login     {username, password} -> 200 {message, token}
//	GET  /api/me        Authorization: Bearer <token> -> 200 {id, username, createdAt}
//	GET  /health
//	GET  /metrics
//
// Errors are returned as {"error": <message>, "kind": <kind>}.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// UserService is the part of services.UserService the HTTP API needs.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	WhoAmI(ctx context.Context, token string) (*models.User, error)
}

// Options configures the HTTP server.
type Options struct {
	Address        string
	AllowedOrigins []string
	// Metrics serves /metrics when non-nil.
	Metrics http.Handler
	// ShutdownTimeout bounds graceful shutdown; 0 means 5s.
	ShutdownTimeout time.Duration
}

type Server struct {
	opts   Options
	users  UserService
	logger logging.Logger
}

func NewServer(opts Options, l logging.Logger, us UserService) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	return &Server{
		opts:   opts,
		users:  us,
		logger: l.With("module", "http_server"),
	}
}

// Router builds the gin engine with middleware and routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestID(), s.accessLog())

	corsConfig := cors.DefaultConfig()
	if len(s.opts.AllowedOrigins) == 0 || (len(s.opts.AllowedOrigins) == 1 && s.opts.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.opts.AllowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", handleHealth)
	if s.opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(s.opts.Metrics))
	}

	api := router.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)
		api.GET("/me", s.requireToken(), s.handleMe)
	}

	return router
}

// Run serves on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
