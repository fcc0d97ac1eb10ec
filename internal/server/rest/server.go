// Package rest exposes the account operations over HTTP using gin. Sessions
// travel in an HttpOnly cookie.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Accounts is the subset of services.AccountService used by the handlers.
type Accounts interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	SessionTTL() time.Duration
}

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address     string
	logger      logging.Logger
	accounts    Accounts
	cookie      CookieOptions
	corsOrigins []string
}

func NewHTTPServer(a string, l logging.Logger, accounts Accounts, cookie CookieOptions, corsOrigins []string) *HTTPServer {
	return &HTTPServer{
		address:     a,
		logger:      l.With("module", "http_server"),
		accounts:    accounts,
		cookie:      cookie,
		corsOrigins: corsOrigins,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	if len(s.corsOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = s.corsOrigins
		cfg.AllowCredentials = true
		cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		r.Use(cors.New(cfg))
	}

	r.GET("/health", s.health)
	r.POST("/register", s.register)
	r.POST("/login", s.login)
	r.POST("/logout", s.logout)

	user := r.Group("/user", s.requireSession())
	user.GET("/me", s.me)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
