// Package httpapi exposes the storefront over REST using gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/artstore/internal/logging"
	"github.com/dmitrijs2005/artstore/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	store     *services.StoreService
	presigner services.Presigner
	logger    logging.Logger
	engine    *gin.Engine
}

func NewServer(address string, l logging.Logger, store *services.StoreService, presigner services.Presigner) *Server {
	s := &Server{
		address:   address,
		store:     store,
		presigner: presigner,
		logger:    l.With("module", "http_server"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestIDMiddleware, s.loggingMiddleware)

	auth := r.Group("/auth")
	{
		auth.POST("/login", s.Login)
		auth.POST("/register", s.Register)
	}

	r.GET("/gallery", s.Gallery)
	r.POST("/purchase", s.Purchase)

	profile := r.Group("/profile")
	{
		profile.GET("/me", s.Profile)
		profile.GET("/purchased", s.Purchased)
		profile.POST("/topup", s.Topup)
	}
	r.PUT("/profile", s.UpdateProfile)

	r.POST("/s3/presign", s.Presign)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
