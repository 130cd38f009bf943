package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ivrlabs/callstore/internal/config"
	"github.com/ivrlabs/callstore/internal/middlewares"
)

const shutdownTimeout = 10 * time.Second

// RegisterHandlerFn receives the /api/v1 router group and attaches routes.
type RegisterHandlerFn func(router *gin.RouterGroup)

type Server struct {
	cfg  *config.Configuration
	http *http.Server
}

// NewServer builds the Gin engine, applies the middleware stack, and lets the
// callback register its routes under /api/v1.
func NewServer(cfg *config.Configuration, registerHandlers RegisterHandlerFn) *Server {
	if cfg.Server.Mode == config.ServerModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middlewares.Logger())
	router.Use(ginzap.RecoveryWithZap(zap.L().Named("recovery"), true))

	apiGroup := router.Group("/api/v1")
	registerHandlers(apiGroup)

	// Unknown API routes answer JSON, not gin's default text.
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler: router,
		},
	}
}

// Start serves HTTP and blocks until the server is shut down or fails.
func (s *Server) Start() error {
	zap.S().Named("server").Infow("listening", "addr", s.http.Addr, "mode", s.cfg.Server.Mode)
	return s.http.ListenAndServe()
}

// Stop performs a graceful shutdown, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
