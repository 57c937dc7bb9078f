// Package server exposes the dataset lifecycle operations over HTTP. Requests
// pass declarative validation before any orchestrator runs; validation
// failures answer 422 with a field-keyed error map, remote failures answer
// 500 with no detail (the cause is logged server-side only).
package server

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/deltadao/nautilus-bridge-go/pkg/bridge"
	"github.com/deltadao/nautilus-bridge-go/pkg/config"
)

//go:embed openapi.json
var openapiDocument []byte

// Server routes lifecycle requests to the bridge orchestrators.
type Server struct {
	e       *echo.Echo
	bridge  *bridge.Bridge
	timeout time.Duration
}

// New wires the routes and middleware. The documentation endpoint is mounted
// only when enabled in the configuration.
func New(cfg config.Config, b *bridge.Bridge) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		e:       e,
		bridge:  b,
		timeout: cfg.RequestTimeout,
	}

	e.Use(loggingMiddleware)

	e.GET("/health", s.getHealth)

	g := e.Group("/nautilus")
	g.POST("/publish/:network", s.publish)
	g.POST("/revoke/:network/:assetdid", s.revoke)
	g.GET("/download_url/:network/:assetdid", s.downloadURL)
	g.POST("/update_price/:network/:assetdid", s.updatePrice)

	if cfg.EnableDocs {
		e.GET("/docs", s.getDocs)
	}

	return s
}

// Start begins serving on addr and blocks until the listener fails or the
// server is shut down.
func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Handler exposes the routing tree, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) getDocs(ctx echo.Context) error {
	return ctx.JSONBlob(http.StatusOK, openapiDocument)
}

// loggingMiddleware logs method and path per request. Headers are
// deliberately not logged: every mutating endpoint carries a credential
// header.
func loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()
		zap.L().Info("request received",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path))
		return next(ctx)
	}
}
