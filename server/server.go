// Package server assembles the HTTP server around the turn orchestrator.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/mentio/mentio/chatbot"
	"github.com/mentio/mentio/plugin/llm"
	"github.com/mentio/mentio/server/auth"
	"github.com/mentio/mentio/server/profile"
	apiv1 "github.com/mentio/mentio/server/router/api/v1"
	"github.com/mentio/mentio/store"
)

type Server struct {
	echo       *echo.Echo
	httpServer *http.Server
	profile    *profile.Profile
}

// New wires the full service: identity, entitlement, quota, orchestrator and
// the v1 routes.
func New(p *profile.Profile, st *store.Store, backend llm.Backend) *Server {
	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
	}))
	e.GET("/healthz", func(c *echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	authenticator := auth.NewAuthenticator(p.JWTSecret, p.JWTAudience)
	entitlements := auth.NewSubscriptionClient(p.SubscriptionAPIURL)
	quota := chatbot.NewQuotaGate(st, p.MessageLimit)
	orchestrator := chatbot.NewOrchestrator(st, backend, authenticator, entitlements, quota)
	apiv1.NewAPIV1Service(p, st, authenticator, orchestrator, quota).Register(e)

	return &Server{
		echo:    e,
		profile: p,
		httpServer: &http.Server{
			Addr:              p.ListenAddr(),
			Handler:           e,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
