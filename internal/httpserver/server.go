// Package httpserver exposes the storefront over HTTP: catalog browsing,
// account management, the shopping cart, and checkout. Each visitor gets
// a scoped session store keyed by a visitor cookie, so carts survive
// restarts without sharing state between shoppers.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/catalog"
	"tienda-storefront/internal/config"
	"tienda-storefront/internal/identity"
	"tienda-storefront/internal/order"
	"tienda-storefront/internal/session"
)

// Deps collects everything the router needs. Stores builds the per-visitor
// session store; in production it prefixes a shared Redis connection.
type Deps struct {
	Config  *config.Config
	Stores  func(visitorID string) session.Store
	Tokens  *identity.TokenIssuer
	Users   identity.Client
	Catalog catalog.Client
	Orders  order.Client
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
}

// New builds a Server with the storefront routes wired.
func New(deps Deps) *Server {
	router := buildRouter(deps)

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + deps.Config.AppPort,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
