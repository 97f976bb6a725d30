package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tienda-storefront/internal/alert"
	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/cart"
	"tienda-storefront/internal/identity"
	"tienda-storefront/internal/middleware"
)

// VisitorCookie identifies a browser across requests, independent of
// login state. The cart is keyed by it so anonymous shoppers keep theirs.
const VisitorCookie = "storefront_visitor"

const visitorCookieMaxAge = 60 * 60 * 24 * 30

// scope is the per-request slice of the storefront: the visitor's session
// store, a fresh auth state rebuilt from the signed session cookie, and a
// recorder that collects the alerts the response will carry.
type scope struct {
	visitorID string
	alerts    *alert.Recorder
	state     *auth.State
	sessions  *identity.Sessions
	cart      *cart.Service
}

type handlers struct {
	deps Deps
}

func (h *handlers) scope(c *gin.Context) *scope {
	// A signed session claim pins the visitor id chosen at login, so the
	// cart follows the session even if the visitor cookie is lost.
	visitorID := middleware.SessionIDFrom(c.Request.Context())
	if visitorID == "" {
		var err error
		visitorID, err = c.Cookie(VisitorCookie)
		if err != nil || visitorID == "" {
			visitorID = uuid.NewString()
			c.SetCookie(VisitorCookie, visitorID, visitorCookieMaxAge, "/", "", false, true)
		}
	}

	store := h.deps.Stores(visitorID)
	rec := alert.NewRecorder()
	state := auth.NewState()
	if roleID, ok := middleware.RoleIDFrom(c.Request.Context()); ok {
		state.Login(roleID)
	}

	svc := cart.NewService(store, h.deps.Orders, state, rec)
	svc.LoadCart(c.Request.Context())

	return &scope{
		visitorID: visitorID,
		alerts:    rec,
		state:     state,
		sessions:  identity.NewSessions(h.deps.Users, store, state, rec),
		cart:      svc,
	}
}

// respond flushes the scope's alerts alongside the payload.
func (sc *scope) respond(c *gin.Context, status int, data any) {
	body := gin.H{"alerts": sc.alerts.Drain()}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
