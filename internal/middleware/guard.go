package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/identity"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	userEmailKey contextKey = "email"
	roleIDKey    contextKey = "role_id"
	sessionIDKey contextKey = "session_id"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "storefront_session"

// Session parses the session cookie when present and loads the claims
// into the request context. It never rejects: screens decide themselves
// via RequireSession / RequireRole.
func Session(tokens *identity.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userEmailKey, claims.Email)
		ctx = context.WithValue(ctx, roleIDKey, claims.RoleID)
		ctx = context.WithValue(ctx, sessionIDKey, claims.Session)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireSession is the router guard: screens needing a session redirect
// to the login route when the request carries none. Advisory only; the
// upstream services enforce the real authorization.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserIDFrom(c.Request.Context()); !ok {
			c.Redirect(http.StatusFound, auth.RouteLogin)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole additionally restricts a screen to one role.
func RequireRole(roleID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := RoleIDFrom(c.Request.Context())
		if !ok {
			c.Redirect(http.StatusFound, auth.RouteLogin)
			c.Abort()
			return
		}
		if got != roleID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func UserIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func UserEmailFrom(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}

func RoleIDFrom(ctx context.Context) (int, bool) {
	role, ok := ctx.Value(roleIDKey).(int)
	return role, ok
}

// SessionIDFrom returns the per-visitor session id used to scope the
// session store keys.
func SessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}
