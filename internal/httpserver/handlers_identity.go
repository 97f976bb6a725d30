package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/alert"
	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/identity"
	"tienda-storefront/internal/logger"
	"tienda-storefront/internal/middleware"

	"go.uber.org/zap"
)

type credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	sc := h.scope(c)
	user, route, err := sc.sessions.Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, identity.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		sc.respond(c, status, nil)
		return
	}

	// The session cookie reuses the visitor id so the cart keyed by it
	// stays attached after sign-in.
	token, err := h.deps.Tokens.Issue(user, sc.visitorID)
	if err != nil {
		logger.FromCtx(c.Request.Context()).Error("issuing session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not establish session"})
		return
	}
	c.SetCookie(middleware.SessionCookie, token, visitorCookieMaxAge, "/", "", false, true)

	sc.respond(c, http.StatusOK, gin.H{"user": user, "route": route})
}

func (h *handlers) logout(c *gin.Context) {
	sc := h.scope(c)
	sc.sessions.Logout(c.Request.Context())
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	sc.respond(c, http.StatusOK, gin.H{"route": auth.RouteLogin})
}

func (h *handlers) register(c *gin.Context) {
	var u identity.User
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, "invalid registration payload")
		return
	}

	sc := h.scope(c)
	created, err := sc.sessions.Register(c.Request.Context(), u, auth.RoleCustomer)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, identity.ErrUserExists) {
			status = http.StatusConflict
		}
		sc.respond(c, status, nil)
		return
	}

	created.Password = ""
	sc.respond(c, http.StatusCreated, gin.H{"user": created})
}

func (h *handlers) profile(c *gin.Context) {
	sc := h.scope(c)
	ctx := c.Request.Context()

	user, ok := sc.sessions.LoggedInUser(ctx)
	if !ok {
		// Snapshot lost (expired session store); rebuild it from upstream.
		email := middleware.UserEmailFrom(ctx)
		fetched, err := h.deps.Users.Find(ctx, email)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "profile unavailable"})
			return
		}
		user = fetched
	}

	user.Password = ""
	sc.respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *handlers) updateProfile(c *gin.Context) {
	var u identity.User
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, "invalid profile payload")
		return
	}

	sc := h.scope(c)
	ctx := c.Request.Context()
	id, _ := middleware.UserIDFrom(ctx)
	roleID, _ := middleware.RoleIDFrom(ctx)

	updated, err := sc.sessions.UpdateProfile(ctx, id, u, roleID)
	if err != nil {
		sc.respond(c, http.StatusBadGateway, nil)
		return
	}

	updated.Password = ""
	sc.respond(c, http.StatusOK, gin.H{"user": updated})
}

// userExists backs the registration form's prefill check.
func (h *handlers) userExists(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		badRequest(c, "email is required")
		return
	}

	exists, err := h.deps.Users.Exists(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "exists check unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"exists": exists}})
}

type recoverRequest struct {
	Email string `json:"email" binding:"required"`
}

// recoverPassword looks the account up and, when found, confirms that a
// recovery link was sent and points the shopper back to the login screen.
// An unknown email yields no confirmation.
func (h *handlers) recoverPassword(c *gin.Context) {
	var req recoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email is required")
		return
	}

	sc := h.scope(c)
	if _, err := h.deps.Users.Find(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	sc.alerts.Notify(alert.KindSuccess, "A password recovery link has been sent to your email.")
	sc.respond(c, http.StatusOK, gin.H{"route": auth.RouteLogin})
}

// adminUserRequest carries the account fields plus the role the
// administrator assigns; public registration always creates customers.
type adminUserRequest struct {
	identity.User
	RoleID int `json:"roleId"`
}

func validRoleID(id int) bool {
	return id == auth.RoleAdmin || id == auth.RoleStaff || id == auth.RoleCustomer
}

func (h *handlers) createUser(c *gin.Context) {
	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid user payload")
		return
	}
	if !validRoleID(req.RoleID) {
		badRequest(c, "invalid role id")
		return
	}

	req.User.Roles = identity.NewRoles(req.RoleID)
	created, err := h.deps.Users.Register(c.Request.Context(), req.User)
	if err != nil {
		if errors.Is(err, identity.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create user"})
		return
	}

	created.Password = ""
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func (h *handlers) updateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid user id")
		return
	}

	var req adminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid user payload")
		return
	}
	if !validRoleID(req.RoleID) {
		badRequest(c, "invalid role id")
		return
	}

	req.User.Roles = identity.NewRoles(req.RoleID)
	updated, err := h.deps.Users.Update(c.Request.Context(), id, req.User)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update user"})
		return
	}

	updated.Password = ""
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (h *handlers) listUsers(c *gin.Context) {
	users, err := h.deps.Users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to list users"})
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (h *handlers) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid user id")
		return
	}

	user, err := h.deps.Users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get user"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (h *handlers) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid user id")
		return
	}

	if err := h.deps.Users.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete user"})
		return
	}
	c.Status(http.StatusNoContent)
}
