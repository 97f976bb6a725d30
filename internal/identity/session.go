package identity

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"tienda-storefront/internal/alert"
	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/logger"
	"tienda-storefront/internal/session"
)

// Sessions drives the login lifecycle: credential check against the
// usuarios API, identity snapshot persistence in the session store, the
// in-memory auth state, and the post-login role dispatch.
//
// The auth state is transient while the snapshot persists. That mismatch
// is inherited from the legacy storefront and kept on purpose.
type Sessions struct {
	client   Client
	store    session.Store
	state    *auth.State
	notifier alert.Notifier
}

func NewSessions(client Client, store session.Store, state *auth.State, notifier alert.Notifier) *Sessions {
	return &Sessions{client: client, store: store, state: state, notifier: notifier}
}

// Login checks credentials upstream and, on success, persists the identity
// snapshot, flips the auth state, and resolves the role's landing route.
// An unrecognized role id leaves the route empty and surfaces a warning;
// the session itself is still established.
func (s *Sessions) Login(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.notifier.Notify(alert.KindDanger, "Incorrect email or password.")
		} else {
			s.notifier.Notify(alert.KindDanger, "Something went wrong while signing in.")
		}
		return User{}, "", err
	}

	s.persistSnapshot(ctx, u)
	s.state.Login(u.RoleID())
	s.notifier.Notify(alert.KindSuccess, "Signed in successfully.")

	route, err := auth.LandingRoute(u.RoleID())
	if err != nil {
		logger.FromCtx(ctx).Warn("login with unrecognized role",
			zap.Int("role_id", u.RoleID()),
			zap.String("email", u.Email),
		)
		s.notifier.Notify(alert.KindWarning, "Unknown role, contact the administrator.")
		return u, "", nil
	}

	return u, route, nil
}

// Logout drops the persisted snapshot and resets the auth state.
func (s *Sessions) Logout(ctx context.Context) {
	s.store.Remove(ctx, session.LoggedInUserKey)
	s.state.Logout()
	logger.FromCtx(ctx).Info("user logged out")
}

// Register creates the account upstream with the role list derived from
// the numeric role id.
func (s *Sessions) Register(ctx context.Context, u User, roleID int) (User, error) {
	u.Roles = NewRoles(roleID)

	created, err := s.client.Register(ctx, u)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			s.notifier.Notify(alert.KindDanger, "The user already exists.")
		} else {
			s.notifier.Notify(alert.KindDanger, "Something went wrong while registering the user.")
		}
		return User{}, err
	}

	s.notifier.Notify(alert.KindSuccess, "User registered successfully.")
	return created, nil
}

// UpdateProfile updates the account upstream and refreshes the persisted
// snapshot so the session reflects the new data.
func (s *Sessions) UpdateProfile(ctx context.Context, id int64, u User, roleID int) (User, error) {
	u.Roles = NewRoles(roleID)

	updated, err := s.client.Update(ctx, id, u)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.notifier.Notify(alert.KindDanger, "The user does not exist.")
		} else {
			s.notifier.Notify(alert.KindDanger, "Something went wrong while updating the user.")
		}
		return User{}, err
	}

	s.persistSnapshot(ctx, updated)
	s.notifier.Notify(alert.KindSuccess, "User updated successfully.")
	return updated, nil
}

// LoggedInUser returns the persisted identity snapshot, if any.
func (s *Sessions) LoggedInUser(ctx context.Context) (User, bool) {
	raw, ok := s.store.Get(ctx, session.LoggedInUserKey)
	if !ok {
		return User{}, false
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		logger.FromCtx(ctx).Warn("corrupt identity snapshot dropped", zap.Error(err))
		s.store.Remove(ctx, session.LoggedInUserKey)
		return User{}, false
	}
	return u, true
}

// IsLoggedIn reports whether an identity snapshot is persisted.
func (s *Sessions) IsLoggedIn(ctx context.Context) bool {
	_, ok := s.LoggedInUser(ctx)
	return ok
}

// LoggedInEmail returns the snapshot's email, empty when logged out.
func (s *Sessions) LoggedInEmail(ctx context.Context) string {
	u, ok := s.LoggedInUser(ctx)
	if !ok {
		return ""
	}
	return u.Email
}

func (s *Sessions) persistSnapshot(ctx context.Context, u User) {
	raw, err := json.Marshal(u)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to marshal identity snapshot", zap.Error(err))
		return
	}
	s.store.Set(ctx, session.LoggedInUserKey, string(raw))
}
