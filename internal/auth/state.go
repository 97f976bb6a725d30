package auth

import (
	"sync"

	"go.uber.org/zap"

	"tienda-storefront/internal/logger"
)

// State holds the transient authenticated-session flag plus the numeric
// role id. It deliberately lives in memory only while the identity snapshot
// persists in the session store: the legacy storefront had the same
// split, so a reload kept the identity but reset this state. Preserved as
// documented behavior, not fixed here.
type State struct {
	mu              sync.RWMutex
	isAuthenticated bool
	roleID          int
	subscribers     []func(loggedIn bool, roleID int)
}

func NewState() *State {
	return &State{}
}

// Login marks the session authenticated with the given role id and fires
// change callbacks.
func (s *State) Login(roleID int) {
	s.mu.Lock()
	s.isAuthenticated = true
	s.roleID = roleID
	subs := append([]func(bool, int){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(true, roleID)
	}
}

// Logout resets the session flag and role id and fires change callbacks.
func (s *State) Logout() {
	s.mu.Lock()
	s.isAuthenticated = false
	s.roleID = 0
	subs := append([]func(bool, int){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(false, 0)
	}
}

func (s *State) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAuthenticated
}

// Role returns the current role id, 0 when not set.
func (s *State) Role() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roleID
}

// Subscribe registers a change callback invoked on every Login and Logout.
func (s *State) Subscribe(fn func(loggedIn bool, roleID int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Validate reports whether the session is usable: authenticated and with a
// role assigned. Both failing cases log a diagnostic.
func (s *State) Validate() bool {
	s.mu.RLock()
	loggedIn := s.isAuthenticated
	roleID := s.roleID
	s.mu.RUnlock()

	if !loggedIn {
		logger.L().Warn("session not authenticated")
		return false
	}
	if roleID == 0 {
		logger.L().Warn("authenticated session has no role assigned")
		return false
	}

	logger.L().Debug("session validated", zap.Int("role_id", roleID))
	return true
}
