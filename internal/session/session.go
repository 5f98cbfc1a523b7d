// Package session owns the client-held authenticated identity, token, role
// and expiry, persisted through the store and torn down on expiry or 401.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

// TTL is the fixed session lifetime started at login.
const TTL = time.Hour

// Manager is the single owner of session state and the expiry timer.
// The gateway's 401 hook and the timer both funnel into Logout, so there is
// exactly one teardown path.
type Manager struct {
	mu     sync.Mutex
	store  *store.Store
	log    *slog.Logger
	now    func() time.Time
	user   *model.User
	token  string
	role   string
	expiry time.Time
	timer  *time.Timer

	// onLogout navigates to the public landing destination. May be nil.
	onLogout func()
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogoutHandler sets the navigation callback invoked after teardown.
func WithLogoutHandler(fn func()) Option {
	return func(m *Manager) { m.onLogout = fn }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New creates a Manager backed by the given store.
func New(st *store.Store, opts ...Option) *Manager {
	m := &Manager{
		store: st,
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login persists identity, token and role plus the absolute expiry timestamp
// and schedules the deferred logout. The expiry is login time plus TTL,
// clamped to the token's own exp claim when the token is a parseable JWT.
func (m *Manager) Login(user model.User, token, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry := m.now().Add(TTL)
	if exp, ok := tokenExpiry(token); ok && exp.Before(expiry) {
		expiry = exp
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.SaveSession(store.SessionRecord{
		UserJSON: userJSON,
		Token:    token,
		Role:     role,
		Expiry:   expiry.UnixMilli(),
	}); err != nil {
		return err
	}

	m.user = &user
	m.token = token
	m.role = role
	m.expiry = expiry
	m.scheduleLogoutLocked()
	m.log.Info("session started", "user", user.ID, "role", role, "expiry", expiry)
	return nil
}

// Logout clears in-memory and durable state, stops the expiry timer and
// invokes the navigation callback.
func (m *Manager) Logout() {
	m.mu.Lock()
	wasAuthenticated := m.token != ""
	m.user = nil
	m.token = ""
	m.role = ""
	m.expiry = time.Time{}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if err := m.store.ClearSession(); err != nil {
		m.log.Error("failed to clear stored session", "err", err)
	}
	if err := m.store.ClearBoard(); err != nil {
		m.log.Error("failed to clear board cache", "err", err)
	}
	onLogout := m.onLogout
	m.mu.Unlock()

	if wasAuthenticated {
		m.log.Info("session ended")
	}
	if onLogout != nil {
		onLogout()
	}
}

// Rehydrate restores the session from durable storage. A stored session whose
// expiry has already passed is logged out instead, so no stale session
// survives a restart. Returns whether a live session was restored.
func (m *Manager) Rehydrate() (bool, error) {
	m.mu.Lock()
	rec, err := m.store.LoadSession()
	if err != nil {
		m.mu.Unlock()
		return false, err
	}
	if rec == nil {
		m.mu.Unlock()
		return false, nil
	}

	expiry := time.UnixMilli(rec.Expiry)
	if !expiry.After(m.now()) {
		m.mu.Unlock()
		m.Logout()
		return false, nil
	}

	var user model.User
	if err := json.Unmarshal(rec.UserJSON, &user); err != nil {
		m.mu.Unlock()
		return false, fmt.Errorf("decode stored user: %w", err)
	}

	m.user = &user
	m.token = rec.Token
	m.role = rec.Role
	m.expiry = expiry
	m.scheduleLogoutLocked()
	m.mu.Unlock()
	return true, nil
}

// UpdateUserData replaces the cached identity without touching token or
// expiry, e.g. after a profile edit.
func (m *Manager) UpdateUserData(user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return fmt.Errorf("no active session")
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.SaveSession(store.SessionRecord{
		UserJSON: userJSON,
		Token:    m.token,
		Role:     m.role,
		Expiry:   m.expiry.UnixMilli(),
	}); err != nil {
		return err
	}
	m.user = &user
	return nil
}

// HandleUnauthorized is the gateway's 401 hook: a blunt global teardown
// independent of which request observed the 401.
func (m *Manager) HandleUnauthorized() {
	m.Logout()
}

// Token returns the current bearer token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns a copy of the authenticated identity.
func (m *Manager) User() (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return model.User{}, false
	}
	return *m.user, true
}

// Role returns the session's role name.
func (m *Manager) Role() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.role
}

// Authenticated reports whether a live session is held.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// ExpiresAt returns the absolute session expiry.
func (m *Manager) ExpiresAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expiry
}

// Close stops the expiry timer without tearing the session down.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// scheduleLogoutLocked arms the single expiry timer, replacing any previous
// one. Caller holds m.mu.
func (m *Manager) scheduleLogoutLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.expiry.Sub(m.now()), m.Logout)
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature; the client has no key material and only needs the timestamp.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
