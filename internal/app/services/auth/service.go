// Package auth implements the auth store: session identity, login and
// registration against the backend, and the derived admin flag.
package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nance-store/storefront/internal/app/domain/user"
	"github.com/nance-store/storefront/internal/backend"
	"github.com/nance-store/storefront/internal/localstore"
	"github.com/nance-store/storefront/pkg/logger"
)

// Service owns the current session. It is the only writer of the token and
// profile slots.
type Service struct {
	client *backend.Client
	store  localstore.Store
	log    *logger.Logger

	mu   sync.RWMutex
	user *user.User
}

// New constructs the auth store and restores a persisted session, if any.
// Restore is fail-soft: a missing, malformed, or expired session yields the
// logged-out state.
func New(client *backend.Client, store localstore.Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	if store == nil {
		store = localstore.NewMemory()
	}

	s := &Service{client: client, store: store, log: log}
	s.restore()
	return s
}

func (s *Service) restore() {
	token, ok := s.store.Get(localstore.KeyToken)
	if !ok || token == "" {
		return
	}
	raw, ok := s.store.Get(localstore.KeyUser)
	if !ok {
		return
	}

	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.WithError(err).Warn("persisted profile is malformed, discarding session")
		s.clearSlots()
		return
	}
	if expired(token) {
		s.log.Info("persisted session token expired, discarding session")
		s.clearSlots()
		return
	}

	s.user = &u
	s.client.SetToken(token)
	s.log.WithField("email", u.Email).Info("session restored")
}

// expired inspects the token's registered claims without verifying the
// signature; the client holds no key. Tokens that do not parse as JWTs are
// treated as opaque and kept.
func expired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Login exchanges credentials for a session. On success the token and
// profile are persisted and the current user is updated. On failure the
// prior session, if any, is left untouched; the caller owns user-facing
// messaging.
func (s *Service) Login(ctx context.Context, email, password string) error {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.log.WithError(err).Warn("login failed")
		return err
	}

	u := resp.User()
	profile, err := json.Marshal(u)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(localstore.KeyToken, resp.Token); err != nil {
		s.log.WithError(err).Warn("persist session token")
	}
	if err := s.store.Set(localstore.KeyUser, string(profile)); err != nil {
		s.log.WithError(err).Warn("persist profile")
	}
	s.user = &u
	s.client.SetToken(resp.Token)
	s.log.WithField("email", u.Email).Info("logged in")
	return nil
}

// Register creates a new account with the default CLIENT role. It does not
// establish a session.
func (s *Service) Register(ctx context.Context, email, password, name string) error {
	if err := s.client.Register(ctx, email, password, name); err != nil {
		s.log.WithError(err).Warn("registration failed")
		return err
	}
	s.log.WithField("email", email).Info("account registered")
	return nil
}

// Logout clears the current user and all persisted session data.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.clearSlots()
	s.client.ClearToken()
	s.log.Info("logged out")
}

func (s *Service) clearSlots() {
	s.store.Delete(localstore.KeyToken)
	s.store.Delete(localstore.KeyUser)
}

// CurrentUser returns the logged-in user, if any.
func (s *Service) CurrentUser() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return user.User{}, false
	}
	return *s.user, true
}

// IsAdmin reports whether the current user carries the administrator role,
// compared case-insensitively.
func (s *Service) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin()
}
