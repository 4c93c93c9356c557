package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nance-store/storefront/internal/backend"
	"github.com/nance-store/storefront/internal/localstore"
	"github.com/nance-store/storefront/internal/stubapi"
	"github.com/nance-store/storefront/pkg/logger"
)

func newEnv(t *testing.T) (*backend.Client, *localstore.Memory) {
	t.Helper()
	api := httptest.NewServer(stubapi.New(logger.Nop()).Handler())
	t.Cleanup(api.Close)

	client := backend.NewClient(backend.Config{BaseURL: api.URL})
	return client, localstore.NewMemory()
}

func TestLoginPersistsSession(t *testing.T) {
	client, store := newEnv(t)
	svc := New(client, store, logger.Nop())

	if err := svc.Login(context.Background(), "admin@nance.cl", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	u, ok := svc.CurrentUser()
	if !ok || u.Email != "admin@nance.cl" {
		t.Fatalf("expected current user, got %+v ok=%v", u, ok)
	}
	if !svc.IsAdmin() {
		t.Fatalf("seeded admin should have the admin flag")
	}
	if _, ok := store.Get(localstore.KeyToken); !ok {
		t.Fatalf("token slot not persisted")
	}
	if _, ok := store.Get(localstore.KeyUser); !ok {
		t.Fatalf("profile slot not persisted")
	}
}

func TestLoginFailureKeepsPriorSession(t *testing.T) {
	client, store := newEnv(t)
	svc := New(client, store, logger.Nop())

	if err := svc.Login(context.Background(), "admin@nance.cl", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Login(context.Background(), "admin@nance.cl", "wrong"); err == nil {
		t.Fatalf("expected login failure")
	}

	u, ok := svc.CurrentUser()
	if !ok || u.Email != "admin@nance.cl" {
		t.Fatalf("prior session was disturbed: %+v ok=%v", u, ok)
	}
}

func TestRegisterDoesNotEstablishSession(t *testing.T) {
	client, store := newEnv(t)
	svc := New(client, store, logger.Nop())

	if err := svc.Register(context.Background(), "nueva@nance.cl", "secreto", "Nueva"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("register must not log the user in")
	}

	// The new account logs in with the fixed CLIENT role.
	if err := svc.Login(context.Background(), "nueva@nance.cl", "secreto"); err != nil {
		t.Fatalf("login after register: %v", err)
	}
	if svc.IsAdmin() {
		t.Fatalf("self-registered account must not be admin")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	client, store := newEnv(t)
	svc := New(client, store, logger.Nop())

	if err := svc.Login(context.Background(), "cliente@nance.cl", "cliente123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	svc.Logout()

	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("still logged in after logout")
	}
	if _, ok := store.Get(localstore.KeyToken); ok {
		t.Fatalf("token slot survived logout")
	}
	if _, ok := store.Get(localstore.KeyUser); ok {
		t.Fatalf("profile slot survived logout")
	}
}

func TestRestoreSession(t *testing.T) {
	client, store := newEnv(t)
	svc := New(client, store, logger.Nop())
	if err := svc.Login(context.Background(), "admin@nance.cl", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// A fresh store over the same slots picks the session back up.
	restored := New(client, store, logger.Nop())
	u, ok := restored.CurrentUser()
	if !ok || u.Email != "admin@nance.cl" {
		t.Fatalf("session not restored: %+v ok=%v", u, ok)
	}
	if !restored.IsAdmin() {
		t.Fatalf("restored session lost the admin role")
	}
}

func TestRestoreMalformedProfile(t *testing.T) {
	client, store := newEnv(t)
	if err := store.Set(localstore.KeyToken, "opaque-token"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	if err := store.Set(localstore.KeyUser, "{broken"); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	svc := New(client, store, logger.Nop())
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("malformed profile must degrade to logged out")
	}
	if _, ok := store.Get(localstore.KeyToken); ok {
		t.Fatalf("stale token slot should be cleared")
	}
}

func TestRestoreExpiredToken(t *testing.T) {
	client, store := newEnv(t)

	claims := jwt.MapClaims{
		"sub": "admin@nance.cl",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if err := store.Set(localstore.KeyToken, token); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	if err := store.Set(localstore.KeyUser, `{"email":"admin@nance.cl","name":"Admin","role":"ADMIN"}`); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	svc := New(client, store, logger.Nop())
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("expired token must degrade to logged out")
	}
}
