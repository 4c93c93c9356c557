package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nance-store/storefront/internal/backend"
	"github.com/nance-store/storefront/internal/notify"
	"github.com/nance-store/storefront/pkg/logger"
)

func TestRefreshCachesProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "VE001", "name": "Vestido", "price": 49990, "stock": 50},
			{"id": "CB001", "name": "Camisa", "price": 34990, "stock": 80},
		})
	}))
	defer srv.Close()

	svc := New(backend.NewClient(backend.Config{BaseURL: srv.URL}), notify.Nop{}, logger.Nop())
	if svc.Fetched() {
		t.Fatal("fetched before any refresh")
	}

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !svc.Fetched() {
		t.Fatal("fetched flag not set")
	}
	if got := len(svc.Products()); got != 2 {
		t.Fatalf("expected 2 products, got %d", got)
	}

	p, ok := svc.Lookup("CB001")
	if !ok || p.Name != "Camisa" {
		t.Fatalf("lookup failed: %+v ok=%v", p, ok)
	}
	if _, ok := svc.Lookup("missing"); ok {
		t.Fatal("lookup of unknown id succeeded")
	}
}

func TestFailedRefreshKeepsPreviousList(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "PA001", "name": "Pantalones", "price": 42990, "stock": 60},
		})
	}))
	defer srv.Close()

	rec := &notify.Recorder{}
	svc := New(backend.NewClient(backend.Config{BaseURL: srv.URL}), rec, logger.Nop())
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	fail.Store(true)
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := len(svc.Products()); got != 1 {
		t.Fatalf("previous list lost: %d products", got)
	}
	if notices := rec.Notices(); len(notices) == 0 {
		t.Fatal("expected an error notice")
	}
}

func TestProductsReturnsSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "AC001", "name": "Bolso", "price": 39990, "stock": 40},
		})
	}))
	defer srv.Close()

	svc := New(backend.NewClient(backend.Config{BaseURL: srv.URL}), notify.Nop{}, logger.Nop())
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snapshot := svc.Products()
	snapshot[0].Name = "mutated"
	if p, _ := svc.Lookup("AC001"); p.Name != "Bolso" {
		t.Fatalf("internal list mutated through snapshot: %q", p.Name)
	}
}
