// Package app wires the storefront components together: the backend
// client, local storage, and the catalog, cart, auth, checkout, and admin
// services.
package app

import (
	"context"
	"fmt"

	"github.com/nance-store/storefront/internal/app/services/admin"
	authsvc "github.com/nance-store/storefront/internal/app/services/auth"
	cartsvc "github.com/nance-store/storefront/internal/app/services/cart"
	"github.com/nance-store/storefront/internal/app/services/catalog"
	checkoutsvc "github.com/nance-store/storefront/internal/app/services/checkout"
	"github.com/nance-store/storefront/internal/app/system"
	"github.com/nance-store/storefront/internal/backend"
	"github.com/nance-store/storefront/internal/localstore"
	"github.com/nance-store/storefront/internal/notify"
	"github.com/nance-store/storefront/pkg/logger"
)

// Options holds the injected dependencies. A nil Store defaults to the
// in-memory implementation, a nil Notifier to the log-backed one, and a nil
// Confirmer to one that accepts (callers sitting behind the HTTP facade
// have already confirmed explicitly).
type Options struct {
	Backend   *backend.Client
	Store     localstore.Store
	Notifier  notify.Notifier
	Confirmer admin.Confirmer
}

// Application ties the storefront services together and manages their
// lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Catalog  *catalog.Service
	Cart     *cartsvc.Service
	Auth     *authsvc.Service
	Checkout *checkoutsvc.Service
	Admin    *admin.Service
}

// New builds a fully initialised application. Constructing the stores
// restores persisted cart and session state; no network call happens until
// Start.
func New(opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}
	if opts.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if opts.Store == nil {
		opts.Store = localstore.NewMemory()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewLog(log)
	}
	if opts.Confirmer == nil {
		opts.Confirmer = admin.ConfirmerFunc(func(string) bool { return true })
	}

	catalogService := catalog.New(opts.Backend, opts.Notifier, log)
	cartService := cartsvc.New(opts.Store, opts.Notifier, log)
	authService := authsvc.New(opts.Backend, opts.Store, log)
	checkoutService := checkoutsvc.New(cartService, opts.Notifier, log)
	adminService := admin.New(opts.Backend, authService, opts.Confirmer, opts.Notifier, log)

	manager := system.NewManager()
	if err := manager.Register(system.FuncService{
		ServiceName: "catalog",
		OnStart: func(ctx context.Context) error {
			// The storefront still renders with an empty catalog; the
			// fetch failure already surfaced a notice.
			if err := catalogService.Refresh(ctx); err != nil {
				log.WithError(err).Warn("initial catalog fetch failed")
			}
			return nil
		},
	}); err != nil {
		return nil, err
	}
	for _, name := range []string{"cart", "auth", "checkout", "admin"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	return &Application{
		manager:  manager,
		log:      log,
		Catalog:  catalogService,
		Cart:     cartService,
		Auth:     authService,
		Checkout: checkoutService,
		Admin:    adminService,
	}, nil
}

// Start brings the application up, including the initial catalog fetch.
func (a *Application) Start(ctx context.Context) error {
	if err := a.manager.Start(ctx); err != nil {
		return err
	}
	a.log.Info("application started")
	return nil
}

// Stop shuts the application down in reverse start order.
func (a *Application) Stop(ctx context.Context) error {
	if err := a.manager.Stop(ctx); err != nil {
		return err
	}
	a.log.Info("application stopped")
	return nil
}
