// Package httpapi exposes the storefront application over a local REST
// facade. The browser UI consumes this surface; it carries no page
// composition of its own.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	app "github.com/nance-store/storefront/internal/app"
	"github.com/nance-store/storefront/internal/app/domain/product"
	"github.com/nance-store/storefront/internal/app/metrics"
	"github.com/nance-store/storefront/internal/app/services/admin"
	cartsvc "github.com/nance-store/storefront/internal/app/services/cart"
	checkoutsvc "github.com/nance-store/storefront/internal/app/services/checkout"
	"github.com/nance-store/storefront/internal/backend"
)

// handler bundles the HTTP endpoints for the storefront services.
type handler struct {
	app *app.Application
}

// NewHandler returns a router exposing the storefront REST facade.
func NewHandler(application *app.Application) http.Handler {
	h := &handler{app: application}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/catalog", h.catalog).Methods(http.MethodGet)
	r.HandleFunc("/catalog/refresh", h.catalogRefresh).Methods(http.MethodPost)

	r.HandleFunc("/cart", h.cart).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.cartClear).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", h.cartAdd).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", h.cartUpdate).Methods(http.MethodPatch)
	r.HandleFunc("/cart/items/{id}", h.cartRemove).Methods(http.MethodDelete)

	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", h.me).Methods(http.MethodGet)

	r.HandleFunc("/checkout", h.checkout).Methods(http.MethodPost)

	r.HandleFunc("/admin/products", h.adminList).Methods(http.MethodGet)
	r.HandleFunc("/admin/products", h.adminCreate).Methods(http.MethodPost)
	r.HandleFunc("/admin/products/{id}", h.adminUpdate).Methods(http.MethodPut)
	r.HandleFunc("/admin/products/{id}", h.adminDelete).Methods(http.MethodDelete)

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Catalog ---------------------------------------------------------------------

func (h *handler) catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Catalog.Products())
}

func (h *handler) catalogRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Catalog.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Catalog.Products())
}

// Cart ------------------------------------------------------------------------

type cartView struct {
	Items      interface{} `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
}

func (h *handler) cartSnapshot() cartView {
	return cartView{
		Items:      h.app.Cart.Items(),
		TotalItems: h.app.Cart.TotalItems(),
		TotalPrice: h.app.Cart.TotalPrice(),
	}
}

func (h *handler) cart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *handler) cartAdd(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductID string `json:"product_id"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, ok := h.app.Catalog.Lookup(payload.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("product %s not in catalog", payload.ProductID))
		return
	}
	if err := h.app.Cart.AddItem(p); err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *handler) cartUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload struct {
		Op       string `json:"op"`
		Quantity *int   `json:"quantity"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var err error
	switch {
	case payload.Op == "increment":
		err = h.app.Cart.IncrementQuantity(id)
	case payload.Op == "decrement":
		err = h.app.Cart.DecrementQuantity(id)
	case payload.Op == "" && payload.Quantity != nil:
		err = h.app.Cart.UpdateQuantity(id, *payload.Quantity)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("op must be increment or decrement, or quantity must be set"))
		return
	}
	if err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *handler) cartRemove(w http.ResponseWriter, r *http.Request) {
	h.app.Cart.RemoveItem(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *handler) cartClear(w http.ResponseWriter, _ *http.Request) {
	h.app.Cart.Clear()
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

// Auth ------------------------------------------------------------------------

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.app.Auth.Login(r.Context(), payload.Email, payload.Password); err != nil {
		writeError(w, upstreamStatus(err, http.StatusUnauthorized), err)
		return
	}
	u, _ := h.app.Auth.CurrentUser()
	writeJSON(w, http.StatusOK, u)
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.app.Auth.Register(r.Context(), payload.Email, payload.Password, payload.Name); err != nil {
		writeError(w, upstreamStatus(err, http.StatusBadRequest), err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *handler) logout(w http.ResponseWriter, _ *http.Request) {
	h.app.Auth.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) me(w http.ResponseWriter, _ *http.Request) {
	u, ok := h.app.Auth.CurrentUser()
	if !ok {
		writeError(w, http.StatusUnauthorized, fmt.Errorf("not logged in"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"email":    u.Email,
		"name":     u.Name,
		"role":     u.Role,
		"is_admin": u.IsAdmin(),
	})
}

// Checkout --------------------------------------------------------------------

func (h *handler) checkout(w http.ResponseWriter, r *http.Request) {
	var form checkoutsvc.Form
	if err := decodeJSON(r.Body, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	conf, err := h.app.Checkout.Submit(r.Context(), form)
	if err != nil {
		if errors.Is(err, checkoutsvc.ErrEmptyCart) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, conf)
}

// Admin -----------------------------------------------------------------------

func (h *handler) adminList(w http.ResponseWriter, r *http.Request) {
	products, err := h.app.Admin.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handler) adminCreate(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := decodeJSON(r.Body, &p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	products, err := h.app.Admin.Create(r.Context(), p)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, products)
}

func (h *handler) adminUpdate(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := decodeJSON(r.Body, &p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p.ID = mux.Vars(r)["id"]
	products, err := h.app.Admin.Update(r.Context(), p)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handler) adminDelete(w http.ResponseWriter, r *http.Request) {
	// The UI's confirmation dialog travels as an explicit query parameter;
	// without it the destructive call never reaches the backend.
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusPreconditionRequired, fmt.Errorf("confirmation required: pass confirm=true"))
		return
	}
	products, err := h.app.Admin.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Helpers ---------------------------------------------------------------------

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cartsvc.ErrNoStock):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, cartsvc.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, cartsvc.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, admin.ErrForbidden):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, admin.ErrDeclined):
		writeError(w, http.StatusPreconditionRequired, err)
	default:
		writeError(w, upstreamStatus(err, http.StatusBadGateway), err)
	}
}

// upstreamStatus maps a backend status error onto the facade response,
// falling back to the given default for transport failures.
func upstreamStatus(err error, fallback int) int {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return fallback
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
