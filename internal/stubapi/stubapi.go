// Package stubapi is an in-memory implementation of the remote storefront
// API, used for local development and tests. It mirrors the real surface:
// POST /auth/login, POST /auth/register, GET/POST /products,
// PUT/DELETE /products/{id}.
package stubapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nance-store/storefront/internal/app/domain/product"
	"github.com/nance-store/storefront/internal/app/domain/user"
	"github.com/nance-store/storefront/pkg/logger"
)

type account struct {
	user.User
	Password string
}

// Server holds the in-memory product and account collections.
type Server struct {
	log    *logger.Logger
	secret []byte

	mu       sync.RWMutex
	order    []string
	products map[string]product.Product
	accounts map[string]account
}

// New creates a stub server seeded with the demo catalog and two accounts:
// admin@nance.cl/admin123 and cliente@nance.cl/cliente123.
func New(log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewDefault("stubapi")
	}

	s := &Server{
		log:      log,
		secret:   []byte(uuid.New().String()),
		products: make(map[string]product.Product),
		accounts: make(map[string]account),
	}
	for _, p := range seedProducts() {
		s.order = append(s.order, p.ID)
		s.products[p.ID] = p
	}
	s.accounts["admin@nance.cl"] = account{
		User:     user.User{Email: "admin@nance.cl", Name: "Nance Admin", Role: user.RoleAdmin},
		Password: "admin123",
	}
	s.accounts["cliente@nance.cl"] = account{
		User:     user.User{Email: "cliente@nance.cl", Name: "Cliente Demo", Role: user.RoleClient},
		Password: "cliente123",
	}
	return s
}

// Handler returns the REST surface.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products", s.createProduct).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", s.updateProduct).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", s.deleteProduct).Methods(http.MethodDelete)
	return r
}

// Auth ------------------------------------------------------------------------

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r.Body, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request")
		return
	}

	s.mu.RLock()
	acct, ok := s.accounts[strings.ToLower(strings.TrimSpace(payload.Email))]
	s.mu.RUnlock()
	if !ok || acct.Password != payload.Password {
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.issueToken(acct.User)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"email": acct.Email,
		"name":  acct.Name,
		"role":  acct.Role,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := decode(r.Body, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" || payload.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		jsonError(w, http.StatusConflict, "email already registered")
		return
	}
	// Self-service registration always yields a CLIENT; admins are seeded.
	s.accounts[email] = account{
		User:     user.User{Email: email, Name: payload.Name, Role: user.RoleClient},
		Password: payload.Password,
	}
	s.log.WithField("email", email).Info("account registered")
	writeJSON(w, http.StatusCreated, map[string]string{"email": email})
}

func (s *Server) issueToken(u user.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.Email,
		"name": u.Name,
		"role": u.Role,
		"jti":  uuid.New().String(),
		"iat":  now.Unix(),
		"exp":  now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Products --------------------------------------------------------------------

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]product.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var wire product.Wire
	if err := decode(r.Body, &wire); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request")
		return
	}

	// The server assigns the identifier.
	wire.ID = json.RawMessage(fmt.Sprintf("%q", uuid.New().String()))
	p, err := wire.Normalize()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.order = append(s.order, p.ID)
	s.products[p.ID] = p
	s.mu.Unlock()

	s.log.WithField("product_id", p.ID).Info("product created")
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var wire product.Wire
	if err := decode(r.Body, &wire); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request")
		return
	}
	wire.ID = json.RawMessage(fmt.Sprintf("%q", id))
	p, err := wire.Normalize()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	s.products[id] = p
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	delete(s.products, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// Helpers ---------------------------------------------------------------------

func decode(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
