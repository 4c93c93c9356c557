package product

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Well-known catalog categories. The backend also accepts free-form
// category strings, so these are not an exhaustive enum.
const (
	CategoryDresses     = "vestidos"
	CategoryShirts      = "camisas"
	CategoryPants       = "pantalones"
	CategoryAccessories = "accesorios"
)

// Product is the normalized catalog item. Instances are immutable from the
// cart's perspective; the catalog and backend own them.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
}

// Wire mirrors the loosely typed product shape the backend emits: the id may
// be a JSON string or number, and the image reference may arrive under
// either "image_url" or "image". Normalization happens exactly once at the
// backend boundary.
type Wire struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// Normalize validates the wire shape and converts it to a Product.
func (w Wire) Normalize() (Product, error) {
	id, err := normalizeID(w.ID)
	if err != nil {
		return Product{}, err
	}

	name := strings.TrimSpace(w.Name)
	if name == "" {
		return Product{}, fmt.Errorf("product %s: name is required", id)
	}
	if w.Price < 0 {
		return Product{}, fmt.Errorf("product %s: price must be non-negative", id)
	}
	if w.Stock < 0 {
		return Product{}, fmt.Errorf("product %s: stock must be non-negative", id)
	}

	image := w.ImageURL
	if image == "" {
		image = w.Image
	}

	return Product{
		ID:          id,
		Name:        name,
		Description: w.Description,
		Price:       w.Price,
		Stock:       w.Stock,
		ImageURL:    image,
		Category:    strings.TrimSpace(w.Category),
	}, nil
}

// NormalizeAll converts a wire product list, failing on the first invalid
// entry.
func NormalizeAll(wires []Wire) ([]Product, error) {
	products := make([]Product, 0, len(wires))
	for i, w := range wires {
		p, err := w.Normalize()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// normalizeID accepts a JSON string or number and yields the canonical
// string form. Numeric ids keep their decimal representation.
func normalizeID(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", fmt.Errorf("product id is required")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("product id is required")
		}
		return strings.TrimSpace(s), nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
		return n.String(), nil
	}

	return "", fmt.Errorf("product id must be a string or number, got %s", trimmed)
}
