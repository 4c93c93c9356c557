package product

import (
	"encoding/json"
	"testing"
)

func TestNormalizeStringID(t *testing.T) {
	w := Wire{
		ID:       json.RawMessage(`"VE001"`),
		Name:     "Vestido",
		Price:    49990,
		Stock:    50,
		ImageURL: "https://example.com/a.jpg",
		Category: "vestidos",
	}
	p, err := w.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if p.ID != "VE001" || p.ImageURL != "https://example.com/a.jpg" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestNormalizeNumericID(t *testing.T) {
	w := Wire{ID: json.RawMessage(`42`), Name: "Camisa", Price: 10, Stock: 1}
	p, err := w.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if p.ID != "42" {
		t.Fatalf("expected id \"42\", got %q", p.ID)
	}
}

func TestNormalizeImageFallback(t *testing.T) {
	w := Wire{
		ID:    json.RawMessage(`"P1"`),
		Name:  "Pantalón",
		Price: 10,
		Stock: 1,
		Image: "https://example.com/alt.jpg",
	}
	p, err := w.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if p.ImageURL != "https://example.com/alt.jpg" {
		t.Fatalf("expected image fallback, got %q", p.ImageURL)
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	cases := map[string]Wire{
		"missing id":     {Name: "x", Price: 1, Stock: 1},
		"empty name":     {ID: json.RawMessage(`"P1"`), Name: "  ", Price: 1, Stock: 1},
		"negative price": {ID: json.RawMessage(`"P1"`), Name: "x", Price: -1, Stock: 1},
		"negative stock": {ID: json.RawMessage(`"P1"`), Name: "x", Price: 1, Stock: -1},
		"bool id":        {ID: json.RawMessage(`true`), Name: "x", Price: 1, Stock: 1},
	}
	for name, w := range cases {
		if _, err := w.Normalize(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestNormalizeAllReportsEntry(t *testing.T) {
	wires := []Wire{
		{ID: json.RawMessage(`"P1"`), Name: "ok", Price: 1, Stock: 1},
		{Name: "missing id", Price: 1, Stock: 1},
	}
	if _, err := NormalizeAll(wires); err == nil {
		t.Fatalf("expected error for invalid entry")
	}

	products, err := NormalizeAll(wires[:1])
	if err != nil {
		t.Fatalf("normalize all: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
}
