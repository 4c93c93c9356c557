package stubapi

import "github.com/nance-store/storefront/internal/app/domain/product"

// seedProducts returns the demo catalog the stub server starts with.
func seedProducts() []product.Product {
	return []product.Product{
		{
			ID:          "VE001",
			Name:        "Vestido softcore",
			Description: "Un vestido midi elegante y fresco, confeccionado en lino de alta calidad.",
			Price:       49990,
			Stock:       50,
			ImageURL:    "https://i.pinimg.com/1200x/14/cb/01/14cb0193f164b4d556fc480fe8de017b.jpg",
			Category:    "vestidos",
		},
		{
			ID:          "CB001",
			Name:        "Camisa de Algodón Orgánico",
			Description: "La camisa blanca clásica, reinventada con algodón 100% orgánico.",
			Price:       34990,
			Stock:       80,
			ImageURL:    "https://i.pinimg.com/1200x/a0/53/7c/a0537c82c0ce679a0624a6aabbe1c94e.jpg",
			Category:    "camisas",
		},
		{
			ID:          "PA001",
			Name:        "Pantalones rosados",
			Description: "Diseñados para alargar la silueta y ofrecer un movimiento fluido.",
			Price:       42990,
			Stock:       60,
			ImageURL:    "https://i.pinimg.com/736x/29/b9/7c/29b97c2e198ae7706261229494b2c5bc.jpg",
			Category:    "pantalones",
		},
		{
			ID:          "AC001",
			Name:        "Bolso de Cuero Vegano",
			Description: "Un bolso versátil y chic, fabricado con cuero vegano de alta calidad.",
			Price:       39990,
			Stock:       40,
			ImageURL:    "https://i.pinimg.com/1200x/2f/d4/70/2fd470b6a3836646cb243964a31d0d2b.jpg",
			Category:    "accesorios",
		},
	}
}
