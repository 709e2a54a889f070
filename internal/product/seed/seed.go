// Package seed holds the sample catalogue loaded into a new store.
package seed

import (
	"context"
	"fmt"

	"github.com/abgdnv/productmanager/internal/product/manager"
	"github.com/abgdnv/productmanager/internal/product/store"
)

// Products returns the sample products, without IDs.
func Products() []store.Product {
	return []store.Product{
		{
			Title:       "Producto 1",
			Description: "Descripción del producto 1",
			Price:       10.99,
			Thumbnail:   "path/imagen1.jpg",
			Code:        "prod123",
			Stock:       5,
		},
		{
			Title:       "Producto 2",
			Description: "Descripción del producto 2",
			Price:       234.30,
			Thumbnail:   "path/imagen2.jpg",
			Code:        "prod456",
			Stock:       3,
		},
		{
			Title:       "Producto 3",
			Description: "Descripción del producto 3",
			Price:       23.23,
			Thumbnail:   "path/imagen2.jpg",
			Code:        "prod789",
			Stock:       8,
		},
		{
			Title:       "Producto 4",
			Description: "Descripción del producto 4",
			Price:       3.34,
			Thumbnail:   "path/imagen4.jpg",
			Code:        "prod101113",
			Stock:       15,
		},
	}
}

// Apply adds the sample products through m when the store file does not exist yet.
// It reports whether the products were added.
func Apply(ctx context.Context, s *store.FileStore, m *manager.ProductManager) (bool, error) {
	exists, err := s.Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check product store: %w", err)
	}
	if exists {
		return false, nil
	}
	for _, p := range Products() {
		m.AddProduct(ctx, p)
	}
	return true, nil
}
