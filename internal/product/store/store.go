// Package store provides an interface for product storage operations.
package store

import "context"

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations.
type ProductStore interface {
	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID
	// and ErrNotInitialized if the store has never been written.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll returns all products in insertion order.
	// Returns an empty slice if the store exists but holds no products.
	FindAll(ctx context.Context) ([]Product, error)

	// Create validates and appends a new product, assigning its ID.
	// Returns ErrValidation or ErrDuplicateCode if the product is rejected.
	Create(ctx context.Context, product Product) (*Product, error)

	// Update merges the non-nil fields of patch over the stored product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, patch ProductPatch) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteAll removes every product, leaving an empty store behind.
	DeleteAll(ctx context.Context) error
}

// Product represents a product entity in the store.
// Field order matches the order of keys in the store file.
type Product struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required"`
	Thumbnail   string  `json:"thumbnail" validate:"required"`
	Code        string  `json:"code" validate:"required"`
	Stock       int64   `json:"stock" validate:"required"`
	ID          int64   `json:"id"`
}

// ProductPatch is a partial product used by Update. Nil fields are left untouched.
type ProductPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Code        *string  `json:"code,omitempty"`
	Stock       *int64   `json:"stock,omitempty"`
}

// apply performs a shallow merge of the patch onto product. No validation is done.
func (p ProductPatch) apply(product *Product) {
	if p.Title != nil {
		product.Title = *p.Title
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Thumbnail != nil {
		product.Thumbnail = *p.Thumbnail
	}
	if p.Code != nil {
		product.Code = *p.Code
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
}
