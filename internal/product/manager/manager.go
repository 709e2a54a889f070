// Package manager reports the outcome of product store operations through a logger.
//
// Expected conditions (missing fields, duplicate codes, unknown IDs and a store that was
// never created) are logged and never returned. Storage failures are logged by AddProduct
// and returned by every other method.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	perrors "github.com/abgdnv/productmanager/internal/product/errors"
	"github.com/abgdnv/productmanager/internal/product/store"
)

// ProductManager wraps a ProductStore with log-based error reporting.
type ProductManager struct {
	store  store.ProductStore
	logger *slog.Logger
}

// New creates a ProductManager over the given store.
func New(s store.ProductStore, logger *slog.Logger) *ProductManager {
	return &ProductManager{
		store:  s,
		logger: logger.With("component", "manager"),
	}
}

// AddProduct adds a product. Every failure is logged, none is returned.
func (m *ProductManager) AddProduct(ctx context.Context, product store.Product) {
	created, err := m.store.Create(ctx, product)
	if err != nil {
		switch {
		case errors.Is(err, perrors.ErrValidation):
			m.logger.WarnContext(ctx, "All product fields are required", "code", product.Code, "error", err)
		case errors.Is(err, perrors.ErrDuplicateCode):
			m.logger.WarnContext(ctx, "Product code already exists", "code", product.Code)
		default:
			m.logger.ErrorContext(ctx, "Error adding product", "code", product.Code, "error", err)
		}
		return
	}
	m.logger.InfoContext(ctx, "Product added successfully", "ID", created.ID, "code", created.Code)
}

// GetProducts returns all products, or nil if the store was never created.
func (m *ProductManager) GetProducts(ctx context.Context) ([]store.Product, error) {
	products, err := m.store.FindAll(ctx)
	if err != nil {
		if m.reportExpected(ctx, err, 0) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetProductByID returns the product with the given ID, or nil if there is none.
func (m *ProductManager) GetProductByID(ctx context.Context, id int64) (*store.Product, error) {
	product, err := m.store.FindByID(ctx, id)
	if err != nil {
		if m.reportExpected(ctx, err, id) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return product, nil
}

// UpdateProductByID merges patch over the product with the given ID.
func (m *ProductManager) UpdateProductByID(ctx context.Context, id int64, patch store.ProductPatch) error {
	if _, err := m.store.Update(ctx, id, patch); err != nil {
		if m.reportExpected(ctx, err, id) {
			return nil
		}
		return fmt.Errorf("failed to update product %d: %w", id, err)
	}
	m.logger.InfoContext(ctx, "Product updated successfully", "ID", id)
	return nil
}

// RemoveProductByID deletes the product with the given ID.
func (m *ProductManager) RemoveProductByID(ctx context.Context, id int64) error {
	if err := m.store.DeleteByID(ctx, id); err != nil {
		if m.reportExpected(ctx, err, id) {
			return nil
		}
		return fmt.Errorf("failed to remove product %d: %w", id, err)
	}
	m.logger.InfoContext(ctx, "Product removed successfully", "ID", id)
	return nil
}

// RemoveAllProducts empties the store.
func (m *ProductManager) RemoveAllProducts(ctx context.Context) error {
	if err := m.store.DeleteAll(ctx); err != nil {
		if m.reportExpected(ctx, err, 0) {
			return nil
		}
		return fmt.Errorf("failed to remove all products: %w", err)
	}
	m.logger.InfoContext(ctx, "All products removed")
	return nil
}

// reportExpected logs err and returns true if it is a not-found or not-initialized condition.
func (m *ProductManager) reportExpected(ctx context.Context, err error, id int64) bool {
	switch {
	case errors.Is(err, perrors.ErrNotInitialized):
		m.logger.WarnContext(ctx, "Product store does not exist, add a product first")
		return true
	case errors.Is(err, perrors.ErrProductNotFound):
		m.logger.WarnContext(ctx, "Product not found", "ID", id)
		return true
	}
	m.logger.ErrorContext(ctx, "Product store failure", "error", err)
	return false
}
