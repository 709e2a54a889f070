// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/productmanager/internal/product/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// FindAll returns all products in insertion order.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Create adds a new product to the store.
	// Returns ErrValidation or ErrDuplicateCode if the product is rejected.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update merges the given fields over an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteAll removes every product.
	DeleteAll(ctx context.Context) error
}

// service implements ProductService and provides methods to manage products.
type service struct {
	repository store.ProductStore
	logger     *slog.Logger
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore, logger *slog.Logger) ProductService {
	return &service{
		repository: repo,
		logger:     logger.With("component", "service"),
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Thumbnail   string  `json:"thumbnail"`
	Code        string  `json:"code"`
	Stock       int64   `json:"stock"`
}

// ProductCreateDto represents the data required to create a new product.
type ProductCreateDto struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Thumbnail   string  `json:"thumbnail" validate:"required"`
	Code        string  `json:"code" validate:"required,max=64"`
	Stock       int64   `json:"stock" validate:"required,gt=0"`
}

// ProductUpdateDto carries the fields of a partial update. Absent fields are kept.
type ProductUpdateDto struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Code        *string  `json:"code,omitempty"`
	Stock       *int64   `json:"stock,omitempty"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		s.logger.DebugContext(ctx, "Error fetching product by ID", "ID", id, "error", err)
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
func (s *service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		s.logger.DebugContext(ctx, "Error fetching products", "error", err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))
	for i := range products {
		productDTOs[i] = *toDto(&products[i])
	}
	return productDTOs, nil
}

// Create creates a new product and returns it as a ProductDto.
func (s *service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	created, err := s.repository.Create(ctx, store.Product{
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Thumbnail:   product.Thumbnail,
		Code:        product.Code,
		Stock:       product.Stock,
	})
	if err != nil {
		s.logger.DebugContext(ctx, "Error creating product", "code", product.Code, "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toDto(created), nil
}

// Update applies a partial update and returns the resulting product.
func (s *service) Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, id, store.ProductPatch{
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Thumbnail:   product.Thumbnail,
		Code:        product.Code,
		Stock:       product.Stock,
	})
	if err != nil {
		s.logger.DebugContext(ctx, "Error updating product", "ID", id, "error", err)
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
func (s *service) DeleteByID(ctx context.Context, id int64) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// DeleteAll deletes every product.
func (s *service) DeleteAll(ctx context.Context) error {
	if err := s.repository.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete all products: %w", err)
	}
	return nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Thumbnail:   product.Thumbnail,
		Code:        product.Code,
		Stock:       product.Stock,
	}
}
