// Package errors provides custom error types for product-related operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")

// ErrValidation is returned when a candidate product is missing a required field.
var ErrValidation = errors.New("all product fields are required")

// ErrDuplicateCode is returned when a candidate product reuses the code of a stored product.
var ErrDuplicateCode = errors.New("product code already exists")

// ErrNotInitialized is returned when the store file has not been created yet.
var ErrNotInitialized = errors.New("product store is not initialized")

// ErrStorage wraps filesystem and JSON failures of the store file.
var ErrStorage = errors.New("product storage failure")
