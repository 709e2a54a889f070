// Package handler provides HTTP handlers for product-related operations.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	producterrors "github.com/abgdnv/productmanager/internal/product/errors"
	"github.com/abgdnv/productmanager/internal/product/service"
	"github.com/go-playground/validator/v10"
)

// ProductAPI defines HTTP handlers for product-related endpoints.
type ProductAPI interface {
	FindByID(w http.ResponseWriter, r *http.Request)
	FindAll(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	DeleteByID(w http.ResponseWriter, r *http.Request)
	DeleteAll(w http.ResponseWriter, r *http.Request)

	HealthCheck(w http.ResponseWriter, r *http.Request)
}

type api struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAPI creates a new instance of ProductAPI with the provided service.
func NewAPI(service service.ProductService, logger *slog.Logger) ProductAPI {
	return &api{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "api"),
	}
}

// FindByID retrieves a product by its ID.
func (a *api) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, a.logger)
	if !ok {
		return
	}

	a.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := a.service.FindByID(r.Context(), id)
	if err != nil {
		a.respondServiceError(w, r, a.logger, err, id, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	a.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Title", found.Title)
	respondJSON(w, a.logger, http.StatusOK, found)
}

// FindAll retrieves a list of all products.
func (a *api) FindAll(w http.ResponseWriter, r *http.Request) {
	a.logger.DebugContext(r.Context(), "Received request to find all products")
	list, err := a.service.FindAll(r.Context())
	if err != nil {
		a.respondServiceError(w, r, a.logger, err, 0, "Failed to fetch products")
		return
	}
	a.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	respondJSON(w, a.logger, http.StatusOK, list)
}

// Create handles the creation of a new product.
func (a *api) Create(w http.ResponseWriter, r *http.Request) {
	var productCreateDto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&productCreateDto); err != nil {
		a.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		respondError(w, a.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	a.logger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)
	if err := a.validate.Struct(productCreateDto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondValidationErrors(w, r, a.logger, validationErrors)
			return
		}
		a.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		respondError(w, a.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	newProduct, err := a.service.Create(r.Context(), productCreateDto)
	if err != nil {
		if errors.Is(err, producterrors.ErrDuplicateCode) {
			a.logger.WarnContext(r.Context(), "Product code already exists", "code", productCreateDto.Code)
			respondError(w, a.logger, http.StatusConflict, fmt.Sprintf("Product with code %s already exists", productCreateDto.Code))
			return
		}
		a.respondServiceError(w, r, a.logger, err, 0, "Failed to create product")
		return
	}
	a.logger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Title", newProduct.Title)
	respondJSON(w, a.logger, http.StatusCreated, newProduct)
}

// Update merges the fields present in the request body over the stored product.
func (a *api) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, a.logger)
	if !ok {
		return
	}
	a.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	var productUpdateDto service.ProductUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&productUpdateDto); err != nil {
		a.logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		respondError(w, a.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := a.service.Update(r.Context(), id, productUpdateDto)
	if err != nil {
		a.respondServiceError(w, r, a.logger, err, id, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	a.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Title", updated.Title)
	respondJSON(w, a.logger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (a *api) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, a.logger)
	if !ok {
		return
	}
	a.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := a.service.DeleteByID(r.Context(), id); err != nil {
		a.respondServiceError(w, r, a.logger, err, id, fmt.Sprintf("Failed to delete product with ID %d", id))
		return
	}
	a.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll deletes every product in the store.
func (a *api) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteAll(r.Context()); err != nil {
		a.respondServiceError(w, r, a.logger, err, 0, "Failed to delete products")
		return
	}
	a.logger.InfoContext(r.Context(), "All products deleted")
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (a *api) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// respondServiceError maps store errors to HTTP responses; anything unknown is a 500 with failMsg.
func (a *api) respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, id int64, failMsg string) {
	switch {
	case errors.Is(err, producterrors.ErrNotInitialized):
		logger.WarnContext(r.Context(), "Product store not initialized")
		respondError(w, logger, http.StatusNotFound, "Product store is not initialized")
	case errors.Is(err, producterrors.ErrProductNotFound):
		logger.WarnContext(r.Context(), "Product not found", "ID", id)
		respondError(w, logger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
	case errors.Is(err, producterrors.ErrValidation):
		logger.WarnContext(r.Context(), "Product rejected by store validation", "error", err)
		respondError(w, logger, http.StatusBadRequest, "All product fields are required")
	default:
		logger.ErrorContext(r.Context(), failMsg, "error", err)
		respondError(w, logger, http.StatusInternalServerError, failMsg)
	}
}

func respondValidationErrors(w http.ResponseWriter, r *http.Request, logger *slog.Logger, validationErrors validator.ValidationErrors) {
	errorResponse := make(map[string]string)
	for _, fieldErr := range validationErrors {
		// fieldErr.Tag() returns "required", "gt", etc.
		errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
	}
	logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
	respondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}

// parseID extracts and validates the product ID from the request path. Returns the ID and a boolean indicating success.
func parseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	pathValueID := r.PathValue("id")
	id, err := strconv.ParseInt(pathValueID, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid product ID: %s", pathValueID))
		return 0, false
	}
	return id, true
}
