package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bigbazar/bb-api/internal/auth"
	"github.com/bigbazar/bb-api/internal/httputil"
	"github.com/bigbazar/bb-api/internal/logging"
)

// Handler contains HTTP handlers for the product catalog
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// CreateRequest represents the product creation request body
type CreateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// UpdateRequest represents a partial product update; absent fields are unchanged
type UpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// SetActiveRequest represents the activation request body
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// Create handles product creation
// @Summary      Create a new product
// @Description  Create a product owned by the authenticated user. Products start inactive.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequest true "Product data"
// @Success      201 {object} Product
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      409 {object} httputil.ErrorResponse "Conflict"
// @Router       /products [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ownerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "could not validate credentials", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid product create request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), ownerID, CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrConflict):
			logger.Warn("product creation failed: conflict")
			httputil.RespondErrorWithCode(w, "product already exists", httputil.CodeAlreadyExists, http.StatusConflict)
		case errors.Is(err, ErrInvalidPrice):
			logger.Warn("product creation failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidPrice, http.StatusBadRequest)
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrNameTooLong), errors.Is(err, ErrDescriptionTooLong):
			logger.Warn("product creation failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		default:
			logger.Error("product creation failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to create product", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("product created", "product_id", created.ID, "owner_id", ownerID)

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// ListActive handles the public active-product listing
// @Summary      List active products
// @Description  Returns active products with limit/offset pagination. Inactive products are excluded.
// @Tags         products
// @Produce      json
// @Param        limit query int false "Page size" default(10)
// @Param        offset query int false "Page offset" default(0)
// @Success      200 {array} Product
// @Router       /products [get]
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.service.ListActive(r.Context(), limit, offset)
	if err != nil {
		logger.Error("failed to list products", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list products", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, products, http.StatusOK)
}

// Get handles fetching a single product
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        productID path string true "Product ID"
// @Success      200 {object} Product
// @Failure      404 {object} httputil.ErrorResponse "Product not found"
// @Router       /products/{productID} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid product id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "product not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get product", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get product", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, found, http.StatusOK)
}

// Update handles a partial product update
// @Summary      Update product by ID
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productID path string true "Product ID"
// @Param        request body UpdateRequest true "Fields to update"
// @Success      200 {object} Product
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      404 {object} httputil.ErrorResponse "Product not found"
// @Router       /products/{productID} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid product id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid product update request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), id, UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "product not found", httputil.CodeNotFound, http.StatusNotFound)
		case errors.Is(err, ErrInvalidPrice):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidPrice, http.StatusBadRequest)
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrNameTooLong), errors.Is(err, ErrDescriptionTooLong):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		default:
			logger.Error("product update failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to update product", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete handles product deletion
// @Summary      Delete product by ID
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        productID path string true "Product ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse "Product not found"
// @Router       /products/{productID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid product id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "product not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("product deletion failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to delete product", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("product deleted", "product_id", id)

	httputil.RespondJSON(w, map[string]string{"message": "product deleted successfully"}, http.StatusOK)
}

// SetActive handles setting the product's active flag to an absolute value
// @Summary      Set product active status
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productID path string true "Product ID"
// @Param        request body SetActiveRequest true "Desired status"
// @Success      200 {object} Product
// @Failure      404 {object} httputil.ErrorResponse "Product not found"
// @Router       /products/{productID}/status [put]
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid product id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid set status request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.SetActive(r.Context(), id, req.IsActive)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "product not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to set product status", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to set product status", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// ToggleActive handles flipping the product's active flag
// @Summary      Toggle product active status
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        productID path string true "Product ID"
// @Success      200 {object} Product
// @Failure      404 {object} httputil.ErrorResponse "Product not found"
// @Router       /products/{productID}/toggle [post]
func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid product id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "product not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to toggle product status", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to toggle product status", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}
