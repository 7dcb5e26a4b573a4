package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bigbazar/bb-api/internal/auth"
	"github.com/bigbazar/bb-api/internal/httputil"
	"github.com/bigbazar/bb-api/internal/logging"
)

// Handler contains HTTP handlers for the authenticated user's cart
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// AddRequest represents the add-to-cart request body.
// Either a single product_id or a product_ids batch may be supplied.
type AddRequest struct {
	ProductID  *uuid.UUID  `json:"product_id,omitempty"`
	ProductIDs []uuid.UUID `json:"product_ids,omitempty"`
}

// Get handles fetching the authenticated user's cart
// @Summary      Get the current user's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Cart
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /cart [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "could not validate credentials", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	c, err := h.service.Get(r.Context(), userID)
	if err != nil {
		logger.Error("failed to get cart", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get cart", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, c, http.StatusOK)
}

// AddProducts handles adding one or more products to the cart
// @Summary      Add products to the cart
// @Description  Adds a single product or a batch. Products already in the cart are skipped.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddRequest true "Product id or batch of ids"
// @Success      200 {object} Cart
// @Failure      400 {object} httputil.ErrorResponse "Invalid request"
// @Failure      404 {object} httputil.ErrorResponse "Product not found"
// @Router       /cart/products [post]
func (h *Handler) AddProducts(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "could not validate credentials", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid add-to-cart request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	productIDs := req.ProductIDs
	if req.ProductID != nil {
		productIDs = append(productIDs, *req.ProductID)
	}

	if err := h.service.AddProducts(r.Context(), userID, productIDs...); err != nil {
		switch {
		case errors.Is(err, ErrNoProducts):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		case errors.Is(err, ErrProductNotFound):
			httputil.RespondErrorWithCode(w, "product not found", httputil.CodeNotFound, http.StatusNotFound)
		default:
			logger.Error("failed to add products to cart", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to add products to cart", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("products added to cart", "count", len(productIDs))

	c, err := h.service.Get(r.Context(), userID)
	if err != nil {
		logger.Error("failed to get cart", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get cart", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, c, http.StatusOK)
}

// RemoveProduct handles removing a product from the cart
// @Summary      Remove a product from the cart
// @Description  Removing a product that is not in the cart is a no-op.
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        productID path string true "Product ID"
// @Success      200 {object} Cart
// @Failure      400 {object} httputil.ErrorResponse "Invalid product id"
// @Router       /cart/products/{productID} [delete]
func (h *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "could not validate credentials", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid product id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveProduct(r.Context(), userID, productID); err != nil {
		logger.Error("failed to remove product from cart", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to remove product from cart", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	c, err := h.service.Get(r.Context(), userID)
	if err != nil {
		logger.Error("failed to get cart", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get cart", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, c, http.StatusOK)
}

// Clear handles emptying the cart
// @Summary      Clear the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Router       /cart [delete]
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "could not validate credentials", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		logger.Error("failed to clear cart", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to clear cart", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("cart cleared")

	httputil.RespondJSON(w, map[string]string{"message": "cart cleared"}, http.StatusOK)
}
