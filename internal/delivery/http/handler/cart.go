package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vkoval/automarket/internal/delivery/http/request"
	"github.com/vkoval/automarket/internal/delivery/http/response"
	"github.com/vkoval/automarket/internal/domain"
	"github.com/vkoval/automarket/internal/ledger"
	"github.com/vkoval/automarket/internal/pkg/logger"
)

// CartHandler handles HTTP requests for the cart and favorites ledger
type CartHandler struct {
	service  *ledger.Service
	validate *validator.Validate
	logger   *logger.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *ledger.Service, log *logger.Logger) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
		logger:   log,
	}
}

// AddItemRequest represents the request body for adding to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// SetQuantityRequest represents the request body for setting a quantity.
// A quantity below 1 removes the entry.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/v1/cart
// @Summary Get cart contents
// @Description Cart entries with total unit count and total value at current prices
// @Tags Cart
// @Produce json
// @Success 200 {object} map[string]interface{} "Cart contents"
// @Router /cart [get]
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := request.GetSession(r)

	items, err := h.service.Cart(r.Context(), session)
	if err != nil {
		h.handleError(w, err)
		return
	}

	totalCount, err := h.service.TotalCount(r.Context(), session)
	if err != nil {
		h.handleError(w, err)
		return
	}

	totalValue, err := h.service.TotalValue(r.Context(), session)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"items":       items,
		"total_count": totalCount,
		"total_value": totalValue,
	})
}

// AddItem handles POST /api/v1/cart/items
// @Summary Add or increment a cart item
// @Description Add quantity to a product's cart entry, creating it if absent
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "Item to add"
// @Success 204 "Item added"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 422 {object} map[string]string "Quantity exceeds stock"
// @Router /cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session := request.GetSession(r)
	if err := h.service.AddOrIncrement(r.Context(), session, req.ProductID, req.Quantity); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// SetQuantity handles PUT /api/v1/cart/items/{id}
// @Summary Set a cart item's quantity
// @Description Set the quantity for a product; below 1 removes the entry, above stock is rejected
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param quantity body SetQuantityRequest true "New quantity"
// @Success 204 "Quantity updated"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 422 {object} map[string]string "Quantity exceeds stock"
// @Router /cart/items/{id} [put]
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetStringParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req SetQuantityRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session := request.GetSession(r)
	if err := h.service.SetQuantity(r.Context(), session, id, req.Quantity); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}
// @Summary Remove a cart item
// @Tags Cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 204 "Item removed"
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetStringParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	session := request.GetSession(r)
	if err := h.service.Remove(r.Context(), session, id); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// Clear handles DELETE /api/v1/cart
// @Summary Clear the cart
// @Description Remove every cart entry for the session; there is no undo
// @Tags Cart
// @Produce json
// @Success 204 "Cart cleared"
// @Router /cart [delete]
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session := request.GetSession(r)
	if err := h.service.ClearAll(r.Context(), session); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// Favorites handles GET /api/v1/favorites
// @Summary List favorited product ids
// @Tags Favorites
// @Produce json
// @Success 200 {object} map[string]interface{} "Favorited product ids"
// @Router /favorites [get]
func (h *CartHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	session := request.GetSession(r)

	ids, err := h.service.Favorites(r.Context(), session)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, ids)
}

// ToggleFavorite handles POST /api/v1/favorites/{id}/toggle
// @Summary Toggle favorite membership
// @Description Flip favorite state for a product; toggling twice restores the original state
// @Tags Favorites
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]interface{} "New favorite state"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /favorites/{id}/toggle [post]
func (h *CartHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetStringParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	session := request.GetSession(r)
	favorited, err := h.service.ToggleFavorite(r.Context(), session, id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"favorited": favorited})
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *CartHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrStockExceeded):
		response.Error(w, http.StatusUnprocessableEntity, "Requested quantity exceeds available stock")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrCatalogUnavailable):
		response.Error(w, http.StatusServiceUnavailable, "No products available")
	default:
		h.logger.Error("Internal error in cart handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
