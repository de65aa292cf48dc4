package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vkoval/automarket/internal/catalog"
	"github.com/vkoval/automarket/internal/delivery/http/request"
	"github.com/vkoval/automarket/internal/delivery/http/response"
	"github.com/vkoval/automarket/internal/domain"
	"github.com/vkoval/automarket/internal/pkg/logger"
)

// CatalogHandler handles HTTP requests for the catalog pipeline
type CatalogHandler struct {
	resolver  *catalog.Resolver
	engine    *catalog.Engine
	suggester *catalog.Suggester
	publisher catalog.EventPublisher
	logger    *logger.Logger
}

// NewCatalogHandler creates a new catalog handler. publisher may be nil
// when no event surface is wired; view tracking is then disabled.
func NewCatalogHandler(
	resolver *catalog.Resolver,
	engine *catalog.Engine,
	suggester *catalog.Suggester,
	publisher catalog.EventPublisher,
	log *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		resolver:  resolver,
		engine:    engine,
		suggester: suggester,
		publisher: publisher,
		logger:    log,
	}
}

// List handles GET /api/v1/catalog
// @Summary List catalog products
// @Description Resolve the current catalog snapshot and apply filter/sort criteria
// @Tags Catalog
// @Accept json
// @Produce json
// @Param q query string false "Free-text query"
// @Param category query string false "Category filter" Enums(cars, parts, accessories, services, tools, tires)
// @Param condition query string false "Condition filter" Enums(new, used, refurbished)
// @Param min_price query number false "Minimum price (inclusive)"
// @Param max_price query number false "Maximum price (inclusive)"
// @Param max_mileage query int false "Maximum mileage"
// @Param in_stock query bool false "Only in-stock products"
// @Param sort query string false "Sort key" Enums(newest, price_asc, price_desc, most_popular, distance)
// @Success 200 {object} map[string]interface{} "Filtered product list"
// @Failure 503 {object} map[string]string "No products available"
// @Router /catalog [get]
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria := request.ParseSearchCriteria(r)

	snapshot, err := h.resolver.Resolve(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	products := h.engine.Apply(snapshot, criteria)
	response.Listed(w, products, len(products))
}

// Filters handles GET /api/v1/catalog/filters
// @Summary Get filter metadata
// @Description Category counts, availability counts and price range over the current snapshot
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Filter metadata"
// @Failure 503 {object} map[string]string "No products available"
// @Router /catalog/filters [get]
func (h *CatalogHandler) Filters(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.resolver.Resolve(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, h.engine.Metadata(snapshot))
}

// Refresh handles POST /api/v1/catalog/refresh
// @Summary Force a catalog refresh
// @Description Bypass the snapshot cache and re-resolve the catalog from its source tiers
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Refreshed product list"
// @Failure 503 {object} map[string]string "No products available"
// @Router /catalog/refresh [post]
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	products, err := h.resolver.ForceRefresh(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Listed(w, products, len(products))
}

// Suggest handles GET /api/v1/catalog/suggestions
// @Summary Get search suggestions
// @Description Debounced query completions for a partial search input; a newer request from the same session supersedes a pending one
// @Tags Catalog
// @Produce json
// @Param q query string true "Partial query"
// @Success 200 {object} map[string]interface{} "Suggestions"
// @Success 204 "Superseded by newer input"
// @Router /catalog/suggestions [get]
func (h *CatalogHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	session := request.GetSession(r)
	partial := r.URL.Query().Get("q")

	suggestions, err := h.suggester.SuggestDebounced(r.Context(), session, partial)
	if err != nil {
		if errors.Is(err, domain.ErrSuperseded) {
			response.NoContent(w)
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client gave up mid-window; nothing left to answer.
			return
		}
		h.handleError(w, err)
		return
	}

	response.Success(w, suggestions)
}

// View handles POST /api/v1/products/{id}/view
// @Summary Record a product view
// @Description Publish a view event for asynchronous view-count aggregation
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 202 "View recorded"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{id}/view [post]
func (h *CatalogHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetStringParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if _, err := h.resolver.Product(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	h.publishView(id)
	w.WriteHeader(http.StatusAccepted)
}

// publishView publishes a view event (non-blocking)
func (h *CatalogHandler) publishView(productID string) {
	if h.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"event_type": "product.viewed",
		"product_id": productID,
		"timestamp":  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal view event", err)
		return
	}

	go func() {
		if err := h.publisher.Publish(context.Background(), "catalog.views", data); err != nil {
			h.logger.Errorf(err, "Failed to publish view event for product %s", productID)
		}
	}()
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *CatalogHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCatalogUnavailable):
		response.Error(w, http.StatusServiceUnavailable, "No products available")
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	default:
		h.logger.Error("Internal error in catalog handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
