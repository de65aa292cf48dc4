package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vkoval/automarket/internal/config"
	"github.com/vkoval/automarket/internal/delivery/http/handler"
	"github.com/vkoval/automarket/internal/delivery/http/middleware"
	"github.com/vkoval/automarket/internal/delivery/http/response"
	"github.com/vkoval/automarket/internal/pkg/logger"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	logger         *logger.Logger
	cfg            *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		catalogHandler: catalogHandler,
		cartHandler:    cartHandler,
		logger:         log,
		cfg:            cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Session-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", rt.catalogHandler.List)
			r.Get("/filters", rt.catalogHandler.Filters)
			r.Post("/refresh", rt.catalogHandler.Refresh)
			r.Get("/suggestions", rt.catalogHandler.Suggest)
		})

		r.Post("/products/{id}/view", rt.catalogHandler.View)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", rt.cartHandler.Get)
			r.Delete("/", rt.cartHandler.Clear)
			r.Post("/items", rt.cartHandler.AddItem)
			r.Put("/items/{id}", rt.cartHandler.SetQuantity)
			r.Delete("/items/{id}", rt.cartHandler.RemoveItem)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", rt.cartHandler.Favorites)
			r.Post("/{id}/toggle", rt.cartHandler.ToggleFavorite)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
