package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/bigbazar/bb-api/internal/auth"
	"github.com/bigbazar/bb-api/internal/cart"
	"github.com/bigbazar/bb-api/internal/config"
	"github.com/bigbazar/bb-api/internal/httputil"
	"github.com/bigbazar/bb-api/internal/logging"
	"github.com/bigbazar/bb-api/internal/product"
	"github.com/bigbazar/bb-api/internal/user"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	authMiddleware *auth.Middleware,
	userHandler *user.Handler,
	productHandler *product.Handler,
	cartHandler *cart.Handler,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	// User routes: registration and login are public, management requires auth
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/", userHandler.List)
			r.Get("/{userID}", userHandler.Get)
			r.Patch("/{userID}", userHandler.Update)
			r.Delete("/{userID}", userHandler.Delete)
		})
	})

	// Product routes: active listing is public, mutations require auth
	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.ListActive)
		r.Get("/{productID}", productHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/", productHandler.Create)
			r.Patch("/{productID}", productHandler.Update)
			r.Delete("/{productID}", productHandler.Delete)
			r.Put("/{productID}/status", productHandler.SetActive)
			r.Post("/{productID}/toggle", productHandler.ToggleActive)
		})
	})

	// Cart routes: always scoped to the authenticated user
	r.Route("/cart", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Get("/", cartHandler.Get)
		r.Delete("/", cartHandler.Clear)
		r.Post("/products", cartHandler.AddProducts)
		r.Delete("/products/{productID}", cartHandler.RemoveProduct)
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
