package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	FrontendURL    string
	RequestTimeout time.Duration
}

func NewRouter(
	cfg RouterConfig,
	products *ProductHandler,
	users *UserHandler,
	orders *OrderHandler,
	promos *PromoHandler,
	payments *PaymentHandler,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.FrontendURL},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Post("/", products.Create)
		r.Post("/favorites", products.Favorites)
		r.Get("/{id}", products.Get)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/{id}", users.Get)
		r.Post("/", users.Register)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orders.Create)
		r.Get("/user/{userId}", orders.ListByUser)
		r.Get("/{id}", orders.Get)
	})

	r.Route("/promo", func(r chi.Router) {
		r.Post("/validate", promos.Validate)
		r.Get("/active", promos.ListActive)
	})

	r.Route("/payment", func(r chi.Router) {
		r.Post("/create-invoice", payments.CreateInvoice)
		r.Get("/invoice/{invoiceId}", payments.GetInvoice)
		r.Get("/balance", payments.Balance)
		r.Get("/quote", payments.Quote)
	})

	return r
}
