package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"github.com/bifroggame1-create/FastPayAI/internal/repository"
	"github.com/bifroggame1-create/FastPayAI/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalog *service.CatalogService
	timeout time.Duration
}

func NewProductHandler(catalog *service.CatalogService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type FavoritesRequestDTO struct {
	FavoriteIDs []string `json:"favoriteIds"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter := repository.ProductFilter{
		Category:  r.URL.Query().Get("category"),
		Condition: r.URL.Query().Get("condition"),
		Search:    r.URL.Query().Get("search"),
	}

	products, err := h.catalog.List(ctx, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req FavoritesRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if len(req.FavoriteIDs) == 0 {
		respondJSON(w, http.StatusOK, []domain.Product{})
		return
	}

	products, err := h.catalog.GetFavorites(ctx, req.FavoriteIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get favorites")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if product.Name == "" || product.Price <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product", "name and positive price are required")
		return
	}

	if err := h.catalog.Create(ctx, &product); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}

	respondJSON(w, http.StatusCreated, product)
}
