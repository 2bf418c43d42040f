package cache

import (
	"context"
	"errors"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"github.com/bifroggame1-create/FastPayAI/internal/repository"
)

// CatalogCache caches product listings per filter combination.
type CatalogCache interface {
	Get(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error)
	Set(ctx context.Context, filter repository.ProductFilter, products []domain.Product) error
	// InvalidateAll drops every cached listing, used after catalog writes.
	InvalidateAll(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
