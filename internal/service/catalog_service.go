package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/cache"
	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"github.com/bifroggame1-create/FastPayAI/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type CatalogService struct {
	repo   repository.ProductRepository
	cache  cache.CatalogCache
	logger zerolog.Logger
	sfg    singleflight.Group // Prevents cache stampede
}

func NewCatalogService(repo repository.ProductRepository, cache cache.CatalogCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

func (s *CatalogService) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same filter
	key := fmt.Sprintf("%s|%s|%s", filter.Category, filter.Condition, filter.Search)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		products, err := s.cache.Get(ctx, filter)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Msg("cache get failed, falling back to repository")
		}

		products, err = s.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(setCtx, filter, products); errSet != nil {
				s.logger.Warn().Err(errSet).Msg("cache set failed")
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService) GetFavorites(ctx context.Context, ids []string) ([]domain.Product, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *CatalogService) Create(ctx context.Context, product *domain.Product) error {
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}

	invalidateCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.InvalidateAll(invalidateCtx); err != nil {
		s.logger.Warn().Err(err).Msg("cache invalidate failed")
	}
	return nil
}
