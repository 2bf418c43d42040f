package service

import (
	"context"
	"errors"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"github.com/bifroggame1-create/FastPayAI/internal/promo"
	"github.com/bifroggame1-create/FastPayAI/internal/repository"
)

type PromoService struct {
	repo repository.PromoRepository
	now  func() time.Time
}

func NewPromoService(repo repository.PromoRepository) *PromoService {
	return &PromoService{repo: repo, now: time.Now}
}

// Validate checks a code against an order amount without redeeming it.
// An unknown code is a rejection, not an error: the shopper typed it wrong.
func (s *PromoService) Validate(ctx context.Context, code string, orderAmount int64) (promo.Result, error) {
	record, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return promo.Validate(nil, orderAmount, s.now()), nil
		}
		return promo.Result{}, err
	}
	return promo.Validate(record, orderAmount, s.now()), nil
}

func (s *PromoService) ListActive(ctx context.Context) ([]domain.PromoCode, error) {
	return s.repo.ListActive(ctx)
}
