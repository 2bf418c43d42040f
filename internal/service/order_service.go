package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"github.com/bifroggame1-create/FastPayAI/internal/promo"
	"github.com/bifroggame1-create/FastPayAI/internal/repository"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyOrder = errors.New("order has no items")

	// ErrPromoRejected wraps a failed promo validation during checkout. A
	// rejected code must surface to the shopper, never degrade to "no discount".
	ErrPromoRejected = errors.New("promo code rejected")
)

type CreateOrderRequest struct {
	UserID    string
	Items     []domain.OrderItem
	PromoCode string
}

type OrderService struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	promos repository.PromoRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewOrderService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	promos repository.PromoRepository,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders: orders,
		users:  users,
		promos: promos,
		logger: logger.With().Str("component", "orders").Logger(),
		now:    time.Now,
	}
}

// Create records a checkout submission. The total is computed server-side
// from the line items; when a promo code is attached it is re-validated
// against the subtotal and redeemed atomically before the order is written.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if req.UserID == "" || len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var subtotal int64
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			return nil, fmt.Errorf("invalid line item for product %s", item.ProductID)
		}
		subtotal += item.Price * int64(item.Quantity)
	}

	var discount int64
	if req.PromoCode != "" {
		record, err := s.promos.GetByCode(ctx, req.PromoCode)
		if err != nil && !errors.Is(err, repository.ErrPromoNotFound) {
			return nil, err
		}

		result := promo.Validate(record, subtotal, s.now())
		if !result.Valid {
			return nil, fmt.Errorf("%w: %s", ErrPromoRejected, result.Message)
		}

		if err := s.promos.Redeem(ctx, req.PromoCode); err != nil {
			// Lost the race for the last use, or the code vanished between
			// validation and redemption.
			if errors.Is(err, repository.ErrPromoExhausted) || errors.Is(err, repository.ErrPromoNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrPromoRejected, promo.MsgExhausted)
			}
			return nil, err
		}
		discount = result.Discount
	}

	order := &domain.Order{
		UserID:     req.UserID,
		Products:   req.Items,
		TotalPrice: subtotal - discount,
		Discount:   discount,
		PromoCode:  req.PromoCode,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.users.IncrementOrdersCount(ctx, req.UserID); err != nil {
		s.logger.Error().Err(err).Str("userId", req.UserID).Msg("failed to update user order stats")
	}

	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}
