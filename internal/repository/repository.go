package repository

import (
	"context"
	"errors"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrOrderNotFound   = errors.New("order not found")
	ErrPromoNotFound   = errors.New("promo code not found")

	// ErrPromoExhausted is returned by Redeem when the usage cap is already
	// reached, the atomic filtered increment matched nothing.
	ErrPromoExhausted = errors.New("promo code usage cap exhausted")
)

// ProductFilter narrows catalog listings. Empty or "all" fields match everything.
type ProductFilter struct {
	Category  string
	Condition string
	Search    string
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	AccrueReferralBonus(ctx context.Context, referralCode string, bonus int64) error
	IncrementOrdersCount(ctx context.Context, userID string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

type PromoRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	ListActive(ctx context.Context) ([]domain.PromoCode, error)
	// Redeem atomically increments the usage counter, refusing when the cap
	// is reached. Concurrent redemptions of the same code never lose updates.
	Redeem(ctx context.Context, code string) error
}
