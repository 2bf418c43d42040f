package promo

import (
	"fmt"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
)

// Rejection messages shown to the shopper, kept in Russian as the storefront is.
const (
	MsgNotFound  = "Промокод не найден"
	MsgInactive  = "Промокод неактивен"
	MsgExpired   = "Промокод истёк"
	MsgExhausted = "Промокод исчерпан"
)

type Summary struct {
	Code          string              `json:"code"`
	Description   string              `json:"description,omitempty"`
	DiscountType  domain.DiscountType `json:"discountType"`
	DiscountValue int64               `json:"discountValue"`
}

type Result struct {
	Valid    bool     `json:"valid"`
	Discount int64    `json:"discount,omitempty"`
	Promo    *Summary `json:"promo,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// Validate evaluates a promo code against an order amount. Checks run in a
// fixed order and the first failure wins: not-found, inactive, expired,
// usage cap exhausted, below minimum order. Validation never touches the
// usage counter; redemption is a separate step.
func Validate(p *domain.PromoCode, orderAmount int64, now time.Time) Result {
	if p == nil {
		return Result{Valid: false, Message: MsgNotFound}
	}
	if !p.IsActive {
		return Result{Valid: false, Message: MsgInactive}
	}
	if p.ExpiresAt != nil && p.ExpiresAt.Before(now) {
		return Result{Valid: false, Message: MsgExpired}
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return Result{Valid: false, Message: MsgExhausted}
	}
	if p.MinOrderAmount > 0 && orderAmount < p.MinOrderAmount {
		return Result{Valid: false, Message: fmt.Sprintf("Минимальная сумма заказа %d₽", p.MinOrderAmount)}
	}

	return Result{
		Valid:    true,
		Discount: Discount(p, orderAmount),
		Promo: &Summary{
			Code:          p.Code,
			Description:   p.Description,
			DiscountType:  p.DiscountType,
			DiscountValue: p.DiscountValue,
		},
	}
}

// Discount computes the discount for an already-eligible code. Percentage
// discounts round half up. Either kind is capped at the order amount so the
// final price can never go negative; nothing bounds DiscountValue upstream,
// a percentage above 100 would otherwise overshoot the order.
func Discount(p *domain.PromoCode, orderAmount int64) int64 {
	discount := p.DiscountValue
	if p.DiscountType == domain.DiscountPercentage {
		discount = (orderAmount*p.DiscountValue + 50) / 100
	}
	if discount > orderAmount {
		return orderAmount
	}
	return discount
}
