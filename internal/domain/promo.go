package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromoCode is a redeemable discount token. Codes are stored upper-cased and
// matched case-insensitively. Zero MinOrderAmount and MaxUses mean "no limit";
// a nil ExpiresAt means the code never expires.
type PromoCode struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Code           string             `bson:"code" json:"code"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	DiscountType   DiscountType       `bson:"discountType" json:"discountType"`
	DiscountValue  int64              `bson:"discountValue" json:"discountValue"`
	MinOrderAmount int64              `bson:"minOrderAmount,omitempty" json:"minOrderAmount,omitempty"`
	MaxUses        int64              `bson:"maxUses,omitempty" json:"maxUses,omitempty"`
	UsedCount      int64              `bson:"usedCount" json:"usedCount"`
	ExpiresAt      *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
}
