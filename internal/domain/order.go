package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID string `bson:"productId" json:"productId"`
	VariantID string `bson:"variantId,omitempty" json:"variantId,omitempty"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	Price     int64  `bson:"price" json:"price"`
}

// Order is created once at checkout submission with status "pending".
// Later status transitions happen outside this service.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID     string             `bson:"userId" json:"userId"`
	Products   []OrderItem        `bson:"products" json:"products"`
	TotalPrice int64              `bson:"totalPrice" json:"totalPrice"`
	Discount   int64              `bson:"discount,omitempty" json:"discount,omitempty"`
	PromoCode  string             `bson:"promoCode,omitempty" json:"promoCode,omitempty"`
	Status     OrderStatus        `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
