package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	MongoID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID            string             `bson:"id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Username      string             `bson:"username,omitempty" json:"username,omitempty"`
	Avatar        string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	JoinedAt      time.Time          `bson:"joinedAt" json:"joinedAt"`
	ReferralCode  string             `bson:"referralCode,omitempty" json:"referralCode,omitempty"`
	ReferredBy    string             `bson:"referredBy,omitempty" json:"referredBy,omitempty"`
	ReferralCount int64              `bson:"referralCount" json:"referralCount"`
	BonusBalance  int64              `bson:"bonusBalance" json:"bonusBalance"`
	Stats         UserStats          `bson:"stats" json:"stats"`
}

type UserStats struct {
	Rating       float64 `bson:"rating" json:"rating"`
	ReviewsCount int64   `bson:"reviewsCount" json:"reviewsCount"`
	OrdersCount  int64   `bson:"ordersCount" json:"ordersCount"`
	ReturnsCount int64   `bson:"returnsCount" json:"returnsCount"`
}
