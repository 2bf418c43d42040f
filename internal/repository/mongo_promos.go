package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPromoRepository struct {
	collection *mongo.Collection
}

func NewMongoPromoRepository(db *mongo.Database) PromoRepository {
	return &mongoPromoRepository{collection: db.Collection("promocodes")}
}

// GetByCode looks up a code case-insensitively: codes are stored upper-cased.
func (m *mongoPromoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	var promo domain.PromoCode
	err := m.collection.FindOne(ctx, bson.M{"code": strings.ToUpper(code)}).Decode(&promo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return &promo, nil
}

func (m *mongoPromoRepository) ListActive(ctx context.Context) ([]domain.PromoCode, error) {
	cursor, err := m.collection.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	defer cursor.Close(ctx)

	promos := []domain.PromoCode{}
	if err := cursor.All(ctx, &promos); err != nil {
		return nil, fmt.Errorf("failed to decode promo codes: %w", err)
	}
	return promos, nil
}

// Redeem increments usedCount with a filter that admits the document only
// while below the cap, so two concurrent redemptions of a code's last use
// cannot both succeed.
func (m *mongoPromoRepository) Redeem(ctx context.Context, code string) error {
	filter := bson.M{
		"code": strings.ToUpper(code),
		"$or": bson.A{
			bson.M{"maxUses": bson.M{"$exists": false}},
			bson.M{"maxUses": 0},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$usedCount", "$maxUses"}}},
		},
	}
	update := bson.M{"$inc": bson.M{"usedCount": 1}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to redeem promo code: %w", err)
	}
	if result.MatchedCount == 0 {
		// Distinguish an unknown code from an exhausted one.
		count, countErr := m.collection.CountDocuments(ctx, bson.M{"code": strings.ToUpper(code)}, options.Count().SetLimit(1))
		if countErr != nil {
			return fmt.Errorf("failed to check promo code: %w", countErr)
		}
		if count == 0 {
			return ErrPromoNotFound
		}
		return ErrPromoExhausted
	}
	return nil
}

func (m *mongoPromoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}
	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create promo indexes: %w", err)
	}
	return nil
}
