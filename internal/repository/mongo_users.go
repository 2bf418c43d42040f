package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{collection: db.Collection("users")}
}

func (m *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := m.collection.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. The unique index on "id" turns a concurrent
// double-registration into ErrUserExists instead of a duplicate document.
func (m *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, err := m.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// AccrueReferralBonus credits the owner of the referral code for bringing in
// a new user. A single atomic update, no read-modify-write.
func (m *mongoUserRepository) AccrueReferralBonus(ctx context.Context, referralCode string, bonus int64) error {
	update := bson.M{"$inc": bson.M{"referralCount": 1, "bonusBalance": bonus}}
	_, err := m.collection.UpdateOne(ctx, bson.M{"referralCode": referralCode}, update)
	if err != nil {
		return fmt.Errorf("failed to accrue referral bonus: %w", err)
	}
	return nil
}

func (m *mongoUserRepository) IncrementOrdersCount(ctx context.Context, userID string) error {
	update := bson.M{"$inc": bson.M{"stats.ordersCount": 1}}
	_, err := m.collection.UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to increment orders count: %w", err)
	}
	return nil
}

func (m *mongoUserRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "referralCode", Value: 1}}},
	}
	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
