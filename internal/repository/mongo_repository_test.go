package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupTestDB(t *testing.T) (*mongo.Database, func()) {
	ctx := context.Background()

	// Start MongoDB container
	mongoContainer, err := mongodb.RunContainer(ctx, testcontainers.WithImage("mongo:7"))
	require.NoError(t, err)

	// Get connection string
	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	err = EnsureIndexes(ctx, db)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoProductRepository(db)
	ctx := context.Background()

	product, err := repo.GetByID(ctx, "652f8a9b1c2d3e4f5a6b7c8d")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, product)

	// A malformed hex id is also "not found", not an internal error
	product, err = repo.GetByID(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, product)
}

func TestProductRepository_ListFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoProductRepository(db)
	ctx := context.Background()

	seed := []domain.Product{
		{Name: "iPhone 15 Pro", Price: 89990, Category: "phones", Condition: "new"},
		{Name: "iPhone 13", Price: 39990, Category: "phones", Condition: "used"},
		{Name: "MacBook Air M3", Price: 129990, Category: "laptops", Condition: "new"},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
		assert.False(t, seed[i].ID.IsZero())
	}

	// Category filter
	phones, err := repo.List(ctx, ProductFilter{Category: "phones"})
	require.NoError(t, err)
	assert.Len(t, phones, 2)

	// Category + condition
	usedPhones, err := repo.List(ctx, ProductFilter{Category: "phones", Condition: "used"})
	require.NoError(t, err)
	require.Len(t, usedPhones, 1)
	assert.Equal(t, "iPhone 13", usedPhones[0].Name)

	// "all" matches everything
	all, err := repo.List(ctx, ProductFilter{Category: "all", Condition: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Text search over the name index
	macs, err := repo.List(ctx, ProductFilter{Search: "MacBook"})
	require.NoError(t, err)
	require.Len(t, macs, 1)
	assert.Equal(t, "MacBook Air M3", macs[0].Name)
}

func TestProductRepository_GetByIDs_SkipsMalformed(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoProductRepository(db)
	ctx := context.Background()

	product := domain.Product{Name: "AirPods Pro 2", Price: 24990, Category: "audio"}
	require.NoError(t, repo.Create(ctx, &product))

	products, err := repo.GetByIDs(ctx, []string{product.ID.Hex(), "garbage"})
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestPromoRepository_GetByCode_CaseInsensitive(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoPromoRepository(db)
	ctx := context.Background()

	_, err := db.Collection("promocodes").InsertOne(ctx, domain.PromoCode{
		Code:          "WELCOME10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
	})
	require.NoError(t, err)

	promo, err := repo.GetByCode(ctx, "welcome10")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", promo.Code)

	_, err = repo.GetByCode(ctx, "NOSUCHCODE")
	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestPromoRepository_Redeem(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoPromoRepository(db)
	ctx := context.Background()

	_, err := db.Collection("promocodes").InsertOne(ctx, domain.PromoCode{
		Code:          "LIMITED",
		DiscountType:  domain.DiscountFixed,
		DiscountValue: 500,
		MaxUses:       2,
		UsedCount:     1,
		IsActive:      true,
	})
	require.NoError(t, err)

	// Last use succeeds
	require.NoError(t, repo.Redeem(ctx, "limited"))

	// Cap reached
	assert.ErrorIs(t, repo.Redeem(ctx, "LIMITED"), ErrPromoExhausted)

	// Unknown code is distinguished from an exhausted one
	assert.ErrorIs(t, repo.Redeem(ctx, "NOSUCHCODE"), ErrPromoNotFound)
}

func TestPromoRepository_Redeem_ConcurrentLastUse(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoPromoRepository(db)
	ctx := context.Background()

	_, err := db.Collection("promocodes").InsertOne(ctx, domain.PromoCode{
		Code:          "RACE",
		DiscountType:  domain.DiscountFixed,
		DiscountValue: 100,
		MaxUses:       5,
		IsActive:      true,
	})
	require.NoError(t, err)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Redeem(ctx, "RACE")
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, exhausted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrPromoExhausted):
			exhausted++
		}
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, attempts-5, exhausted)

	promo, err := repo.GetByCode(ctx, "RACE")
	require.NoError(t, err)
	assert.Equal(t, int64(5), promo.UsedCount)
}

func TestPromoRepository_Redeem_NoCap(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoPromoRepository(db)
	ctx := context.Background()

	_, err := db.Collection("promocodes").InsertOne(ctx, domain.PromoCode{
		Code:          "UNLIMITED",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 5,
		IsActive:      true,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Redeem(ctx, "UNLIMITED"))
	}

	promo, err := repo.GetByCode(ctx, "UNLIMITED")
	require.NoError(t, err)
	assert.Equal(t, int64(3), promo.UsedCount)
}

func TestUserRepository_ReferralAccrual(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoUserRepository(db)
	ctx := context.Background()

	referrer := &domain.User{
		ID:           "130159846",
		Name:         "Ivan",
		JoinedAt:     time.Now(),
		ReferralCode: "FASTPAY130159",
	}
	require.NoError(t, repo.Create(ctx, referrer))

	require.NoError(t, repo.AccrueReferralBonus(ctx, "FASTPAY130159", 200))
	require.NoError(t, repo.AccrueReferralBonus(ctx, "FASTPAY130159", 200))

	got, err := repo.GetByID(ctx, "130159846")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ReferralCount)
	assert.Equal(t, int64(400), got.BonusBalance)

	_, err = repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// The unique index on "id" rejects a second insert for the same user
	duplicate := &domain.User{ID: "130159846", Name: "Ivan again", JoinedAt: time.Now()}
	assert.ErrorIs(t, repo.Create(ctx, duplicate), ErrUserExists)
}

func TestOrderRepository_CreateAndList(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)
	ctx := context.Background()

	order := &domain.Order{
		UserID: "130159846",
		Products: []domain.OrderItem{
			{ProductID: "prod-1", Quantity: 2, Price: 1000},
		},
		TotalPrice: 2000,
	}
	require.NoError(t, repo.Create(ctx, order))
	assert.False(t, order.ID.IsZero())
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	orders, err := repo.ListByUser(ctx, "130159846")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	got, err := repo.GetByID(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.TotalPrice)

	_, err = repo.GetByID(ctx, "652f8a9b1c2d3e4f5a6b7c8d")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
