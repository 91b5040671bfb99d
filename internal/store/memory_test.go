package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medimart-backend/internal/models"
)

func TestMemoryAdjustStock(t *testing.T) {
	stores := NewMemoryStores()
	ctx := context.Background()

	product := &models.Product{Name: "Gloves", Price: 500, Stock: 3}
	require.NoError(t, stores.Products.Create(ctx, product))

	// decrement within bounds
	require.NoError(t, stores.Products.AdjustStock(ctx, product.ID, -2))
	got, err := stores.Products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	// conditional decrement fails without touching stock
	err = stores.Products.AdjustStock(ctx, product.ID, -2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	got, err = stores.Products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	// increments are unconditional
	require.NoError(t, stores.Products.AdjustStock(ctx, product.ID, 5))
	got, err = stores.Products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Stock)

	err = stores.Products.AdjustStock(ctx, primitive.NewObjectID(), -1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProductUpdateKeepsOwnedFields(t *testing.T) {
	stores := NewMemoryStores()
	ctx := context.Background()

	product := &models.Product{Name: "Gloves", Price: 500, Stock: 10}
	require.NoError(t, stores.Products.Create(ctx, product))
	require.NoError(t, stores.Products.AddReview(ctx, product.ID,
		models.Review{UserID: primitive.NewObjectID(), Rating: 4, Comment: "ok"}, 4.0))

	// a full update must not clobber stock, reviews or rating
	edited := *product
	edited.Price = 450
	edited.Stock = 0
	edited.Reviews = nil
	edited.Rating = 0
	require.NoError(t, stores.Products.Update(ctx, &edited))

	got, err := stores.Products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 450.0, got.Price)
	assert.Equal(t, 10, got.Stock)
	assert.Len(t, got.Reviews, 1)
	assert.Equal(t, 4.0, got.Rating)
}

func TestMemoryUserDuplicateEmail(t *testing.T) {
	stores := NewMemoryStores()
	ctx := context.Background()

	require.NoError(t, stores.Users.Create(ctx, &models.User{Name: "A", Email: "a@b.c"}))
	err := stores.Users.Create(ctx, &models.User{Name: "B", Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryNotificationAudienceFilter(t *testing.T) {
	stores := NewMemoryStores()
	ctx := context.Background()
	asha := primitive.NewObjectID()
	ravi := primitive.NewObjectID()

	require.NoError(t, stores.Notifications.Create(ctx, &models.Notification{
		Title: "broadcast", Audience: models.AudienceAll,
	}))
	require.NoError(t, stores.Notifications.Create(ctx, &models.Notification{
		Title: "for asha", Audience: models.AudienceUser, UserID: &asha,
	}))

	ashaList, err := stores.Notifications.ListForUser(ctx, asha)
	require.NoError(t, err)
	assert.Len(t, ashaList, 2)

	raviList, err := stores.Notifications.ListForUser(ctx, ravi)
	require.NoError(t, err)
	require.Len(t, raviList, 1)
	assert.Equal(t, "broadcast", raviList[0].Title)
}

func TestMemoryCategorySlugUnique(t *testing.T) {
	stores := NewMemoryStores()
	ctx := context.Background()

	require.NoError(t, stores.Categories.Create(ctx, &models.Category{Name: "First Aid", Slug: "first-aid"}))
	err := stores.Categories.Create(ctx, &models.Category{Name: "First Aid", Slug: "first-aid"})
	assert.ErrorIs(t, err, ErrDuplicate)
}
