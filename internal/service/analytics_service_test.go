package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medimart-backend/internal/models"
)

func TestAnalyticsSummaryAndTopProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "Asha", "asha@example.com")
	category := env.createCategory(t, "Diagnostics")
	thermometer := env.createProduct(t, "Thermometer", 100, 0, 50, category.ID)
	oximeter := env.createProduct(t, "Oximeter", 1000, 0, 5, category.ID)

	first, err := env.orders.Create(ctx, user.ID, CreateOrderInput{
		Items: []CreateOrderItem{
			{ProductID: thermometer.ID, Quantity: 4},
			{ProductID: oximeter.ID, Quantity: 1},
		},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	cancelled, err := env.orders.Create(ctx, user.ID, CreateOrderInput{
		Items:           []CreateOrderItem{{ProductID: thermometer.ID, Quantity: 2}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	_, err = env.orders.Cancel(ctx, user.ID, cancelled.ID)
	require.NoError(t, err)

	summary, err := env.analytics.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalOrders)
	// cancelled orders do not count toward revenue
	assert.Equal(t, first.TotalAmount, summary.Revenue)
	assert.Equal(t, int64(1), summary.TotalUsers)
	assert.Equal(t, int64(2), summary.TotalProducts)
	// oximeter has 4 left, under the restock threshold
	assert.Equal(t, int64(1), summary.LowStock)
	assert.Equal(t, int64(1), summary.OrdersByStatus[models.OrderStatusPending])
	assert.Equal(t, int64(1), summary.OrdersByStatus[models.OrderStatusCancelled])

	top, err := env.analytics.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, thermometer.ID, top[0].ProductID)
	assert.Equal(t, 4, top[0].Quantity)
	assert.Equal(t, 400.0, top[0].Revenue)
	assert.Equal(t, oximeter.ID, top[1].ProductID)
}
