package service

import (
	"context"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/models"
	"medimart-backend/internal/store"
)

// lowStockThreshold marks products worth restocking attention.
const lowStockThreshold = 10

// AnalyticsService produces the admin dashboard aggregates.
type AnalyticsService struct {
	orders   store.OrderStore
	products store.ProductStore
	users    store.UserStore
}

func NewAnalyticsService(orders store.OrderStore, products store.ProductStore, users store.UserStore) *AnalyticsService {
	return &AnalyticsService{orders: orders, products: products, users: users}
}

// Summary is the dashboard headline block.
type Summary struct {
	TotalOrders    int64                        `json:"totalOrders"`
	Revenue        float64                      `json:"revenue"`
	TotalUsers     int64                        `json:"totalUsers"`
	TotalProducts  int64                        `json:"totalProducts"`
	LowStock       int64                        `json:"lowStockProducts"`
	OrdersByStatus map[models.OrderStatus]int64 `json:"ordersByStatus"`
}

func (s *AnalyticsService) Summary(ctx context.Context) (*Summary, error) {
	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "count orders", err)
	}
	var totalOrders int64
	for _, n := range byStatus {
		totalOrders += n
	}
	revenue, err := s.orders.Revenue(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "sum revenue", err)
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "count users", err)
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "count products", err)
	}
	lowStock, err := s.products.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "count low stock", err)
	}
	return &Summary{
		TotalOrders:    totalOrders,
		Revenue:        revenue,
		TotalUsers:     users,
		TotalProducts:  products,
		LowStock:       lowStock,
		OrdersByStatus: byStatus,
	}, nil
}

// TopProducts returns the best sellers by ordered quantity.
func (s *AnalyticsService) TopProducts(ctx context.Context, limit int) ([]store.ProductSales, error) {
	rows, err := s.orders.TopProducts(ctx, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "aggregate top products", err)
	}
	return rows, nil
}
