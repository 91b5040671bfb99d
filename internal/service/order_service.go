package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/models"
	"medimart-backend/internal/store"
)

// OrderService is the order engine: validation, stock reservation,
// persistence, cancellation with stock restoration, and reads.
type OrderService struct {
	orders   store.OrderStore
	products store.ProductStore
	users    store.UserStore
}

func NewOrderService(orders store.OrderStore, products store.ProductStore, users store.UserStore) *OrderService {
	return &OrderService{orders: orders, products: products, users: users}
}

type CreateOrderItem struct {
	ProductID primitive.ObjectID `json:"product"`
	Quantity  int                `json:"quantity"`
}

type CreateOrderInput struct {
	Items           []CreateOrderItem      `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// OrderSummary is the response shape for creation and listings.
type OrderSummary struct {
	ID            primitive.ObjectID `json:"id"`
	OrderID       string             `json:"orderId"`
	TotalAmount   float64            `json:"totalAmount"`
	Status        models.OrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	Items         []models.OrderItem `json:"items"`
	PaymentStatus string             `json:"paymentStatus"`
}

// OrderDetail is the full projection returned by Get.
type OrderDetail struct {
	Order *models.Order `json:"order"`
	User  *OrderUser    `json:"user,omitempty"`
}

// OrderUser is the minimal user projection embedded in an order detail.
type OrderUser struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// Create validates the requested items, reserves stock atomically per
// item, and persists the order. Any failure releases every reservation
// already taken for this request, so a rejected order leaves no stock
// mutated and no order behind.
func (s *OrderService) Create(ctx context.Context, userID primitive.ObjectID, input CreateOrderInput) (*OrderSummary, error) {
	if len(input.Items) == 0 {
		return nil, apperr.Invalid("order must contain at least one item")
	}
	if input.ShippingAddress.Country == "" {
		input.ShippingAddress.Country = "IN"
	}
	if !input.ShippingAddress.Complete() {
		return nil, apperr.Invalid("shipping address is incomplete")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, apperr.Invalid("item quantity must be at least 1")
		}
	}

	now := time.Now()
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(input.Items))
	// product ids whose stock we have already decremented
	reserved := make([]models.OrderItem, 0, len(input.Items))

	for _, req := range input.Items {
		product, err := s.products.GetByID(ctx, req.ProductID)
		if err != nil {
			s.release(ctx, reserved)
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperr.NotFound(fmt.Sprintf("product not found: %s", req.ProductID.Hex()))
			}
			return nil, apperr.Wrap(apperr.KindInternal, "load product", err)
		}

		if err := s.adjustStock(ctx, req.ProductID, -req.Quantity, StockReasonSale); err != nil {
			s.release(ctx, reserved)
			if errors.Is(err, store.ErrInsufficientStock) {
				return nil, apperr.Conflict(fmt.Sprintf(
					"insufficient stock for %s: requested %d, only %d available",
					product.Name, req.Quantity, product.Stock))
			}
			return nil, apperr.Wrap(apperr.KindInternal, "reserve stock", err)
		}

		// price is snapshotted here; later product edits never touch it
		item := models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  req.Quantity,
		}
		items = append(items, item)
		reserved = append(reserved, item)
		total = total.Add(decimal.NewFromFloat(product.Price).
			Mul(decimal.NewFromInt(int64(req.Quantity))))
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		TotalAmount:     total.InexactFloat64(),
		Status:          models.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		StatusHistory: []models.StatusNote{{
			Status:    models.OrderStatusPending,
			Note:      "order placed",
			CreatedAt: now,
		}},
		CreatedAt: now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.release(ctx, reserved)
		return nil, apperr.Wrap(apperr.KindInternal, "persist order", err)
	}

	return summarize(order), nil
}

// release returns already-reserved units after a failed creation.
func (s *OrderService) release(ctx context.Context, reserved []models.OrderItem) {
	for _, item := range reserved {
		if err := s.adjustStock(ctx, item.ProductID, item.Quantity, StockReasonCorrection); err != nil {
			zap.L().Error("failed to release reserved stock",
				zap.String("productId", item.ProductID.Hex()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}
}

// Cancel transitions a pending order owned by the caller to cancelled
// and restores each item's stock.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID primitive.ObjectID) (*OrderSummary, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load order", err)
	}
	if order.UserID != userID {
		return nil, apperr.Forbidden("order belongs to another user")
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperr.Invalid(fmt.Sprintf("only pending orders can be cancelled, current status is %s", order.Status))
	}

	order.Status = models.OrderStatusCancelled
	order.StatusHistory = append(order.StatusHistory, models.StatusNote{
		Status:    models.OrderStatusCancelled,
		Note:      "cancelled by customer",
		CreatedAt: time.Now(),
	})
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "persist cancellation", err)
	}

	// best-effort per item; a failed restore is logged, not fatal
	for _, item := range order.Items {
		if err := s.adjustStock(ctx, item.ProductID, item.Quantity, StockReasonCancellation); err != nil {
			zap.L().Error("failed to restore stock on cancellation",
				zap.String("orderId", order.ID.Hex()),
				zap.String("productId", item.ProductID.Hex()),
				zap.Error(err))
		}
	}
	return summarize(order), nil
}

// Get returns the full order projection to its owner or an admin.
func (s *OrderService) Get(ctx context.Context, requester Identity, orderID primitive.ObjectID) (*OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load order", err)
	}
	if order.UserID != requester.UserID && !requester.IsAdmin() {
		return nil, apperr.Forbidden("not allowed to view this order")
	}

	detail := &OrderDetail{Order: order}
	if user, err := s.users.GetByID(ctx, order.UserID); err == nil {
		detail.User = &OrderUser{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return detail, nil
}

// ListMine returns summaries of the caller's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]*OrderSummary, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list orders", err)
	}
	summaries := make([]*OrderSummary, len(orders))
	for i, o := range orders {
		summaries[i] = summarize(o)
	}
	return summaries, nil
}

// ListAll returns every order for admin fulfillment views.
func (s *OrderService) ListAll(ctx context.Context) ([]*models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list orders", err)
	}
	return orders, nil
}

// UpdateStatus moves an order one step along the fulfillment chain.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, next models.OrderStatus) (*OrderSummary, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load order", err)
	}
	if order.Status.IsTerminal() || !models.CanTransition(order.Status, next) {
		return nil, apperr.Invalid(fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	order.Status = next
	if next == models.OrderStatusDelivered {
		order.PaymentStatus = models.PaymentStatusPaid
	}
	order.StatusHistory = append(order.StatusHistory, models.StatusNote{
		Status:    next,
		Note:      "status updated",
		CreatedAt: time.Now(),
	})
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "persist status update", err)
	}
	return summarize(order), nil
}

// adjustStock is the single chokepoint for stock writes from order
// flows; every mutation is audit-logged with its reason.
func (s *OrderService) adjustStock(ctx context.Context, productID primitive.ObjectID, delta int, reason string) error {
	if err := s.products.AdjustStock(ctx, productID, delta); err != nil {
		return err
	}
	zap.L().Info("stock adjusted",
		zap.String("productId", productID.Hex()),
		zap.Int("delta", delta),
		zap.String("reason", reason))
	return nil
}

func summarize(o *models.Order) *OrderSummary {
	return &OrderSummary{
		ID:            o.ID,
		OrderID:       o.DisplayID(),
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		Items:         o.Items,
		PaymentStatus: o.PaymentStatus,
	}
}
