// Package store defines the persistence interfaces consumed by the
// services, a MongoDB implementation, and an in-memory implementation
// used in tests and standalone development.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medimart-backend/internal/models"
)

var (
	// ErrNotFound is returned when a document cannot be resolved.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique-key collisions (email, slug).
	ErrDuplicate = errors.New("duplicate")
	// ErrInsufficientStock is returned when a conditional decrement
	// finds fewer units than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *primitive.ObjectID
	Search     string
	Featured   *bool
}

// ProductSales is one row of the top-products aggregation.
type ProductSales struct {
	ProductID primitive.ObjectID `bson:"_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Revenue   float64            `bson:"revenue" json:"revenue"`
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Count(ctx context.Context) (int64, error)
}

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AdjustStock changes a product's stock by delta. Negative deltas
	// are conditional: the write succeeds only while stock >= -delta,
	// otherwise ErrInsufficientStock and no mutation.
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error

	// AddReview appends a review and stores the recomputed rating in
	// one write.
	AddReview(ctx context.Context, id primitive.ObjectID, r models.Review, rating float64) error

	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountChildren(ctx context.Context, parentID primitive.ObjectID) (int64, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
	Update(ctx context.Context, o *models.Order) error

	CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error)
	// Revenue sums totalAmount across non-cancelled orders.
	Revenue(ctx context.Context) (float64, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	// ListForUser returns broadcasts plus notifications targeted at the
	// user, newest first.
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) error
}

// Stores bundles every store behind one wiring point.
type Stores struct {
	Users         UserStore
	Products      ProductStore
	Categories    CategoryStore
	Orders        OrderStore
	Notifications NotificationStore
}
