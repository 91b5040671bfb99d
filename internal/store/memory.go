package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medimart-backend/internal/models"
)

// NewMemoryStores builds a thread-safe in-memory Stores bundle with the
// same semantics as the MongoDB implementation, including the
// conditional stock decrement. Used by tests and standalone runs.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:         &memoryUserStore{users: map[primitive.ObjectID]models.User{}},
		Products:      &memoryProductStore{products: map[primitive.ObjectID]models.Product{}},
		Categories:    &memoryCategoryStore{categories: map[primitive.ObjectID]models.Category{}},
		Orders:        &memoryOrderStore{orders: map[primitive.ObjectID]models.Order{}},
		Notifications: &memoryNotificationStore{notifications: map[primitive.ObjectID]models.Notification{}},
	}
}

// compile-time interface checks
var (
	_ UserStore         = (*memoryUserStore)(nil)
	_ ProductStore      = (*memoryProductStore)(nil)
	_ CategoryStore     = (*memoryCategoryStore)(nil)
	_ OrderStore        = (*memoryOrderStore)(nil)
	_ NotificationStore = (*memoryNotificationStore)(nil)
)

type memoryUserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func (s *memoryUserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *memoryUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUserStore) Update(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = u.Name
	existing.Phone = u.Phone
	existing.Role = u.Role
	s.users[u.ID] = existing
	return nil
}

func (s *memoryUserStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

type memoryProductStore struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
}

func cloneProduct(p models.Product) models.Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.Reviews = append([]models.Review(nil), p.Reviews...)
	return out
}

func (s *memoryProductStore) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = cloneProduct(*p)
	return nil
}

func (s *memoryProductStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneProduct(p)
	return &out, nil
}

func (s *memoryProductStore) List(ctx context.Context, filter ProductFilter) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*models.Product
	for _, p := range s.products {
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out := cloneProduct(p)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (s *memoryProductStore) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[p.ID]
	if !ok {
		return ErrNotFound
	}
	updated := cloneProduct(*p)
	// stock and reviews are owned by AdjustStock/AddReview
	updated.Stock = existing.Stock
	updated.Reviews = existing.Reviews
	updated.Rating = existing.Rating
	s.products[p.ID] = updated
	return nil
}

func (s *memoryProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *memoryProductStore) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	if delta < 0 && p.Stock < -delta {
		return ErrInsufficientStock
	}
	p.Stock += delta
	s.products[id] = p
	return nil
}

func (s *memoryProductStore) AddReview(ctx context.Context, id primitive.ObjectID, r models.Review, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	p.Reviews = append(append([]models.Review(nil), p.Reviews...), r)
	p.Rating = rating
	s.products[id] = p
	return nil
}

func (s *memoryProductStore) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (s *memoryProductStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func (s *memoryProductStore) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.products {
		if p.Stock < threshold {
			n++
		}
	}
	return n, nil
}

type memoryCategoryStore struct {
	mu         sync.RWMutex
	categories map[primitive.ObjectID]models.Category
}

func (s *memoryCategoryStore) Create(ctx context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Slug == c.Slug {
			return ErrDuplicate
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *memoryCategoryStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *memoryCategoryStore) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryCategoryStore) List(ctx context.Context) ([]*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*models.Category
	for _, c := range s.categories {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DisplayOrder != list[j].DisplayOrder {
			return list[i].DisplayOrder < list[j].DisplayOrder
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (s *memoryCategoryStore) Update(ctx context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range s.categories {
		if id != c.ID && existing.Slug == c.Slug {
			return ErrDuplicate
		}
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *memoryCategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *memoryCategoryStore) CountChildren(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, c := range s.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

type memoryOrderStore struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]models.Order
}

func cloneOrder(o models.Order) models.Order {
	out := o
	out.Items = append([]models.OrderItem(nil), o.Items...)
	out.StatusHistory = append([]models.StatusNote(nil), o.StatusHistory...)
	return out
}

func (s *memoryOrderStore) Create(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (s *memoryOrderStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneOrder(o)
	return &out, nil
}

func (s *memoryOrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out := cloneOrder(o)
			list = append(list, &out)
		}
	}
	sortOrders(list)
	return list, nil
}

func (s *memoryOrderStore) ListAll(ctx context.Context) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*models.Order
	for _, o := range s.orders {
		out := cloneOrder(o)
		list = append(list, &out)
	}
	sortOrders(list)
	return list, nil
}

func sortOrders(list []*models.Order) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

func (s *memoryOrderStore) Update(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.orders[o.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Status = o.Status
	existing.PaymentStatus = o.PaymentStatus
	existing.StatusHistory = append([]models.StatusNote(nil), o.StatusHistory...)
	s.orders[o.ID] = existing
	return nil
}

func (s *memoryOrderStore) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[models.OrderStatus]int64{}
	for _, o := range s.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (s *memoryOrderStore) Revenue(ctx context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, o := range s.orders {
		if o.Status != models.OrderStatusCancelled {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func (s *memoryOrderStore) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	byProduct := map[primitive.ObjectID]*ProductSales{}
	for _, o := range s.orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		for _, item := range o.Items {
			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &ProductSales{ProductID: item.ProductID, Name: item.Name}
				byProduct[item.ProductID] = row
			}
			row.Quantity += item.Quantity
			row.Revenue += item.Price * float64(item.Quantity)
		}
	}
	rows := make([]ProductSales, 0, len(byProduct))
	for _, row := range byProduct {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Quantity > rows[j].Quantity })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type memoryNotificationStore struct {
	mu            sync.RWMutex
	notifications map[primitive.ObjectID]models.Notification
}

func (s *memoryNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	out := *n
	out.ReadBy = append([]primitive.ObjectID(nil), n.ReadBy...)
	s.notifications[n.ID] = out
	return nil
}

func (s *memoryNotificationStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := n
	out.ReadBy = append([]primitive.ObjectID(nil), n.ReadBy...)
	return &out, nil
}

func (s *memoryNotificationStore) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*models.Notification
	for _, n := range s.notifications {
		if n.Audience == models.AudienceAll ||
			(n.Audience == models.AudienceUser && n.UserID != nil && *n.UserID == userID) {
			out := n
			out.ReadBy = append([]primitive.ObjectID(nil), n.ReadBy...)
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (s *memoryNotificationStore) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return ErrNotFound
	}
	if !n.ReadByUser(userID) {
		n.ReadBy = append(append([]primitive.ObjectID(nil), n.ReadBy...), userID)
		s.notifications[id] = n
	}
	return nil
}
