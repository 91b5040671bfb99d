package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/models"
	"medimart-backend/internal/store"
)

// CatalogService manages products, categories and reviews.
type CatalogService struct {
	products   store.ProductStore
	categories store.CategoryStore
	users      store.UserStore
}

func NewCatalogService(products store.ProductStore, categories store.CategoryStore, users store.UserStore) *CatalogService {
	return &CatalogService{products: products, categories: categories, users: users}
}

// ListFilter narrows the public product listing.
type ListFilter struct {
	CategorySlug string
	Search       string
	Featured     *bool
}

func (s *CatalogService) ListProducts(ctx context.Context, filter ListFilter) ([]*models.Product, error) {
	sf := store.ProductFilter{Search: filter.Search, Featured: filter.Featured}
	if filter.CategorySlug != "" {
		cat, err := s.categories.GetBySlug(ctx, filter.CategorySlug)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperr.NotFound("category not found")
			}
			return nil, apperr.Wrap(apperr.KindInternal, "load category", err)
		}
		sf.CategoryID = &cat.ID
	}
	products, err := s.products.List(ctx, sf)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list products", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load product", err)
	}
	return product, nil
}

type ProductInput struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	MRP         float64            `json:"mrp"`
	Stock       int                `json:"stock"`
	CategoryID  primitive.ObjectID `json:"categoryId"`
	Images      []string           `json:"images"`
	Featured    bool               `json:"featured"`
}

func (s *CatalogService) validateProductInput(ctx context.Context, input ProductInput) error {
	if input.Name == "" {
		return apperr.Invalid("product name is required")
	}
	if input.Price <= 0 {
		return apperr.Invalid("price must be positive")
	}
	if input.Stock < 0 {
		return apperr.Invalid("stock must not be negative")
	}
	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.Invalid("category does not exist")
		}
		return apperr.Wrap(apperr.KindInternal, "load category", err)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(ctx, input); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		MRP:         input.MRP,
		Discount:    models.ComputeDiscount(input.Price, input.MRP),
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		Images:      input.Images,
		Reviews:     []models.Review{},
		Featured:    input.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "create product", err)
	}
	return product, nil
}

// UpdateProduct rewrites a product's editable fields. Stock changes are
// applied as a correction through the stock chokepoint, not overwritten.
func (s *CatalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, input ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(ctx, input); err != nil {
		return nil, err
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.MRP = input.MRP
	product.Discount = models.ComputeDiscount(input.Price, input.MRP)
	product.CategoryID = input.CategoryID
	product.Images = input.Images
	product.Featured = input.Featured
	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "update product", err)
	}

	if delta := input.Stock - product.Stock; delta != 0 {
		if err := s.products.AdjustStock(ctx, id, delta); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "adjust stock", err)
		}
		zap.L().Info("stock adjusted",
			zap.String("productId", id.Hex()),
			zap.Int("delta", delta),
			zap.String("reason", StockReasonCorrection))
		product.Stock = input.Stock
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("product not found")
		}
		return apperr.Wrap(apperr.KindInternal, "delete product", err)
	}
	return nil
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AddReview appends a review and recomputes the product rating as the
// one-decimal mean of all review ratings.
func (s *CatalogService) AddReview(ctx context.Context, userID, productID primitive.ObjectID, input ReviewInput) (*models.Product, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperr.Invalid("rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, apperr.Invalid("review comment must not be empty")
	}
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.HasReviewBy(userID) {
		return nil, apperr.Conflict("you have already reviewed this product")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load user", err)
	}

	review := models.Review{
		UserID:    userID,
		Name:      user.Name,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: time.Now(),
	}
	product.Reviews = append(product.Reviews, review)
	product.Rating = models.RatingMean(product.Reviews)
	if err := s.products.AddReview(ctx, productID, review, product.Rating); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "save review", err)
	}
	return product, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list categories", err)
	}
	return categories, nil
}

type CategoryInput struct {
	Name         string              `json:"name"`
	ParentID     *primitive.ObjectID `json:"parentId,omitempty"`
	Featured     bool                `json:"featured"`
	DisplayOrder int                 `json:"displayOrder"`
}

func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, apperr.Invalid("category name is required")
	}
	if input.ParentID != nil {
		if _, err := s.categories.GetByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperr.Invalid("parent category does not exist")
			}
			return nil, apperr.Wrap(apperr.KindInternal, "load parent category", err)
		}
	}
	category := &models.Category{
		Name:         input.Name,
		Slug:         models.Slugify(input.Name),
		ParentID:     input.ParentID,
		Featured:     input.Featured,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("category with this name already exists")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "create category", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id primitive.ObjectID, input CategoryInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, apperr.Invalid("category name is required")
	}
	if input.ParentID != nil && *input.ParentID == id {
		return nil, apperr.Invalid("category cannot be its own parent")
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load category", err)
	}

	category.Name = input.Name
	category.Slug = models.Slugify(input.Name)
	category.ParentID = input.ParentID
	category.Featured = input.Featured
	category.DisplayOrder = input.DisplayOrder
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("category with this name already exists")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "update category", err)
	}
	return category, nil
}

// DeleteCategory removes a category unless products or child categories
// still reference it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("category not found")
		}
		return apperr.Wrap(apperr.KindInternal, "load category", err)
	}
	products, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "count products", err)
	}
	if products > 0 {
		return apperr.Conflict("category still has products")
	}
	children, err := s.categories.CountChildren(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "count child categories", err)
	}
	if children > 0 {
		return apperr.Conflict("category still has child categories")
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete category", err)
	}
	return nil
}
