package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medimart-backend/internal/models"
)

type mongoProductStore struct {
	col *mongo.Collection
}

func (s *mongoProductStore) Create(ctx context.Context, p *models.Product) error {
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoProductStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *mongoProductStore) List(ctx context.Context, filter ProductFilter) ([]*models.Product, error) {
	query := bson.M{}
	if filter.CategoryID != nil {
		query["categoryId"] = *filter.CategoryID
	}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}

	cur, err := s.col.Find(ctx, query, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	var products []*models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *mongoProductStore) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now()
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"mrp":         p.MRP,
		"discount":    p.Discount,
		"categoryId":  p.CategoryID,
		"images":      p.Images,
		"featured":    p.Featured,
		"updatedAt":   p.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoProductStore) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		// Conditional decrement: only while enough units remain, so a
		// concurrent request cannot oversell.
		filter["stock"] = bson.M{"$gte": -delta}
	}
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stock": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if delta < 0 {
			n, err := s.col.CountDocuments(ctx, bson.M{"_id": id})
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrInsufficientStock
			}
		}
		return ErrNotFound
	}
	return nil
}

func (s *mongoProductStore) AddReview(ctx context.Context, id primitive.ObjectID, r models.Review, rating float64) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"reviews": r},
		"$set":  bson.M{"rating": rating, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoProductStore) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"categoryId": categoryID})
}

func (s *mongoProductStore) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

func (s *mongoProductStore) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"stock": bson.M{"$lt": threshold}})
}

type mongoCategoryStore struct {
	col *mongo.Collection
}

func (s *mongoCategoryStore) Create(ctx context.Context, c *models.Category) error {
	res, err := s.col.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoCategoryStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *mongoCategoryStore) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := s.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *mongoCategoryStore) List(ctx context.Context) ([]*models.Category, error) {
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var categories []*models.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *mongoCategoryStore) Update(ctx context.Context, c *models.Category) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": bson.M{
		"name":         c.Name,
		"slug":         c.Slug,
		"parentId":     c.ParentID,
		"featured":     c.Featured,
		"displayOrder": c.DisplayOrder,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoCategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoCategoryStore) CountChildren(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"parentId": parentID})
}
