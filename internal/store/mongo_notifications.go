package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medimart-backend/internal/models"
)

type mongoNotificationStore struct {
	col *mongo.Collection
}

func (s *mongoNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	res, err := s.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoNotificationStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var n models.Notification
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (s *mongoNotificationStore) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"audience": models.AudienceAll},
		bson.M{"audience": models.AudienceUser, "userId": userID},
	}}
	cur, err := s.col.Find(ctx, query, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	var notifications []*models.Notification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *mongoNotificationStore) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"readBy": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
