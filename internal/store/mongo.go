package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medimart-backend/internal/config"
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// NewMongoStores wires every store onto one database and ensures the
// unique indexes the stores rely on.
func NewMongoStores(ctx context.Context, client *mongo.Client, dbName string) (*Stores, error) {
	db := client.Database(dbName)

	users := db.Collection("users")
	categories := db.Collection("categories")

	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	_, err = categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &Stores{
		Users:         &mongoUserStore{col: users},
		Products:      &mongoProductStore{col: db.Collection("products")},
		Categories:    &mongoCategoryStore{col: categories},
		Orders:        &mongoOrderStore{col: db.Collection("orders")},
		Notifications: &mongoNotificationStore{col: db.Collection("notifications")},
	}, nil
}
