package store

import (
	"context"
	"fmt"

	"medimart-backend/internal/config"
)

// Open builds the Stores bundle selected by cfg.StoreBackend: "mongo"
// or "memory". The returned close func is a no-op for memory.
func Open(ctx context.Context, cfg *config.Config) (*Stores, func(context.Context) error, error) {
	switch cfg.StoreBackend {
	case "memory", "mem":
		return NewMemoryStores(), func(context.Context) error { return nil }, nil
	case "mongo", "":
		client, err := Connect(ctx, &cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		stores, err := NewMongoStores(ctx, client, cfg.Mongo.Database)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return stores, client.Disconnect, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}
