// Package service holds the business rules between the HTTP layer and
// the stores.
package service

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medimart-backend/internal/models"
)

// Identity is the resolved caller of an operation.
type Identity struct {
	UserID primitive.ObjectID
	Role   string
}

// IsAdmin reports whether the caller holds the elevated role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// Stock adjustment reason codes. Every stock write carries one so the
// inventory trail stays auditable.
const (
	StockReasonSale         = "sale"
	StockReasonCancellation = "cancellation"
	StockReasonCorrection   = "correction"
)
