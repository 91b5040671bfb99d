package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AudienceAll  = "all"
	AudienceUser = "user"
)

type Notification struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Message   string               `bson:"message" json:"message"`
	Audience  string               `bson:"audience" json:"audience"`
	UserID    *primitive.ObjectID  `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedBy primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	ReadBy    []primitive.ObjectID `bson:"readBy" json:"-"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// ReadByUser reports whether the user has marked the notification read.
func (n *Notification) ReadByUser(userID primitive.ObjectID) bool {
	for _, id := range n.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}
