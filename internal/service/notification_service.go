package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/models"
	"medimart-backend/internal/store"
)

// NotificationService manages broadcast and targeted messages with
// per-user read state.
type NotificationService struct {
	notifications store.NotificationStore
	users         store.UserStore
}

func NewNotificationService(notifications store.NotificationStore, users store.UserStore) *NotificationService {
	return &NotificationService{notifications: notifications, users: users}
}

type NotificationInput struct {
	Title    string              `json:"title"`
	Message  string              `json:"message"`
	Audience string              `json:"audience"`
	UserID   *primitive.ObjectID `json:"userId,omitempty"`
}

// Publish creates a broadcast or a single-user notification.
func (s *NotificationService) Publish(ctx context.Context, createdBy primitive.ObjectID, input NotificationInput) (*models.Notification, error) {
	if input.Title == "" || input.Message == "" {
		return nil, apperr.Invalid("title and message are required")
	}
	switch input.Audience {
	case models.AudienceAll:
		input.UserID = nil
	case models.AudienceUser:
		if input.UserID == nil {
			return nil, apperr.Invalid("targeted notification requires a userId")
		}
		if _, err := s.users.GetByID(ctx, *input.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperr.Invalid("target user does not exist")
			}
			return nil, apperr.Wrap(apperr.KindInternal, "load target user", err)
		}
	default:
		return nil, apperr.Invalid("audience must be all or user")
	}

	n := &models.Notification{
		Title:     input.Title,
		Message:   input.Message,
		Audience:  input.Audience,
		UserID:    input.UserID,
		CreatedBy: createdBy,
		ReadBy:    []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "create notification", err)
	}
	return n, nil
}

// UserNotification is a notification with the caller's read flag.
type UserNotification struct {
	*models.Notification
	Read bool `json:"read"`
}

// ListForUser returns broadcasts plus the caller's targeted messages.
func (s *NotificationService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*UserNotification, error) {
	notifications, err := s.notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list notifications", err)
	}
	out := make([]*UserNotification, len(notifications))
	for i, n := range notifications {
		out[i] = &UserNotification{Notification: n, Read: n.ReadByUser(userID)}
	}
	return out, nil
}

// MarkRead records that the caller has read the notification. Repeat
// calls are no-ops.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("notification not found")
		}
		return apperr.Wrap(apperr.KindInternal, "load notification", err)
	}
	if n.Audience == models.AudienceUser && (n.UserID == nil || *n.UserID != userID) {
		return apperr.Forbidden("notification targets another user")
	}
	if err := s.notifications.MarkRead(ctx, id, userID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "mark read", err)
	}
	return nil
}
