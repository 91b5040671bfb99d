package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/models"
)

func TestNotificationsAudienceAndReadState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "Admin", "admin@example.com")
	asha := env.createUser(t, "Asha", "asha@example.com")
	ravi := env.createUser(t, "Ravi", "ravi@example.com")

	broadcast, err := env.notifications.Publish(ctx, admin.ID, NotificationInput{
		Title:    "Holiday closure",
		Message:  "Dispatch pauses on Friday",
		Audience: models.AudienceAll,
	})
	require.NoError(t, err)

	_, err = env.notifications.Publish(ctx, admin.ID, NotificationInput{
		Title:    "Order update",
		Message:  "Your wheelchair shipped",
		Audience: models.AudienceUser,
		UserID:   &asha.ID,
	})
	require.NoError(t, err)

	ashaList, err := env.notifications.ListForUser(ctx, asha.ID)
	require.NoError(t, err)
	assert.Len(t, ashaList, 2)

	raviList, err := env.notifications.ListForUser(ctx, ravi.ID)
	require.NoError(t, err)
	require.Len(t, raviList, 1)
	assert.Equal(t, "Holiday closure", raviList[0].Title)
	assert.False(t, raviList[0].Read)

	// mark read is reflected per user and idempotent
	require.NoError(t, env.notifications.MarkRead(ctx, broadcast.ID, ravi.ID))
	require.NoError(t, env.notifications.MarkRead(ctx, broadcast.ID, ravi.ID))

	raviList, err = env.notifications.ListForUser(ctx, ravi.ID)
	require.NoError(t, err)
	assert.True(t, raviList[0].Read)

	ashaList, err = env.notifications.ListForUser(ctx, asha.ID)
	require.NoError(t, err)
	for _, n := range ashaList {
		assert.False(t, n.Read)
	}
}

func TestNotificationValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "Admin", "admin@example.com")
	asha := env.createUser(t, "Asha", "asha@example.com")

	_, err := env.notifications.Publish(ctx, admin.ID, NotificationInput{
		Title: "x", Message: "", Audience: models.AudienceAll,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = env.notifications.Publish(ctx, admin.ID, NotificationInput{
		Title: "x", Message: "y", Audience: models.AudienceUser,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = env.notifications.Publish(ctx, admin.ID, NotificationInput{
		Title: "x", Message: "y", Audience: "team",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	// cannot mark someone else's targeted notification read
	targeted, err := env.notifications.Publish(ctx, admin.ID, NotificationInput{
		Title: "x", Message: "y", Audience: models.AudienceUser, UserID: &asha.ID,
	})
	require.NoError(t, err)
	err = env.notifications.MarkRead(ctx, targeted.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
