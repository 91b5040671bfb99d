package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "First Aid", "first-aid"},
		{"punctuation", "Syringes & Needles", "syringes-needles"},
		{"already clean", "diagnostics", "diagnostics"},
		{"leading trailing", "  Mobility Aids  ", "mobility-aids"},
		{"numbers", "N95 Masks 20pc", "n95-masks-20pc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestComputeDiscount(t *testing.T) {
	cases := []struct {
		name  string
		price float64
		mrp   float64
		want  int
	}{
		{"quarter off", 75, 100, 25},
		{"no mrp", 75, 0, 0},
		{"price above mrp", 120, 100, 0},
		{"equal", 100, 100, 0},
		{"rounds", 66.6, 100, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeDiscount(tc.price, tc.mrp))
		})
	}
}

func TestRatingMean(t *testing.T) {
	assert.Equal(t, 0.0, RatingMean(nil))
	assert.Equal(t, 4.5, RatingMean([]Review{{Rating: 4}, {Rating: 5}}))
	// 4+3+5 = 12 / 3 = 4.0
	assert.Equal(t, 4.0, RatingMean([]Review{{Rating: 4}, {Rating: 3}, {Rating: 5}}))
	// 5+4 + 4 = 13 / 3 = 4.333... -> 4.3
	assert.Equal(t, 4.3, RatingMean([]Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}))
}

func TestDisplayID(t *testing.T) {
	id, err := primitive.ObjectIDFromHex("65f1c0ffee00deadbeefab12")
	assert.NoError(t, err)
	o := Order{ID: id, CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	assert.Equal(t, "ORD-2026-EFAB12", o.DisplayID())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusProcessing))
	assert.True(t, CanTransition(OrderStatusProcessing, OrderStatusShipped))
	assert.True(t, CanTransition(OrderStatusShipped, OrderStatusDelivered))

	assert.False(t, CanTransition(OrderStatusPending, OrderStatusShipped))
	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusProcessing))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusProcessing))
	assert.False(t, CanTransition(OrderStatusShipped, OrderStatusPending))
}

func TestShippingAddressComplete(t *testing.T) {
	full := ShippingAddress{
		Name: "A", Street: "B", City: "C", State: "D", PostalCode: "E", Phone: "F",
	}
	assert.True(t, full.Complete())

	missing := full
	missing.PostalCode = ""
	assert.False(t, missing.Complete())
}
