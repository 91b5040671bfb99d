package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Invalid("bad input"), http.StatusBadRequest},
		{"conflict maps to 400", Conflict("insufficient stock"), http.StatusBadRequest},
		{"not found", NotFound("no such order"), http.StatusNotFound},
		{"forbidden", Forbidden("not yours"), http.StatusForbidden},
		{"unauthorized", New(KindUnauthorized, "bad credentials"), http.StatusUnauthorized},
		{"internal", Wrap(KindInternal, "db down", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
		{"wrapped classified error", fmt.Errorf("handler: %w", NotFound("gone")), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "bad input", Message(Invalid("bad input"), false))

	internal := Wrap(KindInternal, "db down", errors.New("connection refused"))
	assert.Equal(t, "internal server error", Message(internal, false))
	assert.Contains(t, Message(internal, true), "connection refused")

	plain := errors.New("oops")
	assert.Equal(t, "internal server error", Message(plain, false))
	assert.Equal(t, "oops", Message(plain, true))
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Wrap(KindConflict, "outer", inner)
	assert.True(t, errors.Is(err, inner))
	assert.Equal(t, KindConflict, KindOf(err))
}
