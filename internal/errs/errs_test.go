package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := NotFound("session", "abc")
	wrapped := fmt.Errorf("submit answer: %w", err)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrConflict))
	assert.Equal(t, "session not found (abc)", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: NotFound("candidate", "1"), want: fiber.StatusNotFound},
		{name: "conflict", err: Conflict("session", "1", "session abandoned"), want: fiber.StatusConflict},
		{name: "validation", err: Validation("bad input"), want: fiber.StatusBadRequest},
		{name: "unauthorized", err: Unauthorized("bad token"), want: fiber.StatusUnauthorized},
		{name: "upstream format", err: UpstreamFormat("score", errors.New("eof")), want: fiber.StatusBadGateway},
		{name: "upstream", err: Upstream("score", false, errors.New("boom")), want: fiber.StatusBadGateway},
		{name: "upstream timeout", err: UpstreamTimeout("score", context.DeadlineExceeded), want: fiber.StatusGatewayTimeout},
		{name: "persistence", err: Persistence("save", errors.New("db down")), want: fiber.StatusInternalServerError},
		{name: "fiber error", err: fiber.NewError(fiber.StatusTeapot, "tea"), want: fiber.StatusTeapot},
		{name: "plain", err: errors.New("plain"), want: fiber.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(UpstreamTimeout("score", context.DeadlineExceeded)))
	assert.True(t, Retryable(fmt.Errorf("wrap: %w", Upstream("score", true, errors.New("503")))))
	assert.False(t, Retryable(Upstream("score", false, errors.New("400"))))
	assert.False(t, Retryable(UpstreamFormat("score", errors.New("bad json"))))
	assert.False(t, Retryable(errors.New("plain")))
}

func TestUnwrapKeepsCause(t *testing.T) {
	err := UpstreamTimeout("generate questions", context.DeadlineExceeded)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, KindUpstreamTimeout, KindOf(err))
}
