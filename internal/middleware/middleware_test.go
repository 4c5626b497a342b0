package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/middleware"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuth(t *testing.T) {
	tokens, err := service.NewJWTService(&config.AuthConfig{JWTSecret: "test-secret", ExpirationHours: 1})
	require.NoError(t, err)
	id := uuid.New()
	token, _, err := tokens.GenerateToken(id, "rev@example.com")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", middleware.JWTAuth(tokens), func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(claims.InterviewerID.String())
	})

	testCases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid token", header: "Bearer " + token, want: fiber.StatusOK},
		{name: "missing header", want: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, want: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", want: fiber.StatusUnauthorized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/ping", middleware.RateLimiter(2, time.Minute), func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	codes := make([]int, 0, 3)
	for range 3 {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, codes)
}

func TestMetricsBuilder(t *testing.T) {
	reg := prometheus.NewRegistry()
	app := fiber.New()
	app.Use(middleware.NewMetricsBuilder(reg).Build())
	app.Get("/candidates/:id", func(c *fiber.Ctx) error {
		return c.SendString(c.Params("id"))
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "taken")
	})

	for _, path := range []string{"/candidates/a", "/candidates/b", "/boom"} {
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
	}

	count, err := testutil.GatherAndCount(reg, "interviewer_http_requests_total")
	require.NoError(t, err)
	// both candidate requests share the route template label
	assert.Equal(t, 2, count)
}
