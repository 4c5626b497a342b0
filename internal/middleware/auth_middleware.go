package middleware

import (
	"strings"

	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/fadilmartias/ai-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
)

const localsClaims = "interviewer_claims"

// JWTAuth requires a valid "Authorization: Bearer <token>" header and stores
// the token claims for ClaimsFrom.
func JWTAuth(tokens *service.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok {
			return util.AppErrorResponse(c, "unauthorized", errs.Unauthorized("missing bearer token"))
		}
		claims, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			return util.AppErrorResponse(c, "unauthorized", err)
		}
		c.Locals(localsClaims, claims)
		return c.Next()
	}
}

func ClaimsFrom(c *fiber.Ctx) (*service.Claims, bool) {
	claims, ok := c.Locals(localsClaims).(*service.Claims)
	return claims, ok
}
