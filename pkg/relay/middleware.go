package relay

import (
	"strings"

	"github.com/Abraxas-365/mailgun/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

const claimsLocal = "claims"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*TokenClaims, error)
}

// TokenMiddleware authenticates requests with a bearer JWT.
type TokenMiddleware struct {
	tokens TokenValidator
}

// NewTokenMiddleware creates the auth middleware.
func NewTokenMiddleware(tokens TokenValidator) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid "Authorization: Bearer" token.
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return relayErrors.New(ErrUnauthorized)
		}

		claims, err := m.tokens.ValidateToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(claimsLocal, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the claims Authenticate stored on the request, if any.
func ClaimsFrom(c *fiber.Ctx) (*TokenClaims, bool) {
	claims, ok := c.Locals(claimsLocal).(*TokenClaims)
	return claims, ok && claims != nil
}

// RequestContext copies the request id into the user context so logx entries
// created with WithContext carry it.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
			c.SetUserContext(logx.ContextWithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}
