package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/sevenboard/board-api/pkg/util"
)

const sessionKey = "auth_session"

// SessionMiddleware validates bearer tokens on dashboard-side routes
// and exposes the session id to handlers.
type SessionMiddleware struct {
	tokens *TokenManager
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(sessionKey, claims.SessionID)
	return c.Next()
}

// SessionFromContext retrieves the authenticated session id.
func SessionFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return "", false
	}
	sessionID, ok := val.(string)
	return sessionID, ok && sessionID != ""
}
