package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/config"
)

const (
	UserIDKey      = "user_id"
	DisplayNameKey = "display_name"
	EmailKey       = "email"
)

// SessionClaims is the token payload issued by the identity provider. The
// subject carries the user's UUID.
type SessionClaims struct {
	DisplayName string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// BearerAuth verifies the Authorization bearer token and stores the
// caller's identity in request locals. Handlers behind it can assume a
// valid, non-expired session.
func BearerAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization header",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authorization header",
			})
		}

		claims, err := ParseSessionToken(parts[1], cfg.Server.JWTSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token subject",
			})
		}

		c.Locals(UserIDKey, userID)
		c.Locals(DisplayNameKey, claims.DisplayName)
		c.Locals(EmailKey, claims.Email)

		return c.Next()
	}
}

// ParseSessionToken validates an HS256 session token and returns its
// claims. Expiry is enforced by the jwt library.
func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// GetUserID returns the authenticated caller's ID, or uuid.Nil when the
// request did not pass BearerAuth.
func GetUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

func GetDisplayName(c *fiber.Ctx) string {
	name, ok := c.Locals(DisplayNameKey).(string)
	if !ok {
		return ""
	}
	return name
}

func GetEmail(c *fiber.Ctx) string {
	email, ok := c.Locals(EmailKey).(string)
	if !ok {
		return ""
	}
	return email
}
