package middleware

import (
	"strings"

	"ripple/internal/config"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// Identity carries the identity-provider claims extracted from a session token.
// The subject is the provider's stable user reference, not a local user ID.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// IdentityLocalKey is the Fiber locals key the verified Identity is stored under.
const IdentityLocalKey = "identity"

// ResolveIdentity verifies the Bearer session token on the request and
// returns the identity claims it carries. Credentials are issued by the
// external identity provider; this only verifies the shared-secret
// signature and never mints tokens.
func ResolveIdentity(c *fiber.Ctx) (*Identity, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, models.NewUnauthenticatedError("Authorization header required")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, models.NewUnauthenticatedError("Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, models.NewUnauthenticatedError("Invalid or expired session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthenticatedError("Invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, models.NewUnauthenticatedError("Invalid token structure - missing subject")
	}

	identity := &Identity{Subject: sub}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := claims["picture"].(string); ok {
		identity.Picture = picture
	}

	return identity, nil
}

// IdentityRequired rejects requests without a valid session token and
// stores the verified Identity in Fiber locals for downstream handlers.
func IdentityRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := ResolveIdentity(c)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		c.Locals(IdentityLocalKey, identity)
		return c.Next()
	}
}
