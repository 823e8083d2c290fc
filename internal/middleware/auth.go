// Package middleware provides authentication, logging, rate limiting and
// tracing middleware for the HTTP layer.
package middleware

import (
	"strconv"
	"strings"
	"time"

	"quizmate/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer and TokenAudience are pinned into every access token and
// checked on every request so tokens minted for other deployments are
// rejected outright.
const (
	TokenIssuer   = "quizmate-api"
	TokenAudience = "quizmate-app"
)

var cfg *config.Config

// InitMiddleware wires the shared config into the middleware package.
func InitMiddleware(c *config.Config) {
	cfg = c
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

// parseUserToken validates an access token and returns the user id carried
// in its subject claim along with the token's issue time. Sensitive handlers
// use the issue time to demand a fresh login.
func parseUserToken(tokenString string) (uint, time.Time, bool) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
	)
	if err != nil || !token.Valid {
		return 0, time.Time{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, time.Time{}, false
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, time.Time{}, false
	}

	var issuedAt time.Time
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		issuedAt = iat.Time
	}
	return uint(userID), issuedAt, true
}

// AuthRequired enforces a valid Bearer token and stores the user id in
// c.Locals("userID").
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return unauthorized(c, "Invalid authorization header format")
	}

	userID, issuedAt, ok := parseUserToken(parts[1])
	if !ok {
		return unauthorized(c, "Invalid or expired token")
	}

	c.Locals("userID", userID)
	c.Locals("tokenIssuedAt", issuedAt)
	return c.Next()
}

// WebSocketAuthRequired validates tokens for WebSocket upgrades. Browsers
// cannot set headers on upgrade requests, so the token is accepted from the
// `token` query parameter with the Authorization header as fallback.
func WebSocketAuthRequired(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Token required")
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Invalid authorization header format")
		}
		token = parts[1]
	}

	userID, issuedAt, ok := parseUserToken(token)
	if !ok {
		return unauthorized(c, "Invalid or expired token")
	}

	c.Locals("userID", userID)
	c.Locals("tokenIssuedAt", issuedAt)
	return c.Next()
}
