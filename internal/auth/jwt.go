package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoUser = errors.New("user id missing")

// Secret returns the HMAC signing key from the environment.
// The process refuses to start without it (checked in main).
func Secret() []byte {
	return []byte(strings.TrimSpace(os.Getenv("JWT_SECRET")))
}

// GenerateToken issues a 24h HS256 token carrying the user id.
func GenerateToken(userID string) (string, error) {
	secret := Secret()
	if len(secret) == 0 {
		return "", errors.New("JWT_SECRET is not set")
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates a signed token and returns the user id claim.
func ParseToken(signed string) (string, error) {
	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return Secret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	uid, ok := claims["user_id"].(string)
	if !ok || strings.TrimSpace(uid) == "" {
		return "", errors.New("user_id missing")
	}
	return uid, nil
}

// Middleware returns a Fiber handler that requires a Bearer token and
// stores the resolved user id in c.Locals("user_id").
func Middleware(pool *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		uid, err := ParseToken(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("user_id", uid)

		// Update last_seen_at (best-effort, do not block request)
		if pool != nil {
			go func(uid string) {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_, _ = pool.Exec(ctx, `UPDATE users SET last_seen_at = now() WHERE id = $1::uuid`, uid)
			}(uid)
		}

		return c.Next()
	}
}

// UserID extracts the authenticated user id set by Middleware.
func UserID(c *fiber.Ctx) (string, error) {
	val := c.Locals("user_id")
	if val == nil {
		return "", ErrNoUser
	}
	if uid, ok := val.(string); ok && strings.TrimSpace(uid) != "" {
		return uid, nil
	}
	return "", ErrNoUser
}
