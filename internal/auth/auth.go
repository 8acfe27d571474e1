// Package auth issues and verifies the bearer tokens that identify callers.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const contextKey = "user"

var ErrNoCaller = errors.New("no authenticated caller")

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs an HS256 token whose subject is the user id.
func (i *TokenIssuer) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(userID, 10),
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
		"jti":      uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

// Middleware rejects requests without a valid bearer token with 401.
func (i *TokenIssuer) Middleware() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: i.secret},
		ContextKey: contextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid token")
		},
	})
}

// UserID returns the caller id stored by Middleware.
func UserID(c *fiber.Ctx) (int64, error) {
	token, ok := c.Locals(contextKey).(*jwt.Token)
	if !ok {
		return 0, ErrNoCaller
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoCaller, err)
	}
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", ErrNoCaller, subject)
	}
	return id, nil
}
