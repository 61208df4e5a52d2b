package serverutils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const UserIDLocal = "user_id"

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	userID, err := ParseBearer(ctx.Get("Authorization"))
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, err.Error()))
	}

	ctx.Locals(UserIDLocal, userID)
	return ctx.Next()
}

// UserID returns the id stored by JwtMiddleware, or "".
func UserID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(UserIDLocal).(string)
	return id
}

func ParseBearer(authHeader string) (string, error) {
	token := BearerToken(authHeader)
	if token == "" {
		return "", fmt.Errorf("%w: missing token", ErrUnauthorized)
	}
	return ParseToken(token)
}

// BearerToken returns the raw token of an Authorization header, or "".
func BearerToken(authHeader string) string {
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

func ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: invalid claims", ErrUnauthorized)
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", fmt.Errorf("%w: invalid claims", ErrUnauthorized)
	}
	return userID, nil
}

func GenerateToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}
