package serverutils

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LocalsUserId is the fiber locals key the middleware stores the
// authenticated user id under, as a uuid.UUID.
const LocalsUserId = "user_id"

// JwtMiddleware guards the oracle routes. The token subject is parsed to
// a UUID here so handlers downstream never see a raw claim value.
func JwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr, found := strings.CutPrefix(ctx.Get("Authorization"), "Bearer ")
	if !found || tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(errorResponse("Missing bearer token"))
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(errorResponse("Invalid or expired token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(errorResponse("Invalid token claims"))
	}

	subject, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(subject)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(errorResponse("Invalid token subject"))
	}

	ctx.Locals(LocalsUserId, userId)
	return ctx.Next()
}
