package middleware

import (
	"strconv"
	"strings"

	"erp-app/config"
	"erp-app/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and stores the acting user, tenant
// and role in locals. Tenant id is threaded explicitly from here into every
// repository call; there is no ambient tenant state.
func AuthMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing Authorization header",
		})
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid Authorization header format",
		})
	}

	token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Invalid signing method")
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid claims",
		})
	}

	// IDs travel as strings so snowflakes survive the float64 JSON round trip.
	userID, err := claimID(claims, "user_id")
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid user claim",
		})
	}
	tenantID, err := claimID(claims, "tenant_id")
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid tenant claim",
		})
	}

	role, _ := claims["role"].(string)
	sessionID, _ := claims["session_id"].(string)

	ctx.Locals("userID", userID)
	ctx.Locals("tenantID", tenantID)
	ctx.Locals("role", role)
	ctx.Locals("sessionID", sessionID)

	return ctx.Next()
}

// RequireRoles rejects callers whose role claim is not in the allow list.
func RequireRoles(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals("role").(string)
		for _, r := range roles {
			if role == r {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: insufficient role",
		})
	}
}

func claimID(claims jwt.MapClaims, key string) (types.SnowflakeID, error) {
	raw, ok := claims[key].(string)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "missing claim "+key)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return types.SnowflakeID(id), nil
}

// UserID reads the acting user id stored by AuthMiddleware.
func UserID(ctx *fiber.Ctx) types.SnowflakeID {
	id, _ := ctx.Locals("userID").(types.SnowflakeID)
	return id
}

// TenantID reads the tenant id stored by AuthMiddleware.
func TenantID(ctx *fiber.Ctx) types.SnowflakeID {
	id, _ := ctx.Locals("tenantID").(types.SnowflakeID)
	return id
}
