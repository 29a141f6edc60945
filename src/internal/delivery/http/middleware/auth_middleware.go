package middleware

import (
	"strings"

	"tour-service/src/pkg/token"
	"tour-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

const authKey = "auth"

// VerifyBearer checks the Authorization header and stores the token metadata
// on the request for GetUser.
func VerifyBearer(v *viper.Viper) fiber.Handler {
	secret := []byte(v.GetString("jwt.secret"))
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			return utils.ResponseError(fiber.NewError(fiber.StatusUnauthorized, "missing bearer token"), ctx)
		}

		claim, err := token.Parse(strings.TrimSpace(raw), secret)
		if err != nil {
			return utils.ResponseError(fiber.NewError(fiber.StatusUnauthorized, "invalid token: "+err.Error()), ctx)
		}
		if claim.Metadata.Role == "" {
			claim.Metadata.Role = token.RoleCustomer
		}

		ctx.Locals(authKey, &claim.Metadata)
		return ctx.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if user := GetUser(ctx); user == nil || user.Role != token.RoleAdmin {
			return utils.ResponseError(fiber.NewError(fiber.StatusForbidden, "admin role required"), ctx)
		}
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) *token.Metadata {
	user, _ := ctx.Locals(authKey).(*token.Metadata)
	return user
}
