package middleware

import (
	"fmt"
	"strings"

	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/token"
	"agent-portal-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const (
	authLocal  = "auth"
	tokenLocal = "authToken"
)

// VerifyBearer validates the upstream-issued bearer token and stashes the
// verified claims for handlers; identity is always read from here, never
// from request bodies.
func VerifyBearer(config *viper.Viper) fiber.Handler {
	secret := []byte(config.GetString("jwt.secret"))

	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing bearer token"
			return utils.ResponseError(errObj, ctx)
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claim := &token.Claim{}
		parsed, err := jwt.ParseWithClaims(raw, claim, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "invalid or expired token"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals(authLocal, claim.Metadata)
		ctx.Locals(tokenLocal, raw)
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) token.Metadata {
	if metadata, ok := ctx.Locals(authLocal).(token.Metadata); ok {
		return metadata
	}
	return token.Metadata{}
}

// GetToken returns the raw bearer token so gateways can forward it upstream.
func GetToken(ctx *fiber.Ctx) string {
	if raw, ok := ctx.Locals(tokenLocal).(string); ok {
		return raw
	}
	return ""
}
