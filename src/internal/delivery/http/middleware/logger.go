package middleware

import (
	"fmt"
	"time"

	"agent-portal-service/src/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// NewLogger tags each request with an id and logs method, path, status and
// latency after the handler chain completes.
func NewLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestID := uuid.NewString()
		ctx.Locals("requestId", requestID)
		start := time.Now()

		err := ctx.Next()

		logger := log.GetLogger()
		meta := fmt.Sprintf("status=%d duration=%s", ctx.Response().StatusCode(), time.Since(start))
		logger.Info("http", fmt.Sprintf("%s %s", ctx.Method(), ctx.Path()), requestID, meta)
		return err
	}
}
