package middleware

import (
	"fmt"
	"time"

	"tour-service/src/pkg/log"

	"github.com/gofiber/fiber/v2"
)

const slowRequest = time.Second

// NewLogger writes one line per request through the service logger.
// Server errors are logged at error level, client errors at warn.
func NewLogger(logger log.Log) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		message := fmt.Sprintf("%s %s %d", ctx.Method(), ctx.Path(), status)
		latency := time.Since(start)
		meta := fmt.Sprintf("latency=%s ip=%s", latency, ctx.IP())
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("http", message, "request", meta)
		case status >= fiber.StatusBadRequest:
			logger.Warn("http", message, "request", meta)
		case latency > slowRequest:
			logger.Slow("http", message, "request", meta)
		default:
			logger.Info("http", message, "request", meta)
		}
		return err
	}
}
