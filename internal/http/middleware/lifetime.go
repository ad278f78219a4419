package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Lifetime ties each request's user context to the server lifetime ctx.
// When ctx is cancelled (shutdown), in-flight handlers observe cancellation through c.UserContext().
// Values already on the user context, such as the active span, are kept.
func Lifetime(ctx context.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqCtx, cancel := context.WithCancel(c.UserContext())
		defer cancel()
		stop := context.AfterFunc(ctx, cancel)
		defer stop()

		c.SetUserContext(reqCtx)
		return c.Next()
	}
}
