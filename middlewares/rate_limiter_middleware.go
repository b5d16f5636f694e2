package middlewares

import (
	"time"

	"anket.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// SigninRateLimiter giriş ve kayıt formlarına IP başına dakikada max istek izni verir.
func SigninRateLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			configslog.Log.Warn("Giriş limiti aşıldı", zap.String("ip", c.IP()), zap.String("path", c.Path()))
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many attempts. Please try again in a minute.")
		},
	})
}
