package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader istek kimliğinin taşındığı başlıktır.
const RequestIDHeader = "X-Request-ID"

// RequestID her isteğe bir kimlik verir; istemci geçerli bir UUID gönderdiyse o kullanılır.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals("requestid", id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}
