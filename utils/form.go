package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// FormValues form gövdesindeki alanları düz bir haritaya çevirir. url-encoded ve
// multipart/form-data gövdeleri desteklenir. Aynı anahtar birden fazla gelirse ilk değer kullanılır.
func FormValues(c *fiber.Ctx) map[string]string {
	values := make(map[string]string)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return values
		}
		for k, vs := range form.Value {
			if len(vs) > 0 {
				values[k] = vs[0]
			}
		}
		return values
	}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if _, exists := values[k]; !exists {
			values[k] = string(value)
		}
	})
	return values
}
