package middlewares

import (
	"anket.link/configs/configslog"
	"anket.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SignInRequiredMessage giriş gerektiren sayfalara misafir erişiminde gösterilir.
const SignInRequiredMessage = "You must be signed in to do that."

// AuthMiddleware oturum açmamış kullanıcıları ana sayfaya yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return c.Next()
	}

	if err := flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, SignInRequiredMessage); err != nil {
		configslog.Log.Warn("AuthMiddleware: flash mesajı yazılamadı", zap.Error(err))
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// GuestMiddleware oturum açmış kullanıcıları giriş/kayıt sayfalarından uzak tutar.
func GuestMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}

// APIAuthMiddleware JSON uç noktaları için yönlendirme yerine 401 döndürür.
func APIAuthMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return c.Next()
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": SignInRequiredMessage})
}
