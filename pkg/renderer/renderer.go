// Package renderer view'lara ortak verileri (flash mesajları, oturumdaki kullanıcı) ekleyerek render eder.
package renderer

import (
	"anket.link/configs/configslog"
	"anket.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// View içinde flash mesajlarının bulunduğu anahtarlar.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages flash mesajlarını data'ya ekler. Handler'ın zaten koyduğu mesajlar ezilmez.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashData) {
	if _, exists := data[FlashSuccessKeyView]; !exists && flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if _, exists := data[FlashErrorKeyView]; !exists && flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render view'ı layout içinde verilen durum koduyla render eder.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status int) error {
	if data == nil {
		data = fiber.Map{}
	}

	flash, err := flashmessages.GetFlashMessages(c)
	if err != nil {
		configslog.Log.Warn("Flash mesajları okunamadı", zap.String("view", view), zap.Error(err))
	}
	SetFlashMessages(data, flash)

	userName, _ := c.Locals("userName").(string)
	data["UserName"] = userName
	data["IsAuthenticated"] = userName != ""
	if _, ok := data["Title"]; !ok {
		data["Title"] = "Surveys"
	}

	if layout == "" {
		return c.Status(status).Render(view, data)
	}
	return c.Status(status).Render(view, data, layout)
}

// RenderError hata sayfasını error layout ile render eder. 404 dışındaki tüm durumlar 500 sayfasını kullanır.
func RenderError(c *fiber.Ctx, status int) error {
	view, title := "errors/500", "Something went wrong"
	if status == fiber.StatusNotFound {
		view, title = "errors/404", "Page not found"
	}
	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.Status(status).JSON(fiber.Map{"error": title})
	}
	return Render(c, view, "layouts/error_layout", fiber.Map{"Title": title}, status)
}
