// Package flashmessages bir sonraki istekte bir kez gösterilecek mesajları oturumda tutar.
package flashmessages

import (
	"anket.link/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
)

// FlashData okunan flash mesajlarıdır.
type FlashData struct {
	Success string
	Error   string
}

// SetFlashMessage mesajı oturuma yazar. Oturum istek sonunda kaydedilir.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return nil
}

// GetFlashMessages bekleyen mesajları okur ve oturumdan siler.
func GetFlashMessages(c *fiber.Ctx) (FlashData, error) {
	var data FlashData
	sess, err := utils.SessionStart(c)
	if err != nil {
		return data, err
	}

	data.Success, _ = sess.Get(FlashSuccessKey).(string)
	data.Error, _ = sess.Get(FlashErrorKey).(string)
	sess.Delete(FlashSuccessKey)
	sess.Delete(FlashErrorKey)
	return data, nil
}
