package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Oturumda saklanan anahtarlar.
const (
	SessionUserIDKey   = "user_id"
	SessionUserNameKey = "user_name"
)

// c.Locals anahtarları.
const (
	SessionStoreLocalsKey = "session_store"
	SessionLocalsKey      = "session"
)

var (
	ErrSessionStoreMissing = errors.New("session store bulunamadı")
	ErrNotSignedIn         = errors.New("oturumda kullanıcı yok")
)

// SessionStart isteğin oturumunu getirir. Oturum istek başında bir kez yüklenip Locals'a konur
// ve istek sonunda kaydedilir; aynı istekte yapılan tüm değişiklikler bu nesne üzerinden yapılmalıdır.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	if sess, ok := c.Locals(SessionLocalsKey).(*session.Session); ok && sess != nil {
		return sess, nil
	}
	store, ok := c.Locals(SessionStoreLocalsKey).(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	sess, err := store.Get(c)
	if err != nil {
		return nil, err
	}
	c.Locals(SessionLocalsKey, sess)
	return sess, nil
}

// GetUserIDFromSession oturumdaki kullanıcı ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	id, ok := sess.Get(SessionUserIDKey).(uint)
	if !ok || id == 0 {
		return 0, ErrNotSignedIn
	}
	return id, nil
}

// GetUserNameFromSession oturumdaki kullanıcı adını döndürür.
func GetUserNameFromSession(sess *session.Session) (string, error) {
	name, ok := sess.Get(SessionUserNameKey).(string)
	if !ok || name == "" {
		return "", ErrNotSignedIn
	}
	return name, nil
}

// SignIn kullanıcıyı oturuma yazar. Oturum ID'si yenilenir.
func SignIn(sess *session.Session, userID uint, username string) error {
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(SessionUserIDKey, userID)
	sess.Set(SessionUserNameKey, username)
	return nil
}

// SignOut kullanıcı bilgilerini oturumdan siler ve oturum ID'sini yeniler.
// Flash mesajları için oturumun kendisi kalır.
func SignOut(sess *session.Session) error {
	sess.Delete(SessionUserIDKey)
	sess.Delete(SessionUserNameKey)
	return sess.Regenerate()
}
