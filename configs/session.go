package configs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionCookieName oturum çerezinin adıdır.
const SessionCookieName = "anket_session"

// SetupSession uygulama genelinde kullanılan session store'u oluşturur.
// Bellek içi depolama kullanılır; çoklu instance kurulumunda paylaşımlı bir storage verilmelidir.
func SetupSession(cfg AppConfig) *session.Store {
	return session.New(session.Config{
		Expiration:     cfg.SessionExpiration,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}
