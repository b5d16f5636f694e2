package routes

import (
	"anket.link/configs"
	"anket.link/configs/configslog"
	home_handlers "anket.link/handlers"
	"anket.link/middlewares"
	"anket.link/pkg/renderer"
	"anket.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg configs.AppConfig) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New())
	app.Use(middlewares.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())
	app.Use(initializeSessionAndLocals(configs.SetupSession(cfg)))

	// --- Rota Grupları ---
	homeHandler := home_handlers.NewHomeHandler(db)
	app.Get("/", homeHandler.HomePage)

	registerAuthRoutes(app, db, cfg)
	registerSurveyRoutes(app, db)
	registerAPIRoutes(app, db)

	// --- 404 Handler ---
	app.Use(notFoundHandler)
}

// initializeSessionAndLocals oturumu istek başında bir kez yükler, kullanıcı bilgilerini Locals'a koyar
// ve istek sonunda oturumu kaydeder.
func initializeSessionAndLocals(sessionStore *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(utils.SessionStoreLocalsKey, sessionStore)
		sess, err := utils.SessionStart(c)
		if err != nil {
			configslog.Log.Warn("Oturum yüklenemedi", zap.Error(err))
			return c.Next()
		}
		if userID, err := utils.GetUserIDFromSession(sess); err == nil {
			c.Locals("userID", userID)
		}
		if userName, err := utils.GetUserNameFromSession(sess); err == nil {
			c.Locals("userName", userName)
		}

		nextErr := c.Next()

		// Save oturum nesnesini serbest bırakır; sonrasında kullanılmamalı.
		if current, ok := c.Locals(utils.SessionLocalsKey).(*session.Session); ok && current != nil {
			c.Locals(utils.SessionLocalsKey, nil)
			if err := current.Save(); err != nil {
				configslog.Log.Error("Oturum kaydedilemedi", zap.Error(err))
			}
		}
		return nextErr
	}
}

// notFoundHandler eşleşmeyen tüm istekleri yakalar; JSON isteyenlere JSON döner.
func notFoundHandler(c *fiber.Ctx) error {
	return renderer.RenderError(c, fiber.StatusNotFound)
}
