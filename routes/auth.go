package routes

import (
	"anket.link/configs"
	auth_handlers "anket.link/handlers/auth"
	"anket.link/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerAuthRoutes(app *fiber.App, db *gorm.DB, cfg configs.AppConfig) {
	authHandler := auth_handlers.NewAuthHandler(db)
	limiter := middlewares.SigninRateLimiter(cfg.SigninRateLimit)
	usersGroup := app.Group("/users")

	// Aynı önekteki gruplara Use ile eklenen middleware'ler tüm /users rotalarına uygulanır,
	// bu yüzden korumalar rota bazında verilir.
	usersGroup.Get("/signin", middlewares.GuestMiddleware, authHandler.ShowSignin)
	usersGroup.Post("/signin", middlewares.GuestMiddleware, limiter, authHandler.Signin)
	usersGroup.Get("/signup", middlewares.GuestMiddleware, authHandler.ShowSignup)
	usersGroup.Post("/signup", middlewares.GuestMiddleware, limiter, authHandler.Signup)

	usersGroup.Post("/signout", middlewares.AuthMiddleware, authHandler.Signout)
}
