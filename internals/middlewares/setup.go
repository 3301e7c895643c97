package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"tributos_backend/internals/configs"
)

// SetupMiddlewares registra los middlewares base de la app
func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(LoggerMiddleware())
}
