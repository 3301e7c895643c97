package details

import (
	"github.com/gofiber/fiber/v2"

	"tributos_backend/internals/configs"
	contribuyenteRoute "tributos_backend/internals/features/tributos/contribuyentes/route"
	"tributos_backend/internals/features/tributos/contribuyentes/repository"
	pagoRoute "tributos_backend/internals/features/tributos/pagos/route"
	"tributos_backend/internals/features/tributos/pagos/service"
)

func TributosRoutes(app *fiber.App, store repository.ContribuyenteStore, pasarela service.PasarelaPagos, cfg *configs.Config) {
	contribuyenteRoute.ContribuyenteRoutes(app, store)
	pagoRoute.PagoRoutes(app, store, pasarela, cfg.PublicBaseURL)
}
