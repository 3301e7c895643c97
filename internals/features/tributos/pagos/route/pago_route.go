package route

import (
	"github.com/gofiber/fiber/v2"

	"tributos_backend/internals/features/tributos/contribuyentes/repository"
	pagoController "tributos_backend/internals/features/tributos/pagos/controller"
	"tributos_backend/internals/features/tributos/pagos/service"
)

func PagoRoutes(r fiber.Router, store repository.ContribuyenteStore, pasarela service.PasarelaPagos, publicBaseURL string) {
	ctl := pagoController.NewPagoController(store, pasarela, publicBaseURL)

	r.Post("/pagar", ctl.IniciarPago)
	r.Post("/webhook/mercadopago", ctl.WebhookMercadoPago)
	r.Get("/pagos/:identificador", ctl.ListarPagos)
}
