package route

import (
	"github.com/gofiber/fiber/v2"

	contribuyenteController "tributos_backend/internals/features/tributos/contribuyentes/controller"
	"tributos_backend/internals/features/tributos/contribuyentes/repository"
)

func ContribuyenteRoutes(r fiber.Router, store repository.ContribuyenteStore) {
	ctl := contribuyenteController.NewContribuyenteController(store)

	r.Get("/contribuyentes/:identificador", ctl.ObtenerPorIdentificador)
}
