// file: internals/features/tributos/contribuyentes/controller/contribuyente_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	dto "tributos_backend/internals/features/tributos/contribuyentes/dto"
	"tributos_backend/internals/features/tributos/contribuyentes/repository"
)

type ContribuyenteController struct {
	Store repository.ContribuyenteStore
}

func NewContribuyenteController(store repository.ContribuyenteStore) *ContribuyenteController {
	return &ContribuyenteController{Store: store}
}

// GET /contribuyentes/:identificador
func (h *ContribuyenteController) ObtenerPorIdentificador(c *fiber.Ctx) error {
	identificador := c.Params("identificador")

	contribuyente, err := h.Store.BuscarPorIdentificador(c.Context(), identificador)
	if err != nil {
		if errors.Is(err, repository.ErrContribuyenteNoEncontrado) {
			return fiber.NewError(fiber.StatusNotFound, "Contribuyente no encontrado")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(dto.FromModel(contribuyente))
}
