// file: internals/features/tributos/pagos/controller/pago_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"tributos_backend/internals/features/tributos/contribuyentes/repository"
	dto "tributos_backend/internals/features/tributos/pagos/dto"
	svc "tributos_backend/internals/features/tributos/pagos/service"
	helper "tributos_backend/internals/helpers"
)

/* =======================================================================
   Controller
======================================================================= */

type PagoController struct {
	Store         repository.ContribuyenteStore
	Pasarela      svc.PasarelaPagos
	Conciliador   *svc.Conciliador
	Validator     *validator.Validate
	PublicBaseURL string
}

func NewPagoController(store repository.ContribuyenteStore, pasarela svc.PasarelaPagos, publicBaseURL string) *PagoController {
	return &PagoController{
		Store:         store,
		Pasarela:      pasarela,
		Conciliador:   svc.NewConciliador(store, pasarela),
		Validator:     validator.New(),
		PublicBaseURL: publicBaseURL,
	}
}

/* =======================================================================
   Handlers
======================================================================= */

// POST /pagar?dni=&monto=
func (h *PagoController) IniciarPago(c *fiber.Ctx) error {
	var req dto.IniciarPagoRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "query inválida: "+err.Error())
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	contribuyente, err := h.Store.BuscarPorIdentificador(c.Context(), req.DNI)
	if err != nil {
		if errors.Is(err, repository.ErrContribuyenteNoEncontrado) {
			return fiber.NewError(fiber.StatusNotFound, "Contribuyente no encontrado")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	preferencia, err := h.Pasarela.CrearPreferencia(c.Context(), svc.DatosPreferencia{
		Titulo:        fmt.Sprintf("Impuesto %s - DNI: %s", contribuyente.ContribuyenteTipoImpuesto, req.DNI),
		Monto:         decimal.NewFromFloat(req.Monto),
		NombrePagador: contribuyente.ContribuyenteNombre,
		// TODO: tomar el email real del padrón cuando se importe esa columna
		EmailPagador:      "test_user@test.com",
		ReferenciaExterna: contribuyente.ContribuyenteIdentificador,
		BaseURL:           h.PublicBaseURL,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear preferencia de pago: "+err.Error())
	}

	// Guardar el enlace en el contribuyente es best-effort: el pago ya puede
	// iniciarse con el link devuelto.
	contribuyente.ContribuyenteEnlacePagoMP = &preferencia.EnlacePago
	if preferencia.ID != "" {
		contribuyente.ContribuyenteSuscripcionMPID = &preferencia.ID
	}
	if err := h.Store.Guardar(c.Context(), contribuyente); err != nil {
		log.Printf("[WARN] no se pudo guardar el enlace de pago para %s: %v",
			contribuyente.ContribuyenteIdentificador, err)
	}

	return c.JSON(fiber.Map{
		"message":      fmt.Sprintf("Pago iniciado para DNI: %s", req.DNI),
		"payment_link": preferencia.EnlacePago,
	})
}

// POST /webhook/mercadopago
func (h *PagoController) WebhookMercadoPago(c *fiber.Ctx) error {
	var notif dto.NotificacionMercadoPago
	if err := c.BodyParser(&notif); err != nil {
		// Payload malformado/irrelevante: nunca es error, se reconoce sin
		// acción para no romper el contrato de reintentos del notificador.
		log.Printf("[INFO] Webhook recibido con payload no parseable: %v", err)
		return helper.Success(c, "Webhook recibido (sin acción)", nil)
	}

	resultado, err := h.Conciliador.Procesar(c.Context(), svc.Notificacion{
		Topico:        notif.Topico(),
		TransaccionID: notif.Data.ID,
		Payload:       c.Body(),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrContribuyenteNoEncontrado):
			// Pago real sin contribuyente: inconsistencia que tiene que ver
			// un operador, no se descarta en silencio.
			log.Printf("[ERROR] Webhook %s: contribuyente inexistente", notif.Data.ID)
			return fiber.NewError(fiber.StatusNotFound, "Contribuyente no encontrado para la referencia externa")
		case errors.Is(err, svc.ErrSinReferenciaExterna):
			return fiber.NewError(fiber.StatusBadRequest, "External reference no encontrada en la notificación de pago")
		case errors.Is(err, svc.ErrPasarela):
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	if !resultado.Procesada {
		return helper.Success(c, resultado.Motivo, nil)
	}
	return helper.Success(c, "Webhook procesado correctamente", resultado)
}

// GET /pagos/:identificador
func (h *PagoController) ListarPagos(c *fiber.Ctx) error {
	identificador := c.Params("identificador")

	pagos, err := h.Store.ListarPagos(c.Context(), identificador)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(dto.FromModels(pagos))
}
