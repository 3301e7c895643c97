package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tributos_backend/internals/features/tributos/pagos/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

// IniciarPagoRequest: POST /pagar?dni=&monto=
type IniciarPagoRequest struct {
	DNI   string  `query:"dni" validate:"required"`
	Monto float64 `query:"monto" validate:"required,gt=0"`
}

// NotificacionMercadoPago es el payload del webhook. MercadoPago manda el
// tópico en "topic" o en "type" según la versión de la notificación.
type NotificacionMercadoPago struct {
	Type   string `json:"type"`
	Topic  string `json:"topic"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (n *NotificacionMercadoPago) Topico() string {
	if n.Topic != "" {
		return n.Topic
	}
	return n.Type
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type PagoResponse struct {
	PagoID uuid.UUID `json:"pago_id"`

	PagoContribuyenteIdentificador string          `json:"pago_contribuyente_identificador"`
	PagoMonto                      decimal.Decimal `json:"pago_monto"`
	PagoTransaccionID              string          `json:"pago_transaccion_id"`
	PagoEstado                     string          `json:"pago_estado"`
	PagoFechaPago                  time.Time       `json:"pago_fecha_pago"`
	PagoMetodoRegistro             string          `json:"pago_metodo_registro"`
	PagoNota                       *string         `json:"pago_nota,omitempty"`
	PagoFechaRegistro              time.Time       `json:"pago_fecha_registro"`
}

func FromModel(p *model.Pago) PagoResponse {
	return PagoResponse{
		PagoID:                         p.PagoID,
		PagoContribuyenteIdentificador: p.PagoContribuyenteIdentificador,
		PagoMonto:                      p.PagoMonto,
		PagoTransaccionID:              p.PagoTransaccionID,
		PagoEstado:                     p.PagoEstado,
		PagoFechaPago:                  p.PagoFechaPago,
		PagoMetodoRegistro:             p.PagoMetodoRegistro,
		PagoNota:                       p.PagoNota,
		PagoFechaRegistro:              p.PagoFechaRegistro,
	}
}

func FromModels(pagos []model.Pago) []PagoResponse {
	out := make([]PagoResponse, 0, len(pagos))
	for i := range pagos {
		out = append(out, FromModel(&pagos[i]))
	}
	return out
}
