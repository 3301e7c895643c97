package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tributos_backend/internals/features/tributos/contribuyentes/model"
)

/* =========================================================
   RESPONSE DTOs (JSON tags = columnas DB en snake_case)
========================================================= */

type ContribuyenteResponse struct {
	ContribuyenteID uuid.UUID `json:"contribuyente_id"`

	ContribuyenteIdentificador string `json:"contribuyente_identificador"`
	ContribuyenteNombre        string `json:"contribuyente_nombre"`

	ContribuyenteMontoMensual decimal.Decimal `json:"contribuyente_monto_mensual"`
	ContribuyenteTipoImpuesto string          `json:"contribuyente_tipo_impuesto"`

	ContribuyenteDeuda             decimal.Decimal `json:"contribuyente_deuda"`
	ContribuyenteEstadoSuscripcion string          `json:"contribuyente_estado_suscripcion"`

	ContribuyenteSuscripcionMPID *string `json:"contribuyente_suscripcion_mp_id,omitempty"`
	ContribuyenteEnlacePagoMP    *string `json:"contribuyente_enlace_pago_mp,omitempty"`

	ContribuyenteCreatedAt time.Time `json:"contribuyente_created_at"`
	ContribuyenteUpdatedAt time.Time `json:"contribuyente_updated_at"`
}

func FromModel(c *model.Contribuyente) ContribuyenteResponse {
	return ContribuyenteResponse{
		ContribuyenteID:                c.ContribuyenteID,
		ContribuyenteIdentificador:     c.ContribuyenteIdentificador,
		ContribuyenteNombre:            c.ContribuyenteNombre,
		ContribuyenteMontoMensual:      c.ContribuyenteMontoMensual,
		ContribuyenteTipoImpuesto:      c.ContribuyenteTipoImpuesto,
		ContribuyenteDeuda:             c.ContribuyenteDeuda,
		ContribuyenteEstadoSuscripcion: c.ContribuyenteEstadoSuscripcion,
		ContribuyenteSuscripcionMPID:   c.ContribuyenteSuscripcionMPID,
		ContribuyenteEnlacePagoMP:      c.ContribuyenteEnlacePagoMP,
		ContribuyenteCreatedAt:         c.CreatedAt,
		ContribuyenteUpdatedAt:         c.UpdatedAt,
	}
}
