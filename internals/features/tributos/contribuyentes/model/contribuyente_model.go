package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Esquema canónico único: en el sistema viejo convivían
   Estado_Suscripcion / estado_suscripcion con valores mezclados.
*/

const (
	EstadoSuscripcionPendiente    = "pendiente"
	EstadoSuscripcionActiva       = "activa"
	EstadoSuscripcionProblemaPago = "problema_pago"
)

/* ===================== Model ===================== */

type Contribuyente struct {
	ContribuyenteID uuid.UUID `gorm:"column:contribuyente_id;type:uuid;primaryKey" json:"contribuyente_id"`

	// Identificador único: DNI o, en su defecto, nomenclatura catastral.
	// Es LA clave de búsqueda tanto para el import como para la conciliación.
	ContribuyenteIdentificador string `gorm:"column:contribuyente_identificador;uniqueIndex;not null" json:"contribuyente_identificador"`
	ContribuyenteNombre        string `gorm:"column:contribuyente_nombre" json:"contribuyente_nombre"`

	ContribuyenteMontoMensual decimal.Decimal `gorm:"column:contribuyente_monto_mensual;type:numeric(14,2);not null" json:"contribuyente_monto_mensual"`
	ContribuyenteTipoImpuesto string          `gorm:"column:contribuyente_tipo_impuesto" json:"contribuyente_tipo_impuesto"`

	// Deuda nunca negativa: los pagos aprobados la bajan con piso en cero.
	ContribuyenteDeuda             decimal.Decimal `gorm:"column:contribuyente_deuda;type:numeric(14,2);not null" json:"contribuyente_deuda"`
	ContribuyenteEstadoSuscripcion string          `gorm:"column:contribuyente_estado_suscripcion;not null;default:'pendiente'" json:"contribuyente_estado_suscripcion"`

	// Datos de MercadoPago (opcionales)
	ContribuyenteSuscripcionMPID *string `gorm:"column:contribuyente_suscripcion_mp_id" json:"contribuyente_suscripcion_mp_id,omitempty"`
	ContribuyenteEnlacePagoMP    *string `gorm:"column:contribuyente_enlace_pago_mp" json:"contribuyente_enlace_pago_mp,omitempty"`

	CreatedAt time.Time `gorm:"column:contribuyente_created_at;autoCreateTime" json:"contribuyente_created_at"`
	UpdatedAt time.Time `gorm:"column:contribuyente_updated_at;autoUpdateTime" json:"contribuyente_updated_at"`
}

func (Contribuyente) TableName() string { return "contribuyentes" }

func (c *Contribuyente) BeforeCreate(tx *gorm.DB) error {
	if c.ContribuyenteID == uuid.Nil {
		c.ContribuyenteID = uuid.New()
	}
	if c.ContribuyenteEstadoSuscripcion == "" {
		c.ContribuyenteEstadoSuscripcion = EstadoSuscripcionPendiente
	}
	return nil
}

/* ===================== Helpers ===================== */

func (c *Contribuyente) TieneDeuda() bool {
	return c.ContribuyenteDeuda.IsPositive()
}

// AplicarPagoAprobado baja la deuda con piso en cero y activa la suscripción.
func (c *Contribuyente) AplicarPagoAprobado(monto decimal.Decimal) {
	nueva := c.ContribuyenteDeuda.Sub(monto)
	if nueva.IsNegative() {
		nueva = decimal.Zero
	}
	c.ContribuyenteDeuda = nueva
	c.ContribuyenteEstadoSuscripcion = EstadoSuscripcionActiva
}

func (c *Contribuyente) MarcarProblemaPago() {
	c.ContribuyenteEstadoSuscripcion = EstadoSuscripcionProblemaPago
}
