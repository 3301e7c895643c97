package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

// Estados tal como los reporta MercadoPago (se espejan sin traducir).
const (
	EstadoPagoAprobado  = "approved"
	EstadoPagoRechazado = "rejected"
	EstadoPagoCancelado = "cancelled"
	EstadoPagoEnProceso = "in_process"
	EstadoPagoPendiente = "pending"
)

const (
	MetodoRegistroWebhook = "webhook"
	MetodoRegistroManual  = "manual"
)

/* ===================== Model ===================== */

// Pago es el libro mayor: se inserta una vez por notificación procesada y no
// se muta nunca después.
type Pago struct {
	PagoID uuid.UUID `gorm:"column:pago_id;type:uuid;primaryKey" json:"pago_id"`

	PagoContribuyenteIdentificador string `gorm:"column:pago_contribuyente_identificador;index;not null" json:"pago_contribuyente_identificador"`

	PagoMonto decimal.Decimal `gorm:"column:pago_monto;type:numeric(14,2);not null" json:"pago_monto"`

	// ID de transacción del procesador: clave natural de idempotencia.
	PagoTransaccionID string `gorm:"column:pago_transaccion_id;uniqueIndex;not null" json:"pago_transaccion_id"`
	PagoEstado        string `gorm:"column:pago_estado;not null" json:"pago_estado"`

	PagoFechaPago      time.Time `gorm:"column:pago_fecha_pago" json:"pago_fecha_pago"`
	PagoMetodoRegistro string    `gorm:"column:pago_metodo_registro;not null" json:"pago_metodo_registro"`

	PagoNota *string `gorm:"column:pago_nota" json:"pago_nota,omitempty"`

	// Payload crudo de la notificación, para seguimiento del operador.
	PagoPayload datatypes.JSON `gorm:"column:pago_payload;type:jsonb" json:"pago_payload,omitempty"`

	PagoFechaRegistro time.Time `gorm:"column:pago_fecha_registro;autoCreateTime" json:"pago_fecha_registro"`
}

func (Pago) TableName() string { return "pagos" }

func (p *Pago) BeforeCreate(tx *gorm.DB) error {
	if p.PagoID == uuid.Nil {
		p.PagoID = uuid.New()
	}
	if p.PagoFechaRegistro.IsZero() {
		p.PagoFechaRegistro = time.Now()
	}
	return nil
}
