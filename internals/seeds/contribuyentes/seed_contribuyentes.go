package contribuyentes

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tributos_backend/internals/features/tributos/contribuyentes/model"
)

// SeedContribuyentesIniciales carga los contribuyentes de ejemplo. Idempotente
// por identificador: si ya existen no hace nada.
func SeedContribuyentesIniciales(db *gorm.DB) {
	suscripcion := "MP_SUB_123"
	enlace := "https://mercadopago.com/mp_link_123"

	ejemplos := []model.Contribuyente{
		{
			ContribuyenteIdentificador:     "12345678",
			ContribuyenteNombre:            "Juan Pérez",
			ContribuyenteMontoMensual:      decimal.NewFromInt(500),
			ContribuyenteTipoImpuesto:      "Tasa Retributiva",
			ContribuyenteDeuda:             decimal.Zero,
			ContribuyenteEstadoSuscripcion: model.EstadoSuscripcionActiva,
			ContribuyenteSuscripcionMPID:   &suscripcion,
			ContribuyenteEnlacePagoMP:      &enlace,
		},
		{
			ContribuyenteIdentificador:     "87654321",
			ContribuyenteNombre:            "María García",
			ContribuyenteMontoMensual:      decimal.NewFromInt(750),
			ContribuyenteTipoImpuesto:      "Derechos de Construcción",
			ContribuyenteDeuda:             decimal.NewFromInt(1500),
			ContribuyenteEstadoSuscripcion: model.EstadoSuscripcionPendiente,
		},
	}

	for i := range ejemplos {
		c := &ejemplos[i]
		var existente model.Contribuyente
		err := db.First(&existente, "contribuyente_identificador = ?", c.ContribuyenteIdentificador).Error
		if err == nil {
			log.Printf("Contribuyente %s ya existe.", existente.ContribuyenteNombre)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] seed de %s: %v", c.ContribuyenteIdentificador, err)
			continue
		}
		if err := db.Create(c).Error; err != nil {
			log.Printf("[ERROR] no se pudo crear %s: %v", c.ContribuyenteNombre, err)
			continue
		}
		log.Printf("Contribuyente %s creado.", c.ContribuyenteNombre)
	}
}
