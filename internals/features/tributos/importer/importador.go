package importer

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	contribuyenteModel "tributos_backend/internals/features/tributos/contribuyentes/model"
	"tributos_backend/internals/features/tributos/contribuyentes/repository"
)

// ImportarDirecto upsertea los registros uno por uno contra el store. Cada
// fila se confirma por separado: un error en una no aborta el resto.
func ImportarDirecto(ctx context.Context, store repository.ContribuyenteStore, registros []Registro) (int, int) {
	var ok, fallidos int

	for _, r := range registros {
		c := &contribuyenteModel.Contribuyente{
			ContribuyenteIdentificador:     r.Identificador,
			ContribuyenteNombre:            r.Nombre,
			ContribuyenteMontoMensual:      r.Monto,
			ContribuyenteTipoImpuesto:      r.TipoImpuesto,
			ContribuyenteDeuda:             decimal.Zero,
			ContribuyenteEstadoSuscripcion: contribuyenteModel.EstadoSuscripcionPendiente,
		}
		if err := store.Upsert(ctx, c); err != nil {
			log.Printf("[ERROR] No se pudo procesar el contribuyente %s (%s): %v",
				r.Identificador, r.Nombre, err)
			fallidos++
			continue
		}
		ok++
	}

	return ok, fallidos
}
