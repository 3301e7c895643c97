package importer

import (
	"log"

	"github.com/mehanizm/airtable"
)

// La API de Airtable acepta hasta 10 registros por request.
const TamanoLote = 10

// PartirEnLotes corta los registros en lotes de a lo sumo tam.
func PartirEnLotes(registros []Registro, tam int) [][]Registro {
	var lotes [][]Registro
	for len(registros) > 0 {
		n := tam
		if len(registros) < n {
			n = len(registros)
		}
		lotes = append(lotes, registros[:n])
		registros = registros[n:]
	}
	return lotes
}

// SubirAirtable empuja los registros a la tabla en lotes. Un lote fallido se
// loguea y se sigue con el resto (no hay reintento automático).
func SubirAirtable(tabla *airtable.Table, registros []Registro) (int, int) {
	var subidos, fallidos int

	for _, lote := range PartirEnLotes(registros, TamanoLote) {
		recs := make([]*airtable.Record, 0, len(lote))
		for _, r := range lote {
			recs = append(recs, &airtable.Record{Fields: map[string]interface{}{
				"ID_Contribuyente":       r.Identificador,
				"Nombre_Contribuyente":   r.Nombre,
				"Monto_Mensual_Impuesto": r.Monto.InexactFloat64(),
				"Tipo_Impuesto":          r.TipoImpuesto,
			}})
		}

		if _, err := tabla.AddRecords(&airtable.Records{Records: recs}); err != nil {
			log.Printf("[ERROR] Falló la subida de un lote de %d registros: %v", len(lote), err)
			fallidos += len(lote)
			continue
		}
		subidos += len(lote)
	}

	log.Printf("[INFO] Subida a Airtable finalizada: %d subidos, %d fallidos", subidos, fallidos)
	return subidos, fallidos
}
