// Subida por lote del padrón a Airtable (máx. 10 registros por request).
//
//	go run ./cmd/subir_airtable -csv retributivos.csv
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/mehanizm/airtable"

	"tributos_backend/internals/configs"
	"tributos_backend/internals/features/tributos/importer"
)

func main() {
	ruta := flag.String("csv", "retributivos.csv", "ruta del CSV del padrón")
	columnaMonto := flag.String("mes", importer.ColumnaMontoPorDefecto, "columna de monto a importar")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No se encontró .env, se usan las ENV del sistema")
	}

	apiKey := configs.MustEnv("AIRTABLE_API_KEY")
	baseID := configs.MustEnv("AIRTABLE_BASE_ID")
	nombreTabla := configs.MustEnv("AIRTABLE_TABLE_CONTRIBUYENTES")

	encabezados, filas, err := importer.LeerCSV(*ruta)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Política de la subida por lote: solo filas con monto positivo, con
	// fallback a nomenclatura catastral cuando falta el DNI.
	normalizador := importer.Normalizador{
		ColumnaMonto:     *columnaMonto,
		UsarNomenclatura: true,
	}
	registros, err := normalizador.Normalizar(encabezados, filas)
	if err != nil {
		log.Fatalf("❌ CSV estructuralmente inválido: %v", err)
	}
	log.Printf("Se procesaron %d registros válidos para subir a Airtable.", len(registros))

	tabla := airtable.NewClient(apiKey).GetTable(baseID, nombreTabla)
	importer.SubirAirtable(tabla, registros)
}
