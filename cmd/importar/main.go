// Importador directo del padrón: CSV → upsert en PostgreSQL.
//
//	go run ./cmd/importar -csv retributivos.csv
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	database "tributos_backend/internals/databases"
	"tributos_backend/internals/features/tributos/contribuyentes/repository"
	"tributos_backend/internals/features/tributos/importer"
)

func main() {
	ruta := flag.String("csv", "retributivos.csv", "ruta del CSV del padrón")
	columnaMonto := flag.String("mes", importer.ColumnaMontoPorDefecto, "columna de monto a importar")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No se encontró .env, se usan las ENV del sistema")
	}

	database.ConnectDB()
	database.TunePool()
	database.Migrate()

	encabezados, filas, err := importer.LeerCSV(*ruta)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Política del import directo: los montos en cero se conservan (la fila
	// vale igual para el padrón), sin fallback a nomenclatura.
	normalizador := importer.Normalizador{
		ColumnaMonto:        *columnaMonto,
		ConservarMontosCero: true,
	}
	registros, err := normalizador.Normalizar(encabezados, filas)
	if err != nil {
		log.Fatalf("❌ CSV estructuralmente inválido: %v", err)
	}

	ok, fallidos := importer.ImportarDirecto(context.Background(), repository.NewGormStore(database.DB), registros)
	log.Printf("✅ Importación completada: %d ok, %d con error", ok, fallidos)
}
