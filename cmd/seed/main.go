// Carga de datos iniciales de ejemplo.
package main

import (
	"log"

	"github.com/joho/godotenv"

	database "tributos_backend/internals/databases"
	"tributos_backend/internals/seeds"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No se encontró .env, se usan las ENV del sistema")
	}

	database.ConnectDB()
	database.Migrate()
	seeds.RunAllSeeds(database.DB)

	log.Println("✅ Datos iniciales cargados.")
}
