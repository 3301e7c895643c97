// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tributos_backend/internals/configs"
	"tributos_backend/internals/features/tributos/contribuyentes/repository"
	"tributos_backend/internals/features/tributos/pagos/service"
	routeDetails "tributos_backend/internals/route/details"
)

// SetupRoutes arma el store y la pasarela una sola vez y los inyecta en los
// controllers (antes eran clientes globales inicializados al importar).
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	var store repository.ContribuyenteStore
	if cfg.UsaAirtable() {
		log.Println("[INFO] Store de contribuyentes: Airtable")
		store = repository.NewAirtableStore(cfg)
	} else {
		log.Println("[INFO] Store de contribuyentes: PostgreSQL")
		store = repository.NewGormStore(db)
	}

	pasarela, err := service.NewMercadoPago(cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Fatalf("❌ No se pudo inicializar MercadoPago: %v", err)
	}

	log.Println("[INFO] Montando rutas de tributos...")
	routeDetails.TributosRoutes(app, store, pasarela, cfg)
}
