package seeds

import (
	"gorm.io/gorm"

	"tributos_backend/internals/seeds/contribuyentes"
)

func RunAllSeeds(db *gorm.DB) {
	contribuyentes.SeedContribuyentesIniciales(db)
}
