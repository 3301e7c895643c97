package repository

import (
	"context"
	"errors"

	contribuyenteModel "tributos_backend/internals/features/tributos/contribuyentes/model"
	pagoModel "tributos_backend/internals/features/tributos/pagos/model"
)

/* =========================================================
   Store abstracto de contribuyentes
   Implementaciones: GORM/Postgres, Airtable y memoria (tests).
========================================================= */

var (
	ErrContribuyenteNoEncontrado = errors.New("contribuyente no encontrado")
	ErrPagoDuplicado             = errors.New("pago ya registrado para esa transacción")
)

type ContribuyenteStore interface {
	// BuscarPorIdentificador resuelve por DNI / nomenclatura catastral.
	BuscarPorIdentificador(ctx context.Context, identificador string) (*contribuyenteModel.Contribuyente, error)

	// Upsert crea el contribuyente o, si el identificador ya existe, pisa
	// nombre, monto mensual y tipo de impuesto (nunca duplica).
	Upsert(ctx context.Context, c *contribuyenteModel.Contribuyente) error

	// Guardar persiste mutaciones de estado/deuda de un registro existente.
	Guardar(ctx context.Context, c *contribuyenteModel.Contribuyente) error

	// RegistrarPago agrega un asiento inmutable al libro de pagos.
	// Devuelve ErrPagoDuplicado si la transacción ya fue asentada.
	RegistrarPago(ctx context.Context, p *pagoModel.Pago) error

	// ExistePago consulta el libro por ID de transacción (idempotencia).
	ExistePago(ctx context.Context, transaccionID string) (bool, error)

	// ListarPagos devuelve los asientos de un contribuyente, más reciente primero.
	ListarPagos(ctx context.Context, identificador string) ([]pagoModel.Pago, error)
}
