package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	contribuyenteModel "tributos_backend/internals/features/tributos/contribuyentes/model"
	pagoModel "tributos_backend/internals/features/tributos/pagos/model"
)

// GormStore implementa ContribuyenteStore sobre PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) BuscarPorIdentificador(ctx context.Context, identificador string) (*contribuyenteModel.Contribuyente, error) {
	var c contribuyenteModel.Contribuyente
	err := s.db.WithContext(ctx).
		First(&c, "contribuyente_identificador = ?", identificador).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContribuyenteNoEncontrado
		}
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) Upsert(ctx context.Context, c *contribuyenteModel.Contribuyente) error {
	// ON CONFLICT sobre el identificador: actualiza en el lugar los campos
	// mutables del import, nunca crea un segundo registro vivo.
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "contribuyente_identificador"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"contribuyente_nombre",
				"contribuyente_monto_mensual",
				"contribuyente_tipo_impuesto",
				"contribuyente_updated_at",
			}),
		}).
		Create(c).Error
}

func (s *GormStore) Guardar(ctx context.Context, c *contribuyenteModel.Contribuyente) error {
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *GormStore) RegistrarPago(ctx context.Context, p *pagoModel.Pago) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return ErrPagoDuplicado
		}
		return err
	}
	return nil
}

func (s *GormStore) ExistePago(ctx context.Context, transaccionID string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&pagoModel.Pago{}).
		Where("pago_transaccion_id = ?", transaccionID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore) ListarPagos(ctx context.Context, identificador string) ([]pagoModel.Pago, error) {
	var pagos []pagoModel.Pago
	err := s.db.WithContext(ctx).
		Where("pago_contribuyente_identificador = ?", identificador).
		Order("pago_fecha_registro DESC").
		Find(&pagos).Error
	return pagos, err
}
