package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	contribuyenteModel "tributos_backend/internals/features/tributos/contribuyentes/model"
	pagoModel "tributos_backend/internals/features/tributos/pagos/model"
)

// InMemory es el store de desarrollo/tests. Mismo contrato que las
// implementaciones reales, sin I/O.
type InMemory struct {
	mu             sync.RWMutex
	contribuyentes map[string]*contribuyenteModel.Contribuyente // por identificador
	pagos          []pagoModel.Pago
	transacciones  map[string]bool // idempotencia por ID de transacción
}

func NewInMemory() *InMemory {
	return &InMemory{
		contribuyentes: make(map[string]*contribuyenteModel.Contribuyente),
		transacciones:  make(map[string]bool),
	}
}

func (s *InMemory) BuscarPorIdentificador(ctx context.Context, identificador string) (*contribuyenteModel.Contribuyente, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contribuyentes[identificador]
	if !ok {
		return nil, ErrContribuyenteNoEncontrado
	}
	copia := *c
	return &copia, nil
}

func (s *InMemory) Upsert(ctx context.Context, c *contribuyenteModel.Contribuyente) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()

	if existente, ok := s.contribuyentes[c.ContribuyenteIdentificador]; ok {
		existente.ContribuyenteNombre = c.ContribuyenteNombre
		existente.ContribuyenteMontoMensual = c.ContribuyenteMontoMensual
		existente.ContribuyenteTipoImpuesto = c.ContribuyenteTipoImpuesto
		existente.UpdatedAt = now
		return nil
	}

	copia := *c
	if copia.ContribuyenteEstadoSuscripcion == "" {
		copia.ContribuyenteEstadoSuscripcion = contribuyenteModel.EstadoSuscripcionPendiente
	}
	copia.CreatedAt = now
	copia.UpdatedAt = now
	s.contribuyentes[copia.ContribuyenteIdentificador] = &copia
	return nil
}

func (s *InMemory) Guardar(ctx context.Context, c *contribuyenteModel.Contribuyente) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contribuyentes[c.ContribuyenteIdentificador]; !ok {
		return ErrContribuyenteNoEncontrado
	}
	copia := *c
	copia.UpdatedAt = time.Now()
	s.contribuyentes[copia.ContribuyenteIdentificador] = &copia
	return nil
}

func (s *InMemory) RegistrarPago(ctx context.Context, p *pagoModel.Pago) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transacciones[p.PagoTransaccionID] {
		return ErrPagoDuplicado
	}
	if p.PagoFechaRegistro.IsZero() {
		p.PagoFechaRegistro = time.Now()
	}
	s.transacciones[p.PagoTransaccionID] = true
	s.pagos = append(s.pagos, *p)
	return nil
}

func (s *InMemory) ExistePago(ctx context.Context, transaccionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transacciones[transaccionID], nil
}

func (s *InMemory) ListarPagos(ctx context.Context, identificador string) ([]pagoModel.Pago, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pagoModel.Pago
	for _, p := range s.pagos {
		if p.PagoContribuyenteIdentificador == identificador {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PagoFechaRegistro.After(out[j].PagoFechaRegistro)
	})
	return out, nil
}

// Cantidad devuelve el total de contribuyentes vivos (para asserts en tests).
func (s *InMemory) Cantidad() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contribuyentes)
}
