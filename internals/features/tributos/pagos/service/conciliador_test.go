package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	contribuyenteModel "tributos_backend/internals/features/tributos/contribuyentes/model"
	"tributos_backend/internals/features/tributos/contribuyentes/repository"
	pagoModel "tributos_backend/internals/features/tributos/pagos/model"
)

/* ===================== Pasarela fake ===================== */

type pasarelaFake struct {
	pagos map[string]*PagoProcesador
	err   error
}

func (f *pasarelaFake) CrearPreferencia(ctx context.Context, datos DatosPreferencia) (*Preferencia, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &Preferencia{ID: "pref-1", EnlacePago: "https://mp.test/init"}, nil
}

func (f *pasarelaFake) ObtenerPago(ctx context.Context, transaccionID string) (*PagoProcesador, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.pagos[transaccionID]
	if !ok {
		return nil, errors.New("payment not found")
	}
	return p, nil
}

/* ===================== Suite ===================== */

type ConciliadorSuite struct {
	suite.Suite
	store    *repository.InMemory
	pasarela *pasarelaFake
	svc      *Conciliador
	ctx      context.Context
}

func (s *ConciliadorSuite) SetupTest() {
	s.store = repository.NewInMemory()
	s.pasarela = &pasarelaFake{pagos: make(map[string]*PagoProcesador)}
	s.svc = NewConciliador(s.store, s.pasarela)
	s.ctx = context.Background()
}

func TestConciliadorSuite(t *testing.T) {
	suite.Run(t, new(ConciliadorSuite))
}

func (s *ConciliadorSuite) sembrarContribuyente(identificador string, deuda int64) {
	s.Require().NoError(s.store.Upsert(s.ctx, &contribuyenteModel.Contribuyente{
		ContribuyenteIdentificador: identificador,
		ContribuyenteNombre:        "María García",
		ContribuyenteMontoMensual:  decimal.NewFromInt(750),
		ContribuyenteTipoImpuesto:  "Tasa Retributiva",
	}))
	c, err := s.store.BuscarPorIdentificador(s.ctx, identificador)
	s.Require().NoError(err)
	c.ContribuyenteDeuda = decimal.NewFromInt(deuda)
	s.Require().NoError(s.store.Guardar(s.ctx, c))
}

func (s *ConciliadorSuite) registrarPagoEnPasarela(transaccionID, estado, referencia string, monto int64) {
	s.pasarela.pagos[transaccionID] = &PagoProcesador{
		TransaccionID:     transaccionID,
		Estado:            estado,
		Monto:             decimal.NewFromInt(monto),
		ReferenciaExterna: referencia,
		FechaAprobacion:   time.Now(),
	}
}

func (s *ConciliadorSuite) notificacion(transaccionID string) Notificacion {
	return Notificacion{
		Topico:        TopicoPago,
		TransaccionID: transaccionID,
		Payload:       []byte(`{"type":"payment","data":{"id":"` + transaccionID + `"}}`),
	}
}

func (s *ConciliadorSuite) TestPagoAprobado() {
	s.sembrarContribuyente("87654321", 1000)
	s.registrarPagoEnPasarela("900100", pagoModel.EstadoPagoAprobado, "87654321", 400)

	res, err := s.svc.Procesar(s.ctx, s.notificacion("900100"))
	s.Require().NoError(err)
	s.True(res.Procesada)

	c, err := s.store.BuscarPorIdentificador(s.ctx, "87654321")
	s.Require().NoError(err)
	s.True(c.ContribuyenteDeuda.Equal(decimal.NewFromInt(600)),
		"deuda esperada 600, obtuve %s", c.ContribuyenteDeuda)
	s.Equal(contribuyenteModel.EstadoSuscripcionActiva, c.ContribuyenteEstadoSuscripcion)

	pagos, err := s.store.ListarPagos(s.ctx, "87654321")
	s.Require().NoError(err)
	s.Require().Len(pagos, 1)
	s.Equal(pagoModel.MetodoRegistroWebhook, pagos[0].PagoMetodoRegistro)
}

func (s *ConciliadorSuite) TestDeudaConPisoEnCero() {
	s.sembrarContribuyente("87654321", 100)
	s.registrarPagoEnPasarela("900101", pagoModel.EstadoPagoAprobado, "87654321", 250)

	_, err := s.svc.Procesar(s.ctx, s.notificacion("900101"))
	s.Require().NoError(err)

	c, err := s.store.BuscarPorIdentificador(s.ctx, "87654321")
	s.Require().NoError(err)
	s.True(c.ContribuyenteDeuda.IsZero(), "la deuda nunca queda negativa")
}

func (s *ConciliadorSuite) TestPagoRechazado() {
	s.sembrarContribuyente("87654321", 1000)
	s.registrarPagoEnPasarela("900102", pagoModel.EstadoPagoRechazado, "87654321", 400)

	_, err := s.svc.Procesar(s.ctx, s.notificacion("900102"))
	s.Require().NoError(err)

	c, err := s.store.BuscarPorIdentificador(s.ctx, "87654321")
	s.Require().NoError(err)
	s.Equal(contribuyenteModel.EstadoSuscripcionProblemaPago, c.ContribuyenteEstadoSuscripcion)
	s.True(c.ContribuyenteDeuda.Equal(decimal.NewFromInt(1000)), "la deuda no cambia")

	pagos, err := s.store.ListarPagos(s.ctx, "87654321")
	s.Require().NoError(err)
	s.Len(pagos, 1, "el asiento se registra igual")
}

func (s *ConciliadorSuite) TestEstadoNoTerminalSoloAsienta() {
	s.sembrarContribuyente("87654321", 1000)
	s.registrarPagoEnPasarela("900103", pagoModel.EstadoPagoEnProceso, "87654321", 400)

	_, err := s.svc.Procesar(s.ctx, s.notificacion("900103"))
	s.Require().NoError(err)

	c, err := s.store.BuscarPorIdentificador(s.ctx, "87654321")
	s.Require().NoError(err)
	s.Equal(contribuyenteModel.EstadoSuscripcionPendiente, c.ContribuyenteEstadoSuscripcion)
	s.True(c.ContribuyenteDeuda.Equal(decimal.NewFromInt(1000)))

	pagos, err := s.store.ListarPagos(s.ctx, "87654321")
	s.Require().NoError(err)
	s.Len(pagos, 1)
}

func (s *ConciliadorSuite) TestSimulacionNoTocaNada() {
	s.sembrarContribuyente("87654321", 1000)

	res, err := s.svc.Procesar(s.ctx, s.notificacion(TransaccionSimulacion))
	s.Require().NoError(err)
	s.False(res.Procesada)

	pagos, err := s.store.ListarPagos(s.ctx, "87654321")
	s.Require().NoError(err)
	s.Empty(pagos)

	c, err := s.store.BuscarPorIdentificador(s.ctx, "87654321")
	s.Require().NoError(err)
	s.True(c.ContribuyenteDeuda.Equal(decimal.NewFromInt(1000)))
}

func (s *ConciliadorSuite) TestTopicoDistintoSeIgnora() {
	res, err := s.svc.Procesar(s.ctx, Notificacion{Topico: "preapproval", TransaccionID: "900104"})
	s.Require().NoError(err)
	s.False(res.Procesada)
}

func (s *ConciliadorSuite) TestSinDataIDSeReconoceSinAccion() {
	res, err := s.svc.Procesar(s.ctx, Notificacion{Topico: TopicoPago})
	s.Require().NoError(err)
	s.False(res.Procesada)
}

func (s *ConciliadorSuite) TestReferenciaDesconocidaFalla() {
	s.registrarPagoEnPasarela("900105", pagoModel.EstadoPagoAprobado, "00000000", 400)

	_, err := s.svc.Procesar(s.ctx, s.notificacion("900105"))
	s.Require().ErrorIs(err, repository.ErrContribuyenteNoEncontrado)

	pagos, err := s.store.ListarPagos(s.ctx, "00000000")
	s.Require().NoError(err)
	s.Empty(pagos, "sin contribuyente no se asienta nada")
}

func (s *ConciliadorSuite) TestSinReferenciaExternaFalla() {
	s.registrarPagoEnPasarela("900106", pagoModel.EstadoPagoAprobado, "", 400)

	_, err := s.svc.Procesar(s.ctx, s.notificacion("900106"))
	s.Require().ErrorIs(err, ErrSinReferenciaExterna)
}

func (s *ConciliadorSuite) TestErrorDePasarelaSePropaga() {
	s.pasarela.err = errors.New("timeout")

	_, err := s.svc.Procesar(s.ctx, s.notificacion("900107"))
	s.Require().ErrorIs(err, ErrPasarela)
}

func (s *ConciliadorSuite) TestReintentoIdempotente() {
	s.sembrarContribuyente("87654321", 1000)
	s.registrarPagoEnPasarela("900108", pagoModel.EstadoPagoAprobado, "87654321", 400)

	_, err := s.svc.Procesar(s.ctx, s.notificacion("900108"))
	s.Require().NoError(err)

	// El procesador reintenta la misma notificación: no se vuelve a bajar la deuda.
	res, err := s.svc.Procesar(s.ctx, s.notificacion("900108"))
	s.Require().NoError(err)
	s.False(res.Procesada)

	c, err := s.store.BuscarPorIdentificador(s.ctx, "87654321")
	s.Require().NoError(err)
	s.True(c.ContribuyenteDeuda.Equal(decimal.NewFromInt(600)))

	pagos, err := s.store.ListarPagos(s.ctx, "87654321")
	s.Require().NoError(err)
	s.Len(pagos, 1)
}
