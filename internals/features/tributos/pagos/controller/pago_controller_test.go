package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	contribuyenteModel "tributos_backend/internals/features/tributos/contribuyentes/model"
	"tributos_backend/internals/features/tributos/contribuyentes/repository"
	pagoRoute "tributos_backend/internals/features/tributos/pagos/route"
	"tributos_backend/internals/features/tributos/pagos/service"
)

/* ===================== Pasarela fake ===================== */

type pasarelaFake struct {
	pagos map[string]*service.PagoProcesador
	err   error
}

func (f *pasarelaFake) CrearPreferencia(ctx context.Context, datos service.DatosPreferencia) (*service.Preferencia, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.Preferencia{ID: "pref-1", EnlacePago: "https://mp.test/init"}, nil
}

func (f *pasarelaFake) ObtenerPago(ctx context.Context, transaccionID string) (*service.PagoProcesador, error) {
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

type PagoControllerSuite struct {
	suite.Suite
	app      *fiber.App
	store    *repository.InMemory
	pasarela *pasarelaFake
}

func (s *PagoControllerSuite) SetupTest() {
	s.store = repository.NewInMemory()
	s.pasarela = &pasarelaFake{pagos: make(map[string]*service.PagoProcesador)}

	s.app = fiber.New()
	pagoRoute.PagoRoutes(s.app, s.store, s.pasarela, "https://tributos.test")

	s.Require().NoError(s.store.Upsert(context.Background(), &contribuyenteModel.Contribuyente{
		ContribuyenteIdentificador: "87654321",
		ContribuyenteNombre:        "María García",
		ContribuyenteMontoMensual:  decimal.NewFromInt(750),
		ContribuyenteTipoImpuesto:  "Tasa Retributiva",
	}))
	c, err := s.store.BuscarPorIdentificador(context.Background(), "87654321")
	s.Require().NoError(err)
	c.ContribuyenteDeuda = decimal.NewFromInt(1000)
	s.Require().NoError(s.store.Guardar(context.Background(), c))
}

func TestPagoControllerSuite(t *testing.T) {
	suite.Run(t, new(PagoControllerSuite))
}

func (s *PagoControllerSuite) webhook(body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, "/webhook/mercadopago", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *PagoControllerSuite) TestWebhookPayloadMalformado() {
	resp := s.webhook(`esto no es json`)
	s.Equal(http.StatusOK, resp.StatusCode, "un payload irrelevante nunca es error")
}

func (s *PagoControllerSuite) TestWebhookSimulacion() {
	resp := s.webhook(`{"type":"payment","data":{"id":"123456"}}`)
	s.Equal(http.StatusOK, resp.StatusCode)

	pagos, err := s.store.ListarPagos(context.Background(), "87654321")
	s.Require().NoError(err)
	s.Empty(pagos)
}

func (s *PagoControllerSuite) TestWebhookAprobado() {
	s.pasarela.pagos["900100"] = &service.PagoProcesador{
		TransaccionID:     "900100",
		Estado:            "approved",
		Monto:             decimal.NewFromInt(400),
		ReferenciaExterna: "87654321",
		FechaAprobacion:   time.Now(),
	}

	resp := s.webhook(`{"type":"payment","data":{"id":"900100"}}`)
	s.Equal(http.StatusOK, resp.StatusCode)

	c, err := s.store.BuscarPorIdentificador(context.Background(), "87654321")
	s.Require().NoError(err)
	s.True(c.ContribuyenteDeuda.Equal(decimal.NewFromInt(600)))
	s.Equal(contribuyenteModel.EstadoSuscripcionActiva, c.ContribuyenteEstadoSuscripcion)
}

func (s *PagoControllerSuite) TestWebhookContribuyenteDesconocido() {
	s.pasarela.pagos["900101"] = &service.PagoProcesador{
		TransaccionID:     "900101",
		Estado:            "approved",
		Monto:             decimal.NewFromInt(400),
		ReferenciaExterna: "00000000",
	}

	resp := s.webhook(`{"type":"payment","data":{"id":"900101"}}`)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *PagoControllerSuite) TestWebhookSinReferenciaExterna() {
	s.pasarela.pagos["900102"] = &service.PagoProcesador{
		TransaccionID: "900102",
		Estado:        "approved",
		Monto:         decimal.NewFromInt(400),
	}

	resp := s.webhook(`{"type":"payment","data":{"id":"900102"}}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *PagoControllerSuite) TestWebhookErrorDePasarela() {
	s.pasarela.err = errors.New("timeout")

	resp := s.webhook(`{"type":"payment","data":{"id":"900103"}}`)
	s.Equal(http.StatusBadGateway, resp.StatusCode)
}

func (s *PagoControllerSuite) TestIniciarPago() {
	req := httptest.NewRequest(http.MethodPost, "/pagar?dni=87654321&monto=500", nil)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	cuerpo, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var out map[string]any
	s.Require().NoError(json.Unmarshal(cuerpo, &out))
	s.Equal("https://mp.test/init", out["payment_link"])
}

func (s *PagoControllerSuite) TestIniciarPagoContribuyenteDesconocido() {
	req := httptest.NewRequest(http.MethodPost, "/pagar?dni=00000000&monto=500", nil)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *PagoControllerSuite) TestIniciarPagoSinMonto() {
	req := httptest.NewRequest(http.MethodPost, "/pagar?dni=87654321", nil)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *PagoControllerSuite) TestListarPagos() {
	s.pasarela.pagos["900104"] = &service.PagoProcesador{
		TransaccionID:     "900104",
		Estado:            "approved",
		Monto:             decimal.NewFromInt(400),
		ReferenciaExterna: "87654321",
		FechaAprobacion:   time.Now(),
	}
	s.webhook(`{"type":"payment","data":{"id":"900104"}}`)

	req := httptest.NewRequest(http.MethodGet, "/pagos/87654321", nil)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	cuerpo, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var pagos []map[string]any
	s.Require().NoError(json.Unmarshal(cuerpo, &pagos))
	s.Require().Len(pagos, 1)
	s.Equal("900104", pagos[0]["pago_transaccion_id"])
	s.Equal("webhook", pagos[0]["pago_metodo_registro"])
}
