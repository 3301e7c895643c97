package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

/* =========================================================
   Pasarela de pagos (MercadoPago)
========================================================= */

// DatosPreferencia es lo mínimo que hace falta para armar una preferencia
// de pago: el identificador viaja como external_reference y vuelve en el
// webhook para correlacionar.
type DatosPreferencia struct {
	Titulo            string
	Monto             decimal.Decimal
	NombrePagador     string
	EmailPagador      string
	ReferenciaExterna string
	BaseURL           string // URL pública para back_urls y notification_url
}

type Preferencia struct {
	ID         string
	EnlacePago string
}

// PagoProcesador es la vista normalizada de un pago consultado en el PSP.
type PagoProcesador struct {
	TransaccionID     string
	Estado            string
	Monto             decimal.Decimal
	ReferenciaExterna string
	FechaAprobacion   time.Time // cero si el PSP no la informó
}

// PasarelaPagos abstrae el PSP para que el conciliador sea testeable sin red.
type PasarelaPagos interface {
	CrearPreferencia(ctx context.Context, datos DatosPreferencia) (*Preferencia, error)
	ObtenerPago(ctx context.Context, transaccionID string) (*PagoProcesador, error)
}

/* ===================== Implementación sdk-go ===================== */

type MercadoPago struct {
	preferencias preference.Client
	pagos        payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("config de mercadopago: %w", err)
	}
	return &MercadoPago{
		preferencias: preference.NewClient(cfg),
		pagos:        payment.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) CrearPreferencia(ctx context.Context, datos DatosPreferencia) (*Preferencia, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      datos.Titulo,
				Quantity:   1,
				UnitPrice:  datos.Monto.InexactFloat64(),
				CurrencyID: "ARS",
			},
		},
		Payer: &preference.PayerRequest{
			Name:  datos.NombrePagador,
			Email: datos.EmailPagador,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: datos.BaseURL + "/success",
			Pending: datos.BaseURL + "/pending",
			Failure: datos.BaseURL + "/failure",
		},
		NotificationURL:   datos.BaseURL + "/webhook/mercadopago",
		ExternalReference: datos.ReferenciaExterna,
	}

	resp, err := m.preferencias.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Preferencia{ID: resp.ID, EnlacePago: resp.InitPoint}, nil
}

func (m *MercadoPago) ObtenerPago(ctx context.Context, transaccionID string) (*PagoProcesador, error) {
	id, err := strconv.Atoi(transaccionID)
	if err != nil {
		return nil, fmt.Errorf("id de transacción no numérico %q: %w", transaccionID, err)
	}

	resp, err := m.pagos.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PagoProcesador{
		TransaccionID:     transaccionID,
		Estado:            resp.Status,
		Monto:             decimal.NewFromFloat(resp.TransactionAmount),
		ReferenciaExterna: resp.ExternalReference,
		FechaAprobacion:   resp.DateApproved,
	}, nil
}
