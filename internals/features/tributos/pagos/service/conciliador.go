package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"tributos_backend/internals/features/tributos/contribuyentes/repository"
	pagoModel "tributos_backend/internals/features/tributos/pagos/model"
)

/* =========================================================
   Conciliación de pagos

   Notificación del webhook → transición de estado del
   contribuyente + asiento inmutable en el libro de pagos.
========================================================= */

// TransaccionSimulacion es el ID que manda la herramienta de prueba de
// webhooks de MercadoPago: se responde OK sin tocar nada.
const TransaccionSimulacion = "123456"

const TopicoPago = "payment"

var (
	// ErrSinReferenciaExterna: el pago no trae external_reference, no hay
	// forma de saber a qué contribuyente imputarlo.
	ErrSinReferenciaExterna = errors.New("la notificación de pago no trae referencia externa")

	// ErrPasarela: el PSP no devolvió una respuesta utilizable; se señala al
	// notificador para que reintente.
	ErrPasarela = errors.New("sin respuesta utilizable del procesador de pagos")
)

// Notificacion es el webhook ya parseado (tópico + data.id + payload crudo).
type Notificacion struct {
	Topico        string
	TransaccionID string
	Payload       []byte
}

type ResultadoConciliacion struct {
	Procesada     bool            `json:"procesada"`
	Motivo        string          `json:"motivo,omitempty"`
	Identificador string          `json:"identificador,omitempty"`
	EstadoPago    string          `json:"estado_pago,omitempty"`
	DeudaRestante decimal.Decimal `json:"deuda_restante"`
}

// Conciliador aplica la notificación sobre el store. Un solo componente para
// ambos backends (antes había handlers casi idénticos por cada store).
type Conciliador struct {
	store    repository.ContribuyenteStore
	pasarela PasarelaPagos

	// Serializa por identificador: dos notificaciones concurrentes para el
	// mismo contribuyente no deben pisarse la deuda.
	locks sync.Map // identificador → *sync.Mutex
}

func NewConciliador(store repository.ContribuyenteStore, pasarela PasarelaPagos) *Conciliador {
	return &Conciliador{store: store, pasarela: pasarela}
}

func (s *Conciliador) lockPara(identificador string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(identificador, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Procesar ejecuta el flujo completo de conciliación. Las notificaciones
// malformadas o de otros tópicos nunca son error: se reconocen sin acción
// para no romper el contrato de reintentos del notificador.
func (s *Conciliador) Procesar(ctx context.Context, n Notificacion) (*ResultadoConciliacion, error) {
	if n.TransaccionID == "" {
		return &ResultadoConciliacion{Motivo: "notificación sin data.id, sin acción"}, nil
	}

	if n.TransaccionID == TransaccionSimulacion {
		log.Println("[INFO] Webhook de simulación recibido, no se procesa pago real")
		return &ResultadoConciliacion{Motivo: "webhook de simulación, sin acción"}, nil
	}

	if n.Topico != TopicoPago {
		return &ResultadoConciliacion{Motivo: "tópico ignorado: " + n.Topico}, nil
	}

	pago, err := s.pasarela.ObtenerPago(ctx, n.TransaccionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasarela, err)
	}
	if pago.ReferenciaExterna == "" {
		return nil, ErrSinReferenciaExterna
	}

	mu := s.lockPara(pago.ReferenciaExterna)
	mu.Lock()
	defer mu.Unlock()

	// Reintento de una transacción ya asentada: idempotente, sin re-aplicar
	// el ajuste de deuda.
	if existe, err := s.store.ExistePago(ctx, pago.TransaccionID); err != nil {
		return nil, err
	} else if existe {
		return &ResultadoConciliacion{Motivo: "transacción ya asentada"}, nil
	}

	c, err := s.store.BuscarPorIdentificador(ctx, pago.ReferenciaExterna)
	if err != nil {
		// Contribuyente inexistente con pago real: inconsistencia operativa,
		// se propaga para que alguien la mire (no se descarta en silencio).
		return nil, err
	}

	mutado := true
	switch pago.Estado {
	case pagoModel.EstadoPagoAprobado:
		c.AplicarPagoAprobado(pago.Monto)
	case pagoModel.EstadoPagoRechazado, pagoModel.EstadoPagoCancelado:
		c.MarcarProblemaPago()
	default:
		// Estados no terminales (in_process, pending, ...): queda el asiento,
		// el contribuyente no se toca.
		mutado = false
	}

	if mutado {
		if err := s.store.Guardar(ctx, c); err != nil {
			return nil, err
		}
	}

	fechaPago := pago.FechaAprobacion
	if fechaPago.IsZero() {
		fechaPago = time.Now()
	}

	asiento := &pagoModel.Pago{
		PagoContribuyenteIdentificador: c.ContribuyenteIdentificador,
		PagoMonto:                      pago.Monto,
		PagoTransaccionID:              pago.TransaccionID,
		PagoEstado:                     pago.Estado,
		PagoFechaPago:                  fechaPago,
		PagoMetodoRegistro:             pagoModel.MetodoRegistroWebhook,
		PagoPayload:                    datatypes.JSON(n.Payload),
	}
	if err := s.store.RegistrarPago(ctx, asiento); err != nil {
		if errors.Is(err, repository.ErrPagoDuplicado) {
			return &ResultadoConciliacion{Motivo: "transacción ya asentada"}, nil
		}
		return nil, err
	}

	log.Printf("[INFO] Pago %s conciliado para %s. Estado: %s",
		pago.TransaccionID, c.ContribuyenteIdentificador, pago.Estado)

	return &ResultadoConciliacion{
		Procesada:     true,
		Identificador: c.ContribuyenteIdentificador,
		EstadoPago:    pago.Estado,
		DeudaRestante: c.ContribuyenteDeuda,
	}, nil
}
