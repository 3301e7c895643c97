package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mehanizm/airtable"
	"github.com/shopspring/decimal"

	"tributos_backend/internals/configs"
	contribuyenteModel "tributos_backend/internals/features/tributos/contribuyentes/model"
	pagoModel "tributos_backend/internals/features/tributos/pagos/model"
)

/* =========================================================
   Store sobre Airtable (base heredada del municipio)

   Mapeo de columnas — la base existente usa los nombres viejos,
   así que acá se traduce hacia/desde el esquema canónico:

     ID_Contribuyente        ↔ contribuyente_identificador
     Nombre_Contribuyente    ↔ contribuyente_nombre
     Monto_Mensual_Impuesto  ↔ contribuyente_monto_mensual
     Tipo_Impuesto           ↔ contribuyente_tipo_impuesto
     Deuda                   ↔ contribuyente_deuda
     Estado_Suscripcion      ↔ contribuyente_estado_suscripcion
                               (Pendiente/Activa/Problema_Pago)
========================================================= */

const (
	campoIdentificador = "ID_Contribuyente"
	campoNombre        = "Nombre_Contribuyente"
	campoMontoMensual  = "Monto_Mensual_Impuesto"
	campoTipoImpuesto  = "Tipo_Impuesto"
	campoDeuda         = "Deuda"
	campoEstado        = "Estado_Suscripcion"

	campoPagoIdentificador = "Contribuyente_DNI"
	campoPagoMonto         = "Monto_Pagado"
	campoPagoTransaccion   = "ID_Transaccion_MP"
	campoPagoEstado        = "Estado_Pago"
	campoPagoFecha         = "Fecha_Pago_Real"
	campoPagoMetodo        = "Metodo_Registro"
)

type AirtableStore struct {
	contribuyentes *airtable.Table
	pagos          *airtable.Table

	// cache identificador → record de Airtable, para poder hacer el update
	// parcial sin re-consultar (Guardar siempre viene después de Buscar).
	mu        sync.Mutex
	registros map[string]*airtable.Record
}

func NewAirtableStore(cfg *configs.Config) *AirtableStore {
	client := airtable.NewClient(cfg.AirtableAPIKey)
	return &AirtableStore{
		contribuyentes: client.GetTable(cfg.AirtableBaseID, cfg.AirtableTablaContribuyentes),
		pagos:          client.GetTable(cfg.AirtableBaseID, cfg.AirtableTablaPagos),
		registros:      make(map[string]*airtable.Record),
	}
}

func (s *AirtableStore) BuscarPorIdentificador(ctx context.Context, identificador string) (*contribuyenteModel.Contribuyente, error) {
	records, err := s.contribuyentes.GetRecords().
		WithFilterFormula(fmt.Sprintf("{%s}='%s'", campoIdentificador, escaparFormula(identificador))).
		MaxRecords(1).
		Do()
	if err != nil {
		return nil, err
	}
	if len(records.Records) == 0 {
		return nil, ErrContribuyenteNoEncontrado
	}

	rec := records.Records[0]
	s.mu.Lock()
	s.registros[identificador] = rec
	s.mu.Unlock()

	return desdeCampos(rec.Fields), nil
}

func (s *AirtableStore) Upsert(ctx context.Context, c *contribuyenteModel.Contribuyente) error {
	existente, err := s.BuscarPorIdentificador(ctx, c.ContribuyenteIdentificador)
	if err != nil && err != ErrContribuyenteNoEncontrado {
		return err
	}

	if existente != nil {
		s.mu.Lock()
		rec := s.registros[c.ContribuyenteIdentificador]
		s.mu.Unlock()
		_, err = rec.UpdateRecordPartial(map[string]interface{}{
			campoNombre:       c.ContribuyenteNombre,
			campoMontoMensual: c.ContribuyenteMontoMensual.InexactFloat64(),
			campoTipoImpuesto: c.ContribuyenteTipoImpuesto,
		})
		return err
	}

	_, err = s.contribuyentes.AddRecords(&airtable.Records{
		Records: []*airtable.Record{{Fields: haciaCampos(c)}},
	})
	return err
}

func (s *AirtableStore) Guardar(ctx context.Context, c *contribuyenteModel.Contribuyente) error {
	s.mu.Lock()
	rec, ok := s.registros[c.ContribuyenteIdentificador]
	s.mu.Unlock()
	if !ok {
		if _, err := s.BuscarPorIdentificador(ctx, c.ContribuyenteIdentificador); err != nil {
			return err
		}
		s.mu.Lock()
		rec = s.registros[c.ContribuyenteIdentificador]
		s.mu.Unlock()
	}

	_, err := rec.UpdateRecordPartial(map[string]interface{}{
		campoNombre:       c.ContribuyenteNombre,
		campoMontoMensual: c.ContribuyenteMontoMensual.InexactFloat64(),
		campoTipoImpuesto: c.ContribuyenteTipoImpuesto,
		campoDeuda:        c.ContribuyenteDeuda.InexactFloat64(),
		campoEstado:       estadoLegado(c.ContribuyenteEstadoSuscripcion),
	})
	return err
}

func (s *AirtableStore) RegistrarPago(ctx context.Context, p *pagoModel.Pago) error {
	existe, err := s.ExistePago(ctx, p.PagoTransaccionID)
	if err != nil {
		return err
	}
	if existe {
		return ErrPagoDuplicado
	}

	_, err = s.pagos.AddRecords(&airtable.Records{
		Records: []*airtable.Record{{Fields: map[string]interface{}{
			campoPagoIdentificador: p.PagoContribuyenteIdentificador,
			campoPagoMonto:         p.PagoMonto.InexactFloat64(),
			campoPagoTransaccion:   p.PagoTransaccionID,
			campoPagoEstado:        p.PagoEstado,
			campoPagoFecha:         p.PagoFechaPago.Format(time.RFC3339),
			campoPagoMetodo:        p.PagoMetodoRegistro,
		}}},
	})
	return err
}

func (s *AirtableStore) ExistePago(ctx context.Context, transaccionID string) (bool, error) {
	records, err := s.pagos.GetRecords().
		WithFilterFormula(fmt.Sprintf("{%s}='%s'", campoPagoTransaccion, escaparFormula(transaccionID))).
		MaxRecords(1).
		Do()
	if err != nil {
		return false, err
	}
	return len(records.Records) > 0, nil
}

func (s *AirtableStore) ListarPagos(ctx context.Context, identificador string) ([]pagoModel.Pago, error) {
	records, err := s.pagos.GetRecords().
		WithFilterFormula(fmt.Sprintf("{%s}='%s'", campoPagoIdentificador, escaparFormula(identificador))).
		Do()
	if err != nil {
		return nil, err
	}

	pagos := make([]pagoModel.Pago, 0, len(records.Records))
	for _, rec := range records.Records {
		fecha, _ := time.Parse(time.RFC3339, aTexto(rec.Fields, campoPagoFecha))
		pagos = append(pagos, pagoModel.Pago{
			PagoContribuyenteIdentificador: aTexto(rec.Fields, campoPagoIdentificador),
			PagoMonto:                      aDecimal(rec.Fields, campoPagoMonto),
			PagoTransaccionID:              aTexto(rec.Fields, campoPagoTransaccion),
			PagoEstado:                     aTexto(rec.Fields, campoPagoEstado),
			PagoFechaPago:                  fecha,
			PagoMetodoRegistro:             aTexto(rec.Fields, campoPagoMetodo),
		})
	}
	return pagos, nil
}

/* ===================== Mapeo de campos ===================== */

func desdeCampos(fields map[string]interface{}) *contribuyenteModel.Contribuyente {
	return &contribuyenteModel.Contribuyente{
		ContribuyenteIdentificador:     aTexto(fields, campoIdentificador),
		ContribuyenteNombre:            aTexto(fields, campoNombre),
		ContribuyenteMontoMensual:      aDecimal(fields, campoMontoMensual),
		ContribuyenteTipoImpuesto:      aTexto(fields, campoTipoImpuesto),
		ContribuyenteDeuda:             aDecimal(fields, campoDeuda),
		ContribuyenteEstadoSuscripcion: estadoCanonico(aTexto(fields, campoEstado)),
	}
}

func haciaCampos(c *contribuyenteModel.Contribuyente) map[string]interface{} {
	return map[string]interface{}{
		campoIdentificador: c.ContribuyenteIdentificador,
		campoNombre:        c.ContribuyenteNombre,
		campoMontoMensual:  c.ContribuyenteMontoMensual.InexactFloat64(),
		campoTipoImpuesto:  c.ContribuyenteTipoImpuesto,
		campoDeuda:         c.ContribuyenteDeuda.InexactFloat64(),
		campoEstado:        estadoLegado(c.ContribuyenteEstadoSuscripcion),
	}
}

func estadoLegado(canonico string) string {
	switch canonico {
	case contribuyenteModel.EstadoSuscripcionActiva:
		return "Activa"
	case contribuyenteModel.EstadoSuscripcionProblemaPago:
		return "Problema_Pago"
	default:
		return "Pendiente"
	}
}

func estadoCanonico(legado string) string {
	switch legado {
	case "Activa":
		return contribuyenteModel.EstadoSuscripcionActiva
	case "Problema_Pago":
		return contribuyenteModel.EstadoSuscripcionProblemaPago
	default:
		return contribuyenteModel.EstadoSuscripcionPendiente
	}
}

func aTexto(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func aDecimal(fields map[string]interface{}, key string) decimal.Decimal {
	if v, ok := fields[key].(float64); ok {
		return decimal.NewFromFloat(v)
	}
	return decimal.Zero
}

// Airtable usa comillas simples en las fórmulas de filtro.
func escaparFormula(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
