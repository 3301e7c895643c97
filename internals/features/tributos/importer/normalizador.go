package importer

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

/* =========================================================
   Normalización de filas del padrón (CSV → registro canónico)
========================================================= */

// Columnas del export de planilla del municipio (nombres exactos).
const (
	ColumnaContribuyente = "CONTRIBUYENTE"
	ColumnaDNI           = "DNI"
	ColumnaNomenclatura  = "NOMENCLATURA CATASTRAL"

	// Columna de monto por defecto (el export trae un mes por columna).
	ColumnaMontoPorDefecto = "DICIEMBRE"

	TipoImpuestoPorDefecto = "Tasa Retributiva"

	// Centinela del catastro: lote sin mensura, no sirve como identificador.
	SinMensura = "sin mensura"
)

// Registro es la fila ya canónica, lista para upsertear.
type Registro struct {
	Identificador string
	Nombre        string
	Monto         decimal.Decimal
	TipoImpuesto  string
}

// Normalizador convierte filas crudas en registros canónicos. Las dos
// políticas que difieren por punto de entrada están explícitas acá en vez de
// heredarse calladas:
//   - ConservarMontosCero: el import directo conserva filas con monto cero;
//     la subida por lote a Airtable descarta todo monto no positivo.
//   - UsarNomenclatura: el fallback a nomenclatura catastral corre solo en
//     la subida por lote.
type Normalizador struct {
	ColumnaMonto        string
	ConservarMontosCero bool
	UsarNomenclatura    bool
	TipoImpuesto        string
}

func (n *Normalizador) columnaMonto() string {
	if n.ColumnaMonto != "" {
		return n.ColumnaMonto
	}
	return ColumnaMontoPorDefecto
}

func (n *Normalizador) tipoImpuesto() string {
	if n.TipoImpuesto != "" {
		return n.TipoImpuesto
	}
	return TipoImpuestoPorDefecto
}

// Normalizar procesa el lote completo. Una columna requerida ausente aborta
// todo el lote (la fuente es estructuralmente inválida); los errores por fila
// solo descartan o ajustan esa fila.
func (n *Normalizador) Normalizar(encabezados []string, filas [][]string) ([]Registro, error) {
	idx := make(map[string]int, len(encabezados))
	for i, h := range encabezados {
		idx[strings.TrimSpace(h)] = i
	}

	requeridas := []string{ColumnaContribuyente, ColumnaDNI, n.columnaMonto()}
	if n.UsarNomenclatura {
		requeridas = append(requeridas, ColumnaNomenclatura)
	}
	for _, col := range requeridas {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q en el CSV", col)
		}
	}

	celda := func(fila []string, col string) string {
		if j := idx[col]; j < len(fila) {
			return fila[j]
		}
		return ""
	}

	var registros []Registro
	for i, fila := range filas {
		nombre := strings.TrimSpace(celda(fila, ColumnaContribuyente))

		monto, ok := ParsearMonto(celda(fila, n.columnaMonto()))
		if !ok {
			log.Printf("[WARN] fila %d: monto %q no interpretable para %q, se usa 0",
				i+1, celda(fila, n.columnaMonto()), nombre)
		}
		if !n.ConservarMontosCero && !monto.IsPositive() {
			continue
		}

		nomenclatura := ""
		if n.UsarNomenclatura {
			nomenclatura = celda(fila, ColumnaNomenclatura)
		}
		identificador := ResolverIdentificador(celda(fila, ColumnaDNI), nomenclatura, n.UsarNomenclatura)
		if identificador == "" {
			log.Printf("[WARN] fila %d ignorada: sin DNI ni nomenclatura válida. Contribuyente: %q", i+1, nombre)
			continue
		}

		registros = append(registros, Registro{
			Identificador: identificador,
			Nombre:        nombre,
			Monto:         monto,
			TipoImpuesto:  n.tipoImpuesto(),
		})
	}
	return registros, nil
}

// ParsearMonto limpia un monto de planilla: "$ 1.234,56" → 1234.56. Un guión
// solo significa "sin monto" (cero). Devuelve false cuando el valor no se
// pudo interpretar y se cayó a cero (advertencia para el llamador).
func ParsearMonto(s string) (decimal.Decimal, bool) {
	limpio := strings.NewReplacer("$", "", " ", "", ".", "").Replace(strings.TrimSpace(s))
	limpio = strings.ReplaceAll(limpio, ",", ".")

	if limpio == "-" {
		return decimal.Zero, true
	}
	if limpio == "" {
		return decimal.Zero, false
	}

	monto, err := decimal.NewFromString(limpio)
	if err != nil {
		return decimal.Zero, false
	}
	return monto, true
}

// ResolverIdentificador limpia el DNI (los puntos son separador de miles
// dentro del propio número; si quedan varios tokens separados por espacio se
// toma el primero) y, si se habilita, cae a la nomenclatura catastral.
// Devuelve "" cuando no hay identificador usable.
func ResolverIdentificador(dni, nomenclatura string, usarNomenclatura bool) string {
	limpio := strings.ReplaceAll(strings.TrimSpace(dni), ".", "")
	if campos := strings.Fields(limpio); len(campos) > 0 {
		limpio = campos[0]
	} else {
		limpio = ""
	}

	if limpio == "" && usarNomenclatura {
		limpio = strings.TrimSpace(nomenclatura)
	}
	if limpio == SinMensura {
		return ""
	}
	return limpio
}
