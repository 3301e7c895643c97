package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// LeerCSV abre el export del padrón y devuelve encabezados + filas. El
// dialecto es el de planilla estándar; las filas pueden venir con menos
// celdas que el encabezado.
func LeerCSV(ruta string) ([]string, [][]string, error) {
	f, err := os.Open(ruta)
	if err != nil {
		return nil, nil, fmt.Errorf("no se encontró el archivo %q: %w", ruta, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	encabezados, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("no se pudo leer el encabezado de %q: %w", ruta, err)
	}

	var filas [][]string
	for {
		fila, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error leyendo %q: %w", ruta, err)
		}
		filas = append(filas, fila)
	}
	return encabezados, filas, nil
}
