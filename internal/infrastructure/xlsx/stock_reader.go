package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/xuri/excelize/v2"
)

// quantityColumn encabezado requerido con la cantidad objetivo absoluta.
const quantityColumn = "NewQuantity"

// identifierColumns columnas identificadoras aceptadas, en orden de
// prioridad: si el archivo trae varias, gana la primera de esta lista.
var identifierColumns = []string{dto.ImportKeyBarcode, dto.ImportKeySKU, dto.ImportKeyProductID}

// ReadStockRows lee un .xlsx y extrae las filas de importación masiva de la
// primera hoja. La fila 1 debe traer los encabezados; las filas de datos se
// numeran desde 2 para que los mensajes del importador coincidan con lo que
// el usuario ve en su hoja de cálculo.
func ReadStockRows(r io.Reader) ([]dto.StockImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &domain.ValidationError{Msg: "no se pudo leer el archivo .xlsx: " + err.Error()}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.ValidationError{Msg: "el archivo no tiene hojas"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, &domain.ValidationError{Msg: "el archivo está vacío"}
	}

	idKey, idCol, qtyCol, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	out := make([]dto.StockImportRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		out = append(out, dto.StockImportRow{
			Row:           i + 2, // 1-based, la fila 1 es el encabezado
			IdentifierKey: idKey,
			Identifier:    cell(row, idCol),
			Quantity:      cell(row, qtyCol),
		})
	}
	return out, nil
}

// resolveColumns ubica la columna identificadora (por prioridad) y la de
// cantidad en la fila de encabezados.
func resolveColumns(header []string) (idKey string, idCol, qtyCol int, err error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(h)] = i
	}
	idCol = -1
	for _, key := range identifierColumns {
		if col, ok := byName[key]; ok {
			idKey = key
			idCol = col
			break
		}
	}
	if idCol < 0 {
		return "", 0, 0, &domain.ValidationError{
			Msg: "falta una columna identificadora: se requiere Barcode, SKU o ProductID",
		}
	}
	qtyCol, ok := byName[quantityColumn]
	if !ok {
		return "", 0, 0, &domain.ValidationError{Msg: "falta la columna " + quantityColumn}
	}
	return idKey, idCol, qtyCol, nil
}

// cell devuelve la celda en la columna pedida; GetRows recorta las celdas
// vacías al final de cada fila.
func cell(row []string, col int) string {
	if col < len(row) {
		return strings.TrimSpace(row[col])
	}
	return ""
}
