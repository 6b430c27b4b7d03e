package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/infrastructure/xlsx"
	"github.com/xuri/excelize/v2"
)

// buildFile arma un .xlsx en memoria con las filas dadas en la primera hoja.
func buildFile(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadStockRows_ExtraeFilasConNumeracion(t *testing.T) {
	buf := buildFile(t,
		[]interface{}{"Barcode", "NewQuantity"},
		[]interface{}{"750100", "20"},
		[]interface{}{"750200", "0"},
	)

	rows, err := xlsx.ReadStockRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Row, "la primera fila de datos es la 2 del archivo")
	assert.Equal(t, dto.ImportKeyBarcode, rows[0].IdentifierKey)
	assert.Equal(t, "750100", rows[0].Identifier)
	assert.Equal(t, "20", rows[0].Quantity)
	assert.Equal(t, 3, rows[1].Row)
}

// Con varias columnas identificadoras presentes gana la de mayor prioridad:
// Barcode > SKU > ProductID.
func TestReadStockRows_PrioridadDeIdentificadores(t *testing.T) {
	buf := buildFile(t,
		[]interface{}{"ProductID", "SKU", "Barcode", "NewQuantity"},
		[]interface{}{"p1", "SKU-1", "750100", "5"},
	)

	rows, err := xlsx.ReadStockRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dto.ImportKeyBarcode, rows[0].IdentifierKey)
	assert.Equal(t, "750100", rows[0].Identifier)
}

func TestReadStockRows_SKUCuandoNoHayBarcode(t *testing.T) {
	buf := buildFile(t,
		[]interface{}{"SKU", "NewQuantity"},
		[]interface{}{"SKU-1", "5"},
	)

	rows, err := xlsx.ReadStockRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dto.ImportKeySKU, rows[0].IdentifierKey)
}

func TestReadStockRows_SinColumnaIdentificadora(t *testing.T) {
	buf := buildFile(t,
		[]interface{}{"Nombre", "NewQuantity"},
		[]interface{}{"Arroz", "5"},
	)

	_, err := xlsx.ReadStockRows(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadStockRows_SinColumnaNewQuantity(t *testing.T) {
	buf := buildFile(t,
		[]interface{}{"Barcode", "Cantidad"},
		[]interface{}{"750100", "5"},
	)

	_, err := xlsx.ReadStockRows(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// GetRows recorta celdas vacías al final; la fila corta debe producir campos
// vacíos, no un panic.
func TestReadStockRows_FilaCorta(t *testing.T) {
	buf := buildFile(t,
		[]interface{}{"Barcode", "NewQuantity"},
		[]interface{}{"750100"},
	)

	rows, err := xlsx.ReadStockRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "750100", rows[0].Identifier)
	assert.Empty(t, rows[0].Quantity)
}

func TestReadStockRows_ArchivoCorrupto(t *testing.T) {
	_, err := xlsx.ReadStockRows(bytes.NewBufferString("esto no es un xlsx"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
