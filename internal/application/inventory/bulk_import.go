package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// StockLedger es la interfaz del ledger que el importador usa dentro de su
// propia transacción (misma tx del caller, patrón ApplyDeltaInTx).
type StockLedger interface {
	ApplyDeltaInTx(
		productRepo repository.ProductRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
		input ApplyDeltaInput,
		now time.Time,
	) (*entity.StockAdjustment, error)
}

// BulkImportUseCase aplica un lote de correcciones de cantidad absoluta desde
// una fuente tabular. Todo el lote corre en una sola transacción: las filas
// inválidas se omiten y reportan sin abortar, pero cualquier error inesperado
// revierte el lote completo.
type BulkImportUseCase struct {
	txRunner TxRunner
	ledger   StockLedger
}

// NewBulkImportUseCase construye el caso de uso.
func NewBulkImportUseCase(txRunner TxRunner, ledger StockLedger) *BulkImportUseCase {
	return &BulkImportUseCase{txRunner: txRunner, ledger: ledger}
}

// ImportStock procesa las filas secuencialmente dentro de una transacción.
// Cada fila válida produce un ajuste con razón "Bulk Upload" y delta
// (cantidad objetivo − stock actual). sourceName queda en las notas del
// ajuste para auditoría (nombre del archivo).
func (uc *BulkImportUseCase) ImportStock(ctx context.Context, userID, sourceName string, rows []dto.StockImportRow) (*dto.BulkImportResult, error) {
	result := &dto.BulkImportResult{}
	notes := ""
	if sourceName != "" {
		notes = "Archivo: " + sourceName
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		now := time.Now()
		for _, row := range rows {
			if strings.TrimSpace(row.Identifier) == "" || strings.TrimSpace(row.Quantity) == "" {
				uc.skip(result, row.Row, "omitida, datos faltantes")
				continue
			}
			target, convErr := strconv.Atoi(strings.TrimSpace(row.Quantity))
			if convErr != nil || target < 0 {
				uc.skip(result, row.Row, fmt.Sprintf("cantidad inválida %q, debe ser un entero no negativo", row.Quantity))
				continue
			}

			product, err := uc.resolveProduct(productRepo, row)
			if err != nil {
				return err // error de infraestructura: aborta el lote completo
			}
			if product == nil {
				uc.skip(result, row.Row, fmt.Sprintf("producto con %s %q no encontrado", row.IdentifierKey, row.Identifier))
				continue
			}

			// Releer con bloqueo de fila: el delta se calcula contra el stock
			// autoritativo dentro de la transacción.
			locked, err := productRepo.GetForUpdate(product.ID)
			if err != nil {
				return err
			}
			delta := target - locked.StockQuantity
			if delta == 0 {
				// El ledger rechaza deltas 0; la fila ya está en la cantidad
				// objetivo y no amerita un registro de auditoría.
				uc.skip(result, row.Row, "ya está en la cantidad objetivo")
				continue
			}

			if _, err := uc.ledger.ApplyDeltaInTx(productRepo, adjustmentRepo, ApplyDeltaInput{
				ProductID: product.ID,
				UserID:    userID,
				Delta:     delta,
				Reason:    entity.ReasonBulkUpload,
				Notes:     notes,
			}, now); err != nil {
				return err
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *BulkImportUseCase) skip(result *dto.BulkImportResult, row int, msg string) {
	result.Skipped++
	result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: %s.", row, msg))
}

func (uc *BulkImportUseCase) resolveProduct(productRepo repository.ProductRepository, row dto.StockImportRow) (*entity.Product, error) {
	id := strings.TrimSpace(row.Identifier)
	switch row.IdentifierKey {
	case dto.ImportKeyBarcode:
		return productRepo.GetByBarcode(id)
	case dto.ImportKeySKU:
		return productRepo.GetBySKU(id)
	case dto.ImportKeyProductID:
		return productRepo.GetByID(id)
	}
	return nil, nil
}
