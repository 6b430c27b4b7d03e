package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// LedgerUseCase es el punto único por el que pasa todo cambio manual o masivo
// de stock: bloquea la fila del producto (SELECT FOR UPDATE), aplica el delta
// y deja un StockAdjustment inmutable con snapshot antes/después, todo en la
// misma transacción. El invariante: el stock actual es la suma corrida de
// todos los movimientos registrados (ventas −, devoluciones +, compras +,
// ajustes ±).
type LedgerUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.StockAdjustmentRepository // atado al pool, solo lecturas
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, adjustmentRepo repository.StockAdjustmentRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, adjustmentRepo: adjustmentRepo}
}

// ApplyDeltaInput entrada para aplicar un delta de stock.
type ApplyDeltaInput struct {
	ProductID string
	UserID    string
	Delta     int // con signo, nunca 0
	Reason    string
	Notes     string
}

// ApplyDelta valida el delta y la razón, inicia una transacción y aplica el
// cambio. Falla con NegativeStockError si el nivel resultante es negativo y
// la razón no está en la lista de correcciones permitidas
// (entity.ReasonAllowsNegative).
func (uc *LedgerUseCase) ApplyDelta(ctx context.Context, input ApplyDeltaInput) (*dto.AdjustmentResponse, error) {
	if input.Delta == 0 {
		return nil, &domain.ValidationError{Msg: "quantity_change no puede ser 0"}
	}
	if !entity.IsValidAdjustmentReason(input.Reason) {
		return nil, &domain.ValidationError{Msg: "razón de ajuste desconocida: " + input.Reason}
	}
	if input.ProductID == "" {
		return nil, &domain.ValidationError{Msg: "product_id es requerido"}
	}

	var adjustment *entity.StockAdjustment
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		adj, err := uc.ApplyDeltaInTx(productRepo, adjustmentRepo, input, time.Now())
		if err != nil {
			return err
		}
		adjustment = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adjustment), nil
}

// ApplyDeltaInTx aplica el delta usando repositorios del caller (misma
// transacción). Lo usa ApplyDelta y también el importador masivo para agrupar
// muchos deltas en un solo commit. Bloquea la fila del producto; el caller no
// debe haber mutado el stock de ese producto fuera de este método.
func (uc *LedgerUseCase) ApplyDeltaInTx(
	productRepo repository.ProductRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
	input ApplyDeltaInput,
	now time.Time,
) (*entity.StockAdjustment, error) {
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	before := product.StockQuantity
	after := before + input.Delta
	if after < 0 && !entity.ReasonAllowsNegative(input.Reason) {
		return nil, &domain.NegativeStockError{
			Product:   product.Name,
			Resulting: after,
			Reason:    input.Reason,
		}
	}

	if err := productRepo.UpdateStock(product.ID, after); err != nil {
		return nil, err
	}
	adjustment := &entity.StockAdjustment{
		ID:               uuid.New().String(),
		Timestamp:        now,
		ProductID:        product.ID,
		UserID:           input.UserID,
		QuantityChange:   input.Delta,
		Reason:           input.Reason,
		Notes:            input.Notes,
		StockLevelBefore: before,
		StockLevelAfter:  after,
	}
	if err := adjustmentRepo.Create(adjustment); err != nil {
		return nil, err
	}
	return adjustment, nil
}

// ListAdjustments lista el historial de ajustes (global o por producto).
func (uc *LedgerUseCase) ListAdjustments(ctx context.Context, productID string, limit, offset int) ([]*dto.AdjustmentResponse, error) {
	var (
		list []*entity.StockAdjustment
		err  error
	)
	if productID != "" {
		list, err = uc.adjustmentRepo.ListByProduct(productID, limit, offset)
	} else {
		list, err = uc.adjustmentRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAdjustmentResponse(a))
	}
	return out, nil
}

func toAdjustmentResponse(a *entity.StockAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:               a.ID,
		Timestamp:        a.Timestamp.Format(time.RFC3339),
		ProductID:        a.ProductID,
		UserID:           a.UserID,
		QuantityChange:   a.QuantityChange,
		Reason:           a.Reason,
		Notes:            a.Notes,
		StockLevelBefore: a.StockLevelBefore,
		StockLevelAfter:  a.StockLevelAfter,
	}
}
