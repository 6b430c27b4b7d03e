package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// DefaultReturnReason razón por defecto cuando el cajero no indica una.
const DefaultReturnReason = "Devolución completa procesada"

// ProcessReturnUseCase revierte una venta completa: persiste la devolución
// con sus líneas e incrementa el stock de cada producto, como una sola unidad
// atómica. Solo devolución total; a lo sumo una devolución por venta.
type ProcessReturnUseCase struct {
	txRunner   TxRunner
	saleRepo   repository.SaleRepository
	returnRepo repository.SaleReturnRepository
}

// NewProcessReturnUseCase construye el caso de uso.
func NewProcessReturnUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	returnRepo repository.SaleReturnRepository,
) *ProcessReturnUseCase {
	return &ProcessReturnUseCase{txRunner: txRunner, saleRepo: saleRepo, returnRepo: returnRepo}
}

// ProcessReturn procesa la devolución completa de la venta indicada.
// El monto por línea es (cantidad × precio de venta) − descuento aplicado.
// La unicidad se garantiza dos veces: chequeo de existencia (error amigable)
// y UNIQUE(original_sale_id) en la tabla (autoridad final bajo concurrencia).
func (uc *ProcessReturnUseCase) ProcessReturn(ctx context.Context, userID, saleID, reason string) (*dto.ReturnResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.returnRepo.GetByOriginalSaleID(saleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateReturn
	}
	saleItems, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	if len(saleItems) == 0 {
		return nil, domain.ErrNotFound
	}

	if reason == "" {
		reason = DefaultReturnReason
	}
	now := time.Now()
	totalRefund := decimal.Zero
	ret := &entity.SaleReturn{
		ID:                uuid.New().String(),
		ReturnTimestamp:   now,
		Reason:            reason,
		OriginalSaleID:    sale.ID,
		CustomerID:        sale.CustomerID,
		ProcessedByUserID: userID,
	}
	items := make([]*entity.SaleReturnItem, 0, len(saleItems))
	for _, item := range saleItems {
		refund := item.PriceAtSale.Mul(decimal.NewFromInt(int64(item.Quantity))).Sub(item.DiscountApplied)
		totalRefund = totalRefund.Add(refund)
		items = append(items, &entity.SaleReturnItem{
			ID:             uuid.New().String(),
			SaleReturnID:   ret.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			AmountRefunded: refund,
		})
	}
	ret.TotalRefundedAmount = totalRefund

	err = uc.txRunner.RunReturn(ctx, func(
		productRepo repository.ProductRepository,
		returnRepo repository.SaleReturnRepository,
	) error {
		if err := returnRepo.Create(ret); err != nil {
			return err
		}
		for _, item := range items {
			if err := returnRepo.CreateItem(item); err != nil {
				return err
			}
			if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret, items), nil
}

// GetReturn obtiene una devolución por ID con sus líneas.
func (uc *ProcessReturnUseCase) GetReturn(ctx context.Context, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.returnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.returnRepo.GetItemsByReturnID(id)
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret, items), nil
}

// ListReturns lista devoluciones con paginación.
func (uc *ProcessReturnUseCase) ListReturns(ctx context.Context, limit, offset int) ([]*dto.ReturnResponse, error) {
	list, err := uc.returnRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReturnResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReturnResponse(r, nil))
	}
	return out, nil
}

func toReturnResponse(ret *entity.SaleReturn, items []*entity.SaleReturnItem) *dto.ReturnResponse {
	resp := &dto.ReturnResponse{
		ID:                  ret.ID,
		ReturnTimestamp:     ret.ReturnTimestamp.Format(time.RFC3339),
		Reason:              ret.Reason,
		TotalRefundedAmount: ret.TotalRefundedAmount,
		OriginalSaleID:      ret.OriginalSaleID,
		CustomerID:          ret.CustomerID,
		ProcessedByUserID:   ret.ProcessedByUserID,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.ReturnItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			AmountRefunded: item.AmountRefunded,
		})
	}
	return resp
}
