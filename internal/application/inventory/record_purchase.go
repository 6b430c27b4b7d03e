package inventory

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

// RecordPurchaseUseCase registra una compra a proveedor: cabecera, líneas y
// los incrementos de stock correspondientes, en una sola transacción.
type RecordPurchaseUseCase struct {
	txRunner     PurchaseTxRunner
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
}

// NewRecordPurchaseUseCase construye el caso de uso.
func NewRecordPurchaseUseCase(
	txRunner PurchaseTxRunner,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) *RecordPurchaseUseCase {
	return &RecordPurchaseUseCase{txRunner: txRunner, productRepo: productRepo, purchaseRepo: purchaseRepo}
}

// RecordPurchase valida las líneas, calcula el costo total y confirma la
// compra. Cualquier error durante la escritura revierte todo.
func (uc *RecordPurchaseUseCase) RecordPurchase(ctx context.Context, userID string, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(in.Items) == 0 {
		return nil, &domain.ValidationError{Msg: "no se puede registrar una compra sin ítems"}
	}

	// Validación fuera de la tx (solo lectura), al estilo de la venta.
	productsByID := make(map[string]*entity.Product, len(in.Items))
	totalCost := decimal.Zero
	for i, item := range in.Items {
		line := i + 1
		if item.ProductID == "" {
			return nil, &domain.ValidationError{Line: line, Msg: "product_id es requerido"}
		}
		if item.Quantity <= 0 {
			return nil, &domain.ValidationError{Line: line, Msg: "la cantidad debe ser un entero positivo"}
		}
		if item.CostPrice.IsNegative() {
			return nil, &domain.ValidationError{Line: line, Msg: "el costo no puede ser negativo"}
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.ValidationError{Line: line, Msg: "producto " + item.ProductID + " no existe"}
		}
		productsByID[item.ProductID] = product
		totalCost = totalCost.Add(item.CostPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		PurchaseDate:  now,
		SupplierName:  in.SupplierName,
		InvoiceNumber: in.InvoiceNumber,
		TotalCost:     totalCost,
		Notes:         in.Notes,
		UserID:        userID,
		CreatedAt:     now,
	}
	items := make([]*entity.PurchaseItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			CostPrice:  item.CostPrice,
		})
	}

	err := uc.txRunner.RunPurchase(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range items {
			if err := purchaseRepo.CreateItem(item); err != nil {
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
	return toPurchaseResponse(purchase, items), nil
}

// GetPurchase obtiene una compra con sus líneas.
func (uc *RecordPurchaseUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.GetItemsByPurchaseID(id)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, items), nil
}

// ListPurchases lista compras con paginación.
func (uc *RecordPurchaseUseCase) ListPurchases(ctx context.Context, limit, offset int) ([]*dto.PurchaseResponse, error) {
	list, err := uc.purchaseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p, nil))
	}
	return out, nil
}

func toPurchaseResponse(p *entity.Purchase, items []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:            p.ID,
		PurchaseDate:  p.PurchaseDate.Format(time.RFC3339),
		SupplierName:  p.SupplierName,
		InvoiceNumber: p.InvoiceNumber,
		TotalCost:     p.TotalCost,
		Notes:         p.Notes,
		UserID:        p.UserID,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			CostPrice: item.CostPrice,
		})
	}
	return resp
}
