package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

var oneHundred = decimal.NewFromInt(100)

// ProcessSaleUseCase convierte un carrito en una venta persistida
// descontando inventario, como una sola unidad atómica.
type ProcessSaleUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

// NewProcessSaleUseCase construye el caso de uso.
func NewProcessSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) *ProcessSaleUseCase {
	return &ProcessSaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
	}
}

// ProcessSale valida el carrito (fail-fast, identificando la línea ofensora),
// verifica stock, calcula totales y confirma la venta: cabecera, líneas y un
// decremento condicional de stock por línea, todo en una transacción. El
// decremento condicional es el chequeo autoritativo final: si otra venta
// concurrente ya consumió el stock, la transacción completa se revierte con
// StockDiscrepancyError y nada queda parcialmente aplicado.
func (uc *ProcessSaleUseCase) ProcessSale(ctx context.Context, userID string, in dto.CartRequest) (*dto.ReceiptData, error) {
	if len(in.Items) == 0 {
		return nil, &domain.ValidationError{Msg: "no se puede procesar una venta sin ítems"}
	}

	// 1) Validación por línea + chequeo de stock (lectura posiblemente
	// desactualizada; el guard final va dentro de la tx).
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for i, item := range in.Items {
		line := i + 1
		if item.ProductID == "" {
			return nil, &domain.ValidationError{Line: line, Msg: "product_id es requerido"}
		}
		if item.Quantity <= 0 {
			return nil, &domain.ValidationError{Line: line, Msg: "la cantidad debe ser un entero positivo"}
		}
		if item.PriceAtSale.IsNegative() {
			return nil, &domain.ValidationError{Line: line, Msg: "el precio no puede ser negativo"}
		}
		if item.DiscountApplied.IsNegative() {
			return nil, &domain.ValidationError{Line: line, Msg: "el descuento no puede ser negativo"}
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.ValidationError{Line: line, Msg: "producto " + item.ProductID + " no existe"}
		}
		if product.StockQuantity < item.Quantity {
			return nil, &domain.InsufficientStockError{
				Product:   product.Name,
				Available: product.StockQuantity,
				Requested: item.Quantity,
			}
		}
		productsByID[item.ProductID] = product
	}

	// 2) Totales: subtotal = Σ(cantidad × precio), descuento = Σ descuentos,
	// final = max(0, subtotal − descuento).
	subtotal := decimal.Zero
	discountTotal := decimal.Zero
	for _, item := range in.Items {
		subtotal = subtotal.Add(item.PriceAtSale.Mul(decimal.NewFromInt(int64(item.Quantity))))
		discountTotal = discountTotal.Add(item.DiscountApplied)
	}
	finalAmount := subtotal.Sub(discountTotal)
	if finalAmount.IsNegative() {
		finalAmount = decimal.Zero
	}

	// Cliente opcional: un ID que no resuelve no bloquea la venta, pero un
	// fallo del repositorio sí se propaga (nil, nil significa "no existe").
	var customer *entity.Customer
	if in.CustomerID != "" {
		var err error
		customer, err = uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentCash
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		SaleTimestamp: now,
		TotalAmount:   subtotal,
		DiscountTotal: discountTotal,
		FinalAmount:   finalAmount,
		PaymentMethod: paymentMethod,
		Notes:         in.Notes,
		UserID:        userID,
	}
	if customer != nil {
		sale.CustomerID = customer.ID
	}
	items := make([]*entity.SaleItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, &entity.SaleItem{
			ID:              uuid.New().String(),
			SaleID:          sale.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtSale:     item.PriceAtSale,
			DiscountApplied: item.DiscountApplied,
		})
	}

	// 3) Escritura atómica: cabecera, líneas y decrementos condicionales.
	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			if err := productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, domain.ErrStockDiscrepancy) {
					return &domain.StockDiscrepancyError{Product: productsByID[item.ProductID].Name}
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buildReceipt(sale, items, productsByID, customer), nil
}

// buildReceipt arma la estructura de recibo: el único contrato del motor de
// ventas hacia los renderizadores externos (térmico, PDF).
func buildReceipt(sale *entity.Sale, items []*entity.SaleItem, productsByID map[string]*entity.Product, customer *entity.Customer) *dto.ReceiptData {
	receipt := &dto.ReceiptData{
		SaleID:        sale.ID,
		Timestamp:     sale.SaleTimestamp.Format(time.RFC3339),
		Subtotal:      sale.TotalAmount.Round(2),
		Discount:      sale.DiscountTotal.Round(2),
		Total:         sale.FinalAmount.Round(2),
		PaymentMethod: sale.PaymentMethod,
	}
	if customer != nil {
		receipt.CustomerName = customer.Name
		receipt.CustomerPhone = customer.Phone
	}
	for _, item := range items {
		itemTotal := item.PriceAtSale.Mul(decimal.NewFromInt(int64(item.Quantity)))
		discountPercent := decimal.Zero
		if itemTotal.IsPositive() && item.DiscountApplied.IsPositive() {
			discountPercent = item.DiscountApplied.Div(itemTotal).Mul(oneHundred).Round(2)
		}
		receipt.Items = append(receipt.Items, dto.ReceiptItem{
			Name:                    productsByID[item.ProductID].Name,
			Quantity:                item.Quantity,
			Price:                   item.PriceAtSale.Round(2),
			ItemTotalBeforeDiscount: itemTotal.Round(2),
			DiscountPercent:         discountPercent,
			DiscountAmount:          item.DiscountApplied.Round(2),
			NetAmount:               itemTotal.Sub(item.DiscountApplied).Round(2),
		})
	}
	return receipt
}

// GetSale obtiene una venta por ID con sus líneas.
func (uc *ProcessSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// ListSales lista el historial de ventas con paginación.
func (uc *ProcessSaleUseCase) ListSales(ctx context.Context, limit, offset int) ([]*dto.SaleResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s, nil))
	}
	return out, nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		SaleTimestamp: sale.SaleTimestamp.Format(time.RFC3339),
		TotalAmount:   sale.TotalAmount,
		DiscountTotal: sale.DiscountTotal,
		FinalAmount:   sale.FinalAmount,
		PaymentMethod: sale.PaymentMethod,
		Notes:         sale.Notes,
		UserID:        sale.UserID,
		CustomerID:    sale.CustomerID,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtSale:     item.PriceAtSale,
			DiscountApplied: item.DiscountApplied,
		})
	}
	return resp
}
