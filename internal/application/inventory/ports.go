package inventory

import (
	"context"

	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger de stock
// y la importación masiva (Commit si fn retorna nil, Rollback si no).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error) error
}

// PurchaseTxRunner ejecuta una función dentro de una transacción con los
// repositorios de compras e inventario (para RecordPurchase).
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}
