package billing

import (
	"context"

	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción con los repositorios
// de facturación atados a esa tx. La transacción es la unidad de
// concurrencia: cabecera, líneas y mutaciones de stock se confirman o
// revierten juntas.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error

	RunReturn(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		returnRepo repository.SaleReturnRepository,
	) error) error
}
