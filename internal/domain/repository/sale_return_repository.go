package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// SaleReturnRepository define el puerto de persistencia para SaleReturn.
type SaleReturnRepository interface {
	// Create persiste la cabecera; la tabla tiene UNIQUE(original_sale_id),
	// una violación se reporta como domain.ErrDuplicateReturn.
	Create(ret *entity.SaleReturn) error
	CreateItem(item *entity.SaleReturnItem) error
	GetByID(id string) (*entity.SaleReturn, error)
	GetByOriginalSaleID(saleID string) (*entity.SaleReturn, error)
	GetItemsByReturnID(returnID string) ([]*entity.SaleReturnItem, error)
	List(limit, offset int) ([]*entity.SaleReturn, error)
}
