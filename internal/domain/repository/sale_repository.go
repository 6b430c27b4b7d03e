package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Create y CreateItem se invocan dentro de la misma transacción que los
// decrementos de stock; una venta confirmada es inmutable.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
