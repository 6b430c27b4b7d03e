package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para Purchase.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error)
	List(limit, offset int) ([]*entity.Purchase, error)
}
