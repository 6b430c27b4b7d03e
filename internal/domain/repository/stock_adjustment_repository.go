package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// StockAdjustmentRepository define el puerto para el historial de ajustes.
// Append-only: no hay update ni delete.
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockAdjustment, error)
	List(limit, offset int) ([]*entity.StockAdjustment, error)
}
