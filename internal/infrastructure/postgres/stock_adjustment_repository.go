package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación del puerto StockAdjustmentRepository
// sobre PostgreSQL. El historial es append-only: solo INSERT y SELECT.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador para el historial de ajustes. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste un ajuste con sus snapshots de stock antes/después.
func (r *StockAdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, adjustment_timestamp, product_id, user_id, quantity_change, reason, notes, stock_level_before, stock_level_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.Timestamp, adjustment.ProductID, adjustment.UserID,
		adjustment.QuantityChange, adjustment.Reason, adjustment.Notes,
		adjustment.StockLevelBefore, adjustment.StockLevelAfter,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// ListByProduct lista los ajustes de un producto, más recientes primero.
func (r *StockAdjustmentRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, adjustment_timestamp, product_id, user_id, quantity_change, reason, notes, stock_level_before, stock_level_after
		FROM stock_adjustments WHERE product_id = $1
		ORDER BY adjustment_timestamp DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments by product: %w", err)
	}
	defer rows.Close()
	return scanAdjustments(rows)
}

// List lista todos los ajustes, más recientes primero.
func (r *StockAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, adjustment_timestamp, product_id, user_id, quantity_change, reason, notes, stock_level_before, stock_level_after
		FROM stock_adjustments ORDER BY adjustment_timestamp DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()
	return scanAdjustments(rows)
}

func scanAdjustments(rows pgx.Rows) ([]*entity.StockAdjustment, error) {
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.Timestamp, &a.ProductID, &a.UserID, &a.QuantityChange,
			&a.Reason, &a.Notes, &a.StockLevelBefore, &a.StockLevelAfter); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
