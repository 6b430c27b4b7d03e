package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

var _ repository.SaleReturnRepository = (*SaleReturnRepo)(nil)

// SaleReturnRepo implementación del puerto SaleReturnRepository sobre PostgreSQL (usable con pool o tx).
type SaleReturnRepo struct {
	q Querier
}

// NewSaleReturnRepository construye el adaptador de persistencia para devoluciones. Pasar pool o tx (Querier).
func NewSaleReturnRepository(q Querier) *SaleReturnRepo {
	return &SaleReturnRepo{q: q}
}

// Create persiste la cabecera de la devolución. La tabla tiene
// UNIQUE(original_sale_id): bajo concurrencia, la segunda devolución de la
// misma venta choca aquí y se reporta como ErrDuplicateReturn.
func (r *SaleReturnRepo) Create(ret *entity.SaleReturn) error {
	query := `
		INSERT INTO sale_returns (id, return_timestamp, reason, total_refunded_amount, original_sale_id, customer_id, processed_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.ReturnTimestamp, ret.Reason, ret.TotalRefundedAmount,
		ret.OriginalSaleID, nullable(ret.CustomerID), ret.ProcessedByUserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReturn
		}
		return fmt.Errorf("insert sale return: %w", err)
	}
	return nil
}

// CreateItem persiste una línea devuelta.
func (r *SaleReturnRepo) CreateItem(item *entity.SaleReturnItem) error {
	query := `
		INSERT INTO sale_return_items (id, sale_return_id, product_id, quantity, amount_refunded)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleReturnID, item.ProductID, item.Quantity, item.AmountRefunded,
	)
	if err != nil {
		return fmt.Errorf("insert sale return item: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución por ID.
func (r *SaleReturnRepo) GetByID(id string) (*entity.SaleReturn, error) {
	return r.getOne(`
		SELECT id, return_timestamp, reason, total_refunded_amount, original_sale_id, customer_id, processed_by_user_id
		FROM sale_returns WHERE id = $1`, id)
}

// GetByOriginalSaleID obtiene la devolución asociada a una venta, si existe.
func (r *SaleReturnRepo) GetByOriginalSaleID(saleID string) (*entity.SaleReturn, error) {
	return r.getOne(`
		SELECT id, return_timestamp, reason, total_refunded_amount, original_sale_id, customer_id, processed_by_user_id
		FROM sale_returns WHERE original_sale_id = $1`, saleID)
}

func (r *SaleReturnRepo) getOne(query string, arg any) (*entity.SaleReturn, error) {
	var ret entity.SaleReturn
	var customerID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&ret.ID, &ret.ReturnTimestamp, &ret.Reason, &ret.TotalRefundedAmount,
		&ret.OriginalSaleID, &customerID, &ret.ProcessedByUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale return: %w", err)
	}
	if customerID != nil {
		ret.CustomerID = *customerID
	}
	return &ret, nil
}

// GetItemsByReturnID obtiene las líneas de una devolución.
func (r *SaleReturnRepo) GetItemsByReturnID(returnID string) ([]*entity.SaleReturnItem, error) {
	query := `
		SELECT id, sale_return_id, product_id, quantity, amount_refunded
		FROM sale_return_items WHERE sale_return_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, returnID)
	if err != nil {
		return nil, fmt.Errorf("list sale return items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleReturnItem
	for rows.Next() {
		var item entity.SaleReturnItem
		if err := rows.Scan(&item.ID, &item.SaleReturnID, &item.ProductID,
			&item.Quantity, &item.AmountRefunded); err != nil {
			return nil, fmt.Errorf("scan sale return item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// List lista devoluciones con paginación, más recientes primero.
func (r *SaleReturnRepo) List(limit, offset int) ([]*entity.SaleReturn, error) {
	query := `
		SELECT id, return_timestamp, reason, total_refunded_amount, original_sale_id, customer_id, processed_by_user_id
		FROM sale_returns ORDER BY return_timestamp DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sale returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleReturn
	for rows.Next() {
		var ret entity.SaleReturn
		var customerID *string
		if err := rows.Scan(&ret.ID, &ret.ReturnTimestamp, &ret.Reason, &ret.TotalRefundedAmount,
			&ret.OriginalSaleID, &customerID, &ret.ProcessedByUserID); err != nil {
			return nil, fmt.Errorf("scan sale return: %w", err)
		}
		if customerID != nil {
			ret.CustomerID = *customerID
		}
		list = append(list, &ret)
	}
	return list, rows.Err()
}
