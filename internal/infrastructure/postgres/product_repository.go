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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, barcode, sku, category, brand,
	purchase_price, selling_price, stock_quantity, low_stock_threshold,
	discount_percent, is_active, expiry_date, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, nullable(product.Barcode), nullable(product.SKU),
		product.Category, product.Brand, product.PurchasePrice, product.SellingPrice,
		product.StockQuantity, product.LowStockThreshold, product.DiscountPercent,
		product.IsActive, product.ExpiryDate, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) y la devuelve.
// Solo tiene sentido con un Querier atado a una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	var barcode, sku *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.Description, &barcode, &sku, &p.Category, &p.Brand,
		&p.PurchasePrice, &p.SellingPrice, &p.StockQuantity, &p.LowStockThreshold,
		&p.DiscountPercent, &p.IsActive, &p.ExpiryDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	if sku != nil {
		p.SKU = *sku
	}
	return &p, nil
}

// Update actualiza los datos del catálogo. No toca stock_quantity: el stock
// solo se muta vía UpdateStock, DecrementStock o IncrementStock dentro de una tx.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, barcode = $4, sku = $5,
			category = $6, brand = $7, purchase_price = $8, selling_price = $9,
			low_stock_threshold = $10, discount_percent = $11, expiry_date = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, nullable(product.Barcode), nullable(product.SKU),
		product.Category, product.Brand, product.PurchasePrice, product.SellingPrice,
		product.LowStockThreshold, product.DiscountPercent, product.ExpiryDate, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe el stock absoluto. Usado por el ledger con la fila ya
// bloqueada por GetForUpdate.
func (r *ProductRepo) UpdateStock(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// DecrementStock resta qty de forma condicional: la fila solo se actualiza si
// el stock alcanza. Cero filas afectadas significa que una venta concurrente
// consumió el stock primero; se reporta como ErrStockDiscrepancy para que el
// caller revierta la transacción.
func (r *ProductRepo) DecrementStock(id string, qty int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = now()
		 WHERE id = $1 AND stock_quantity >= $2`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrStockDiscrepancy
	}
	return nil
}

// IncrementStock suma qty (devoluciones y compras).
func (r *ProductRepo) IncrementStock(id string, qty int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("increment product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Search busca productos activos por nombre, barcode o SKU (ILIKE).
func (r *ProductRepo) Search(query string, limit int) ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + ` FROM products
		WHERE is_active = true AND (name ILIKE $1 OR barcode ILIKE $1 OR sku ILIKE $1)
		ORDER BY name ASC LIMIT $2`
	rows, err := r.q.Query(context.Background(), sql, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListLowStock lista productos activos en o bajo su umbral de reorden.
func (r *ProductRepo) ListLowStock(limit int) ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + ` FROM products
		WHERE is_active = true AND stock_quantity <= low_stock_threshold
		ORDER BY stock_quantity ASC LIMIT $1`
	rows, err := r.q.Query(context.Background(), sql, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Deactivate marca el producto como inactivo; los registros históricos que lo
// referencian permanecen intactos.
func (r *ProductRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var barcode, sku *string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &barcode, &sku, &p.Category, &p.Brand,
			&p.PurchasePrice, &p.SellingPrice, &p.StockQuantity, &p.LowStockThreshold,
			&p.DiscountPercent, &p.IsActive, &p.ExpiryDate, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if barcode != nil {
			p.Barcode = *barcode
		}
		if sku != nil {
			p.SKU = *sku
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// nullable convierte cadenas vacías en NULL para columnas con UNIQUE parcial
// (varios productos sin barcode no deben chocar entre sí).
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
