package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos de mutación de stock solo deben invocarse con una
// implementación atada a una transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	// Search busca productos activos por nombre, barcode o SKU (ILIKE).
	Search(query string, limit int) ([]*entity.Product, error)
	// ListLowStock lista productos activos en o bajo su umbral de reorden.
	ListLowStock(limit int) ([]*entity.Product, error)
	// Deactivate marca el producto como inactivo; nunca se borran productos
	// referenciados por transacciones históricas.
	Deactivate(id string) error

	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) y la
	// devuelve; serializa mutaciones concurrentes de stock por producto.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock escribe el stock absoluto (usado por el ledger con la fila
	// ya bloqueada).
	UpdateStock(id string, quantity int) error
	// DecrementStock resta qty solo si el stock resultante no es negativo;
	// devuelve domain.ErrStockDiscrepancy si la condición falla (carrera).
	DecrementStock(id string, qty int) error
	// IncrementStock suma qty (devoluciones y compras).
	IncrementStock(id string, qty int) error
}
