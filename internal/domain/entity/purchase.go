package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a proveedor (entrada de mercancía).
type Purchase struct {
	ID            string
	PurchaseDate  time.Time
	SupplierName  string
	InvoiceNumber string
	TotalCost     decimal.Decimal
	Notes         string
	UserID        string
	CreatedAt     time.Time
}

// PurchaseItem representa una línea de compra. Su confirmación incrementa el
// stock del producto referenciado dentro de la misma transacción.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	CostPrice  decimal.Decimal
}
