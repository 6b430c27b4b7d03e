package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// StockQuantity es el conteo autoritativo actual; solo se muta dentro de la
// transacción de venta, devolución, compra o ajuste (nunca read-modify-write
// fuera de una tx). Un producto referenciado por transacciones históricas no
// se elimina: se desactiva con IsActive.
type Product struct {
	ID                string
	Name              string
	Description       string
	Barcode           string // único, opcional
	SKU               string // único, opcional
	Category          string
	Brand             string
	PurchasePrice     decimal.Decimal
	SellingPrice      decimal.Decimal
	StockQuantity     int
	LowStockThreshold int
	DiscountPercent   decimal.Decimal
	IsActive          bool
	ExpiryDate        *time.Time // opcional
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral de reorden.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}
