package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "Cash"
	PaymentCard     = "Card"
	PaymentTransfer = "Transfer"
)

// Sale representa la cabecera de una venta. Inmutable una vez confirmada:
// no existe ruta de actualización, solo puede ser objetivo de a lo sumo una
// devolución (SaleReturn).
type Sale struct {
	ID            string
	SaleTimestamp time.Time
	TotalAmount   decimal.Decimal // subtotal: Σ(cantidad × precio)
	DiscountTotal decimal.Decimal // Σ descuentos de línea
	FinalAmount   decimal.Decimal // max(0, subtotal − descuento)
	PaymentMethod string
	Notes         string
	UserID        string
	CustomerID    string // opcional
}

// SaleItem representa una línea de venta. Se crea junto con la cabecera y el
// decremento de stock correspondiente, en la misma transacción.
type SaleItem struct {
	ID              string
	SaleID          string
	ProductID       string
	Quantity        int
	PriceAtSale     decimal.Decimal
	DiscountApplied decimal.Decimal
}
