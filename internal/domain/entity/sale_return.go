package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleReturn representa la devolución completa de una venta. A lo sumo una
// devolución por venta: además del chequeo de existencia, la tabla tiene un
// UNIQUE sobre original_sale_id.
type SaleReturn struct {
	ID                  string
	ReturnTimestamp     time.Time
	Reason              string
	TotalRefundedAmount decimal.Decimal
	OriginalSaleID      string
	CustomerID          string // opcional, heredado de la venta original
	ProcessedByUserID   string
}

// SaleReturnItem representa una línea devuelta. El monto reembolsado es
// (cantidad × precio de venta) − descuento aplicado en la línea original.
type SaleReturnItem struct {
	ID             string
	SaleReturnID   string
	ProductID      string
	Quantity       int
	AmountRefunded decimal.Decimal
}
