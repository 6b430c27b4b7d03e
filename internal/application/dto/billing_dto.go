package dto

import "github.com/shopspring/decimal"

// CartItemRequest línea de carrito para POST /api/billing/sales.
type CartItemRequest struct {
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtSale     decimal.Decimal `json:"price_at_sale"`
	DiscountApplied decimal.Decimal `json:"discount_applied,omitempty"`
}

// CartRequest body para POST /api/billing/sales.
type CartRequest struct {
	Items         []CartItemRequest `json:"items"`
	CustomerID    string            `json:"customer_id,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}

// ReturnRequest body para POST /api/billing/sales/:id/return.
type ReturnRequest struct {
	ReturnReason string `json:"return_reason,omitempty"`
}

// ReceiptItem línea de recibo: el único contrato del motor de ventas hacia
// los renderizadores de recibo/factura (externos).
type ReceiptItem struct {
	Name                     string          `json:"name"`
	Quantity                 int             `json:"quantity"`
	Price                    decimal.Decimal `json:"price"`
	ItemTotalBeforeDiscount  decimal.Decimal `json:"item_total_before_discount"`
	DiscountPercent          decimal.Decimal `json:"discount_percent"`
	DiscountAmount           decimal.Decimal `json:"discount_amount"`
	NetAmount                decimal.Decimal `json:"net_amount"`
}

// ReceiptData estructura de recibo producida al confirmar una venta.
type ReceiptData struct {
	SaleID        string          `json:"sale_id"`
	Timestamp     string          `json:"timestamp"` // RFC 3339
	Items         []ReceiptItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
}

// SaleItemResponse línea de venta en respuestas de consulta.
type SaleItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtSale     decimal.Decimal `json:"price_at_sale"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`
}

// SaleResponse venta con detalle para GET /api/billing/sales/:id.
type SaleResponse struct {
	ID            string             `json:"id"`
	SaleTimestamp string             `json:"sale_timestamp"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	DiscountTotal decimal.Decimal    `json:"discount_total"`
	FinalAmount   decimal.Decimal    `json:"final_amount"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes,omitempty"`
	UserID        string             `json:"user_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// ReturnItemResponse línea devuelta en respuestas.
type ReturnItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Quantity       int             `json:"quantity"`
	AmountRefunded decimal.Decimal `json:"amount_refunded"`
}

// ReturnResponse devolución con detalle.
type ReturnResponse struct {
	ID                  string               `json:"id"`
	ReturnTimestamp     string               `json:"return_timestamp"`
	Reason              string               `json:"reason,omitempty"`
	TotalRefundedAmount decimal.Decimal      `json:"total_refunded_amount"`
	OriginalSaleID      string               `json:"original_sale_id"`
	CustomerID          string               `json:"customer_id,omitempty"`
	ProcessedByUserID   string               `json:"processed_by_user_id"`
	Items               []ReturnItemResponse `json:"items,omitempty"`
}
