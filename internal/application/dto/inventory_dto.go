package dto

import "github.com/shopspring/decimal"

// AdjustStockRequest body para POST /api/inventory/adjustments.
type AdjustStockRequest struct {
	ProductID      string `json:"product_id"`
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes,omitempty"`
}

// AdjustmentResponse ajuste registrado (con snapshot antes/después).
type AdjustmentResponse struct {
	ID               string `json:"id"`
	Timestamp        string `json:"timestamp"`
	ProductID        string `json:"product_id"`
	UserID           string `json:"user_id"`
	QuantityChange   int    `json:"quantity_change"`
	Reason           string `json:"reason"`
	Notes            string `json:"notes,omitempty"`
	StockLevelBefore int    `json:"stock_level_before"`
	StockLevelAfter  int    `json:"stock_level_after"`
}

// Columnas identificadoras aceptadas en la importación masiva, en orden de
// prioridad (la primera presente en el archivo gana).
const (
	ImportKeyBarcode   = "Barcode"
	ImportKeySKU       = "SKU"
	ImportKeyProductID = "ProductID"
)

// StockImportRow fila de importación masiva ya extraída del archivo tabular.
// Quantity llega crudo (texto de la celda); la validación numérica es del
// importador, que la reporta por fila sin abortar el lote.
type StockImportRow struct {
	Row           int    // posición en el archivo (1-based, incluye encabezado)
	IdentifierKey string // Barcode | SKU | ProductID
	Identifier    string
	Quantity      string
}

// BulkImportResult resumen de la importación masiva.
type BulkImportResult struct {
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// PurchaseRequest body para POST /api/inventory/purchases.
type PurchaseRequest struct {
	SupplierName  string                `json:"supplier_name,omitempty"`
	InvoiceNumber string                `json:"invoice_number,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Items         []PurchaseItemRequest `json:"items"`
}

// PurchaseItemResponse línea de compra en respuestas.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// PurchaseResponse compra con detalle.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	PurchaseDate  string                 `json:"purchase_date"`
	SupplierName  string                 `json:"supplier_name,omitempty"`
	InvoiceNumber string                 `json:"invoice_number,omitempty"`
	TotalCost     decimal.Decimal        `json:"total_cost"`
	Notes         string                 `json:"notes,omitempty"`
	UserID        string                 `json:"user_id"`
	Items         []PurchaseItemResponse `json:"items,omitempty"`
}
