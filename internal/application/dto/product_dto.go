package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	SKU               string          `json:"sku,omitempty"`
	Category          string          `json:"category,omitempty"`
	Brand             string          `json:"brand,omitempty"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	ExpiryDate        string          `json:"expiry_date,omitempty"` // YYYY-MM-DD
}

// UpdateProductRequest body para PUT /api/products/:id.
// El stock no se actualiza por aquí: toda mutación de stock pasa por el
// ledger, una venta, una devolución o una compra.
type UpdateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	SKU               string          `json:"sku,omitempty"`
	Category          string          `json:"category,omitempty"`
	Brand             string          `json:"brand,omitempty"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	ExpiryDate        string          `json:"expiry_date,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	SKU               string          `json:"sku,omitempty"`
	Category          string          `json:"category,omitempty"`
	Brand             string          `json:"brand,omitempty"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	IsActive          bool            `json:"is_active"`
	ExpiryDate        string          `json:"expiry_date,omitempty"`
	CreatedAt         string          `json:"created_at,omitempty"`
	UpdatedAt         string          `json:"updated_at,omitempty"`
}

// ProductSearchResult resultado para el buscador del punto de venta.
type ProductSearchResult struct {
	ID              string          `json:"id"`
	Text            string          `json:"text"` // "Nombre (Barcode: X, SKU: Y)"
	Name            string          `json:"name"`
	Barcode         string          `json:"barcode,omitempty"`
	SKU             string          `json:"sku,omitempty"`
	Brand           string          `json:"brand,omitempty"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	StockQuantity   int             `json:"stock_quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsNearExpiry    bool            `json:"is_near_expiry"`
}
