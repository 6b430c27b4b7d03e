package entity

import "time"

// Razones de ajuste de stock.
const (
	ReasonStockTake    = "Stock Take"
	ReasonDamage       = "Damage"
	ReasonTheft        = "Theft"
	ReasonCorrection   = "Correction"
	ReasonInitialStock = "Initial Stock"
	ReasonPromotion    = "Promotion/Demo"
	ReasonBulkUpload   = "Bulk Upload"
	ReasonOther        = "Other"
)

// AdjustmentReasons lista las razones válidas para un ajuste manual o masivo.
var AdjustmentReasons = []string{
	ReasonStockTake, ReasonDamage, ReasonTheft, ReasonCorrection,
	ReasonInitialStock, ReasonPromotion, ReasonBulkUpload, ReasonOther,
}

// IsValidAdjustmentReason indica si la razón pertenece al catálogo.
func IsValidAdjustmentReason(reason string) bool {
	for _, r := range AdjustmentReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// ReasonAllowsNegative indica si la razón representa una corrección de
// realidad que puede dejar el stock calculado en negativo. Es la única
// política de stock negativo del sistema: todo ajuste manual o masivo pasa
// por aquí vía el ledger.
func ReasonAllowsNegative(reason string) bool {
	switch reason {
	case ReasonInitialStock, ReasonCorrection, ReasonDamage, ReasonTheft:
		return true
	}
	return false
}

// StockAdjustment es el registro inmutable de un cambio manual o masivo de
// stock. Append-only: StockLevelAfter debe ser StockLevelBefore +
// QuantityChange, y debe coincidir con el stock del producto al momento del
// commit.
type StockAdjustment struct {
	ID               string
	Timestamp        time.Time
	ProductID        string
	UserID           string
	QuantityChange   int // delta con signo, nunca 0
	Reason           string
	Notes            string
	StockLevelBefore int
	StockLevelAfter  int
}
