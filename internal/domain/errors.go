package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameExists    = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStockDiscrepancy  = errors.New("discrepancia de stock al confirmar")
	ErrDuplicateReturn   = errors.New("la venta ya tiene una devolución registrada")
	ErrNegativeStock     = errors.New("el ajuste dejaría el stock en negativo")
)

// ValidationError señala una línea de carrito, devolución o importación con
// datos faltantes o inválidos. Line es 1-based; 0 cuando el problema no es de
// una línea concreta.
type ValidationError struct {
	Line int
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("línea %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError indica que la cantidad solicitada supera el stock
// disponible al momento de la validación (lectura posiblemente desactualizada).
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d",
		e.Product, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// StockDiscrepancyError indica que el chequeo final de stock falló al momento
// del commit (carrera contra otra venta). La transacción completa se revierte;
// el caller puede reintentar.
type StockDiscrepancyError struct {
	Product string
}

func (e *StockDiscrepancyError) Error() string {
	return fmt.Sprintf("discrepancia de stock para %q al confirmar la venta", e.Product)
}

func (e *StockDiscrepancyError) Unwrap() error { return ErrStockDiscrepancy }

// NegativeStockError indica un ajuste que dejaría el stock en negativo con una
// razón fuera de la lista de correcciones permitidas.
type NegativeStockError struct {
	Product   string
	Resulting int
	Reason    string
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("el ajuste dejaría el stock de %q en %d (razón %q no lo permite)",
		e.Product, e.Resulting, e.Reason)
}

func (e *NegativeStockError) Unwrap() error { return ErrNegativeStock }
