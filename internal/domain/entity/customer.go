package entity

import "time"

// Customer representa un cliente de la tienda (opcional en una venta).
type Customer struct {
	ID        string
	Name      string
	Phone     string // único, opcional
	Email     string // único, opcional
	Address   string
	CreatedAt time.Time
}
