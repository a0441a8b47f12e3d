package entity

import "time"

// Customer representa un cliente al que se le venden pedidos.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
