package entity

import "time"

// Store representa una tienda o sucursal donde se almacena inventario.
type Store struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
