package entity

import "time"

// Product representa un producto del catálogo. No se modifica después de creado.
type Product struct {
	ID          string
	Name        string
	Description string
	Unit        string // unidad de medida: ud, kg, l...
	CreatedAt   time.Time
}
