package entity

import "time"

// Stock representa la cantidad actual de un producto en una bodega.
// Es una proyección del log de transacciones; la fila se crea en el primer abono y nunca se elimina.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    int
	UpdatedAt   time.Time
}
