package entity

import "time"

// Tipos de bodega.
const (
	WarehouseTypeOffice  = "office"
	WarehouseTypeManager = "manager"
)

// OfficeWarehouseID es el identificador fijo de la bodega central de oficina.
const OfficeWarehouseID = "office"

// Warehouse representa una bodega: la de oficina (única) o la de un gerente.
// ManagerID es la relación explícita bodega → gerente dueño (solo para type=manager).
type Warehouse struct {
	ID        string
	Name      string
	Type      string
	ManagerID string
	CreatedAt time.Time
}

// IsOffice indica si es la bodega central.
func (w *Warehouse) IsOffice() bool { return w.Type == WarehouseTypeOffice }

// ManagerWarehouseID devuelve el id de la bodega de un gerente: "manager-<managerID>".
func ManagerWarehouseID(managerID string) string {
	return "manager-" + managerID
}
