package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// ReceiveInput entrada de mercancía a la oficina.
type ReceiveInput struct {
	ProductID string
	Quantity  int
	AdminID   string
	Notes     string
}

// TransferInput traslado oficina → bodega del gerente.
type TransferInput struct {
	ProductID string
	Quantity  int
	ManagerID string
	AdminID   string
	Notes     string
}

// Customer datos del cliente de una venta.
type Customer struct {
	Name  string
	Phone string
	City  string
}

// SellInput venta de un gerente desde su bodega.
type SellInput struct {
	ManagerID string
	ProductID string
	Quantity  int
	Amount    decimal.Decimal
	Customer  Customer
	Date      time.Time // cero = hoy
	Comments  string
}

// ReturnInput devolución a la bodega del gerente.
type ReturnInput struct {
	ManagerID string
	ProductID string
	Quantity  int
	Date      time.Time
	Comments  string
}

// ContractorIssueInput salida de oficina a un contratista externo.
type ContractorIssueInput struct {
	ProductID      string
	Quantity       int
	ContractorName string
	AdminID        string
	Date           time.Time
	Comments       string
}

// SaleUpdate campos editables de una venta; nil = sin cambio.
type SaleUpdate struct {
	Quantity *int
	Date     *time.Time
	Comments *string
}

// ReconciliationReport resultado de comparar el stock con el replay del libro.
type ReconciliationReport struct {
	CheckedAt    time.Time
	Transactions int
	StockRows    int
	Drift        []inventory.Drift
}

// Consistent indica que no hay diferencias.
func (r *ReconciliationReport) Consistent() bool { return len(r.Drift) == 0 }
