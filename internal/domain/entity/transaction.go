package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de inventario.
const (
	TransactionTypeReceipt         = "receipt"          // entrada a oficina
	TransactionTypeTransfer        = "transfer"         // oficina → gerente
	TransactionTypeSale            = "sale"             // venta de un gerente
	TransactionTypeReturn          = "return"           // devolución a la bodega del gerente
	TransactionTypeContractorIssue = "contractor_issue" // salida a contratista externo
)

// ValidTransactionType indica si t es uno de los tipos conocidos.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeReceipt, TransactionTypeTransfer, TransactionTypeSale,
		TransactionTypeReturn, TransactionTypeContractorIssue:
		return true
	}
	return false
}

// Transaction es una entrada inmutable del libro. Quantity siempre es positiva;
// el signo lo dan FromWarehouseID (débito) y ToWarehouseID (abono).
type Transaction struct {
	ID              string
	Type            string
	ProductID       string
	Quantity        int
	FromWarehouseID string
	ToWarehouseID   string
	ManagerID       string
	AdminID         string
	Date            time.Time
	Notes           string
	Comments        string

	// Venta
	CustomerName  string
	CustomerPhone string
	CustomerCity  string
	SaleAmount    decimal.Decimal
	SaleID        string

	// Salida a contratista
	ContractorName string

	CreatedAt time.Time
	UpdatedAt *time.Time
}
