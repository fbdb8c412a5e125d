package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es el registro editable de una venta de gerente.
// TransactionID enlaza con la transacción "sale" que generó el mismo evento.
type Sale struct {
	ID            string
	ManagerID     string
	ProductID     string
	Quantity      int
	Amount        decimal.Decimal
	CustomerName  string
	CustomerPhone string
	CustomerCity  string
	Date          time.Time
	Comments      string
	TransactionID string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
