package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptRequest body para POST /api/ledger/receipts.
type ReceiptRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// TransferRequest body para POST /api/ledger/transfers.
type TransferRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	ManagerID string `json:"manager_id"`
	Notes     string `json:"notes,omitempty"`
}

// SaleRequest body para POST /api/ledger/sales. Date en formato YYYY-MM-DD (vacío = hoy).
type SaleRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerCity  string          `json:"customer_city"`
	Date          string          `json:"date,omitempty"`
	Comments      string          `json:"comments,omitempty"`
}

// ReturnRequest body para POST /api/ledger/returns.
type ReturnRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Date      string `json:"date,omitempty"`
	Comments  string `json:"comments,omitempty"`
}

// ContractorIssueRequest body para POST /api/ledger/contractor-issues.
type ContractorIssueRequest struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	ContractorName string `json:"contractor_name"`
	Date           string `json:"date,omitempty"`
	Comments       string `json:"comments,omitempty"`
}

// UpdateSaleRequest body para PUT /api/sales/:id; campos ausentes no cambian.
type UpdateSaleRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Date     *string `json:"date,omitempty"`
	Comments *string `json:"comments,omitempty"`
}

// TransactionResponse transacción con producto, bodegas y usuarios resueltos.
type TransactionResponse struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name,omitempty"`
	Quantity          int             `json:"quantity"`
	FromWarehouseID   string          `json:"from_warehouse_id,omitempty"`
	FromWarehouseName string          `json:"from_warehouse_name,omitempty"`
	ToWarehouseID     string          `json:"to_warehouse_id,omitempty"`
	ToWarehouseName   string          `json:"to_warehouse_name,omitempty"`
	ManagerID         string          `json:"manager_id,omitempty"`
	ManagerName       string          `json:"manager_name,omitempty"`
	AdminID           string          `json:"admin_id,omitempty"`
	AdminName         string          `json:"admin_name,omitempty"`
	Date              time.Time       `json:"date"`
	Notes             string          `json:"notes,omitempty"`
	Comments          string          `json:"comments,omitempty"`
	CustomerName      string          `json:"customer_name,omitempty"`
	CustomerPhone     string          `json:"customer_phone,omitempty"`
	CustomerCity      string          `json:"customer_city,omitempty"`
	SaleAmount        decimal.Decimal `json:"sale_amount"`
	SaleID            string          `json:"sale_id,omitempty"`
	ContractorName    string          `json:"contractor_name,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}

// TransactionListResponse página del historial.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// SaleResponse venta de un gerente.
type SaleResponse struct {
	ID            string          `json:"id"`
	ManagerID     string          `json:"manager_id"`
	ManagerName   string          `json:"manager_name,omitempty"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	Quantity      int             `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerCity  string          `json:"customer_city"`
	Date          time.Time       `json:"date"`
	Comments      string          `json:"comments,omitempty"`
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// DriftDTO diferencia entre el stock guardado y el reconstruido desde el libro.
type DriftDTO struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Recorded    int    `json:"recorded"`
	Expected    int    `json:"expected"`
}

// ReconciliationResponse respuesta de GET /api/ledger/reconciliation.
type ReconciliationResponse struct {
	CheckedAt    time.Time  `json:"checked_at"`
	Consistent   bool       `json:"consistent"`
	Transactions int        `json:"transactions"`
	StockRows    int        `json:"stock_rows"`
	Drift        []DriftDTO `json:"drift"`
}
