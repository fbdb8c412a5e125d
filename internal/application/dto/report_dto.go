package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRowDTO fila de stock unida con su producto y bodega.
type StockRowDTO struct {
	ProductID     string    `json:"product_id" csv:"product_id"`
	ProductName   string    `json:"product_name" csv:"producto"`
	Unit          string    `json:"unit" csv:"unidad"`
	WarehouseID   string    `json:"warehouse_id" csv:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name" csv:"bodega"`
	Quantity      int       `json:"quantity" csv:"cantidad"`
	UpdatedAt     time.Time `json:"updated_at" csv:"-"`
}

// WarehouseStockDTO stock agrupado por bodega (reporte por almacén).
type WarehouseStockDTO struct {
	WarehouseID   string        `json:"warehouse_id"`
	WarehouseName string        `json:"warehouse_name"`
	TotalUnits    int           `json:"total_units"`
	Items         []StockRowDTO `json:"items"`
}

// ManagerRollupDTO resumen por gerente en un período.
type ManagerRollupDTO struct {
	ManagerID     string          `json:"manager_id"`
	ManagerName   string          `json:"manager_name"`
	Received      int             `json:"received"`
	Sold          int             `json:"sold"`
	Returned      int             `json:"returned"`
	TransferCount int             `json:"transfer_count"`
	SaleCount     int             `json:"sale_count"`
	ReturnCount   int             `json:"return_count"`
	SalesAmount   decimal.Decimal `json:"sales_amount"`
	CurrentStock  int             `json:"current_stock"`
	StockItems    int             `json:"stock_items"`
}

// ProductRollupDTO movimientos de un producto para un gerente.
type ProductRollupDTO struct {
	ManagerID   string `json:"manager_id"`
	ManagerName string `json:"manager_name"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Received    int    `json:"received"`
	Sold        int    `json:"sold"`
	Returned    int    `json:"returned"`
}

// StatisticsDTO respuesta de GET /api/reports/statistics.
type StatisticsDTO struct {
	TotalProducts    int `json:"total_products"`
	TotalStock       int `json:"total_stock"`
	OfficeStock      int `json:"office_stock"`
	ManagerStock     int `json:"manager_stock"`
	TotalSales       int `json:"total_sales"`
	ContractorIssued int `json:"contractor_issued"`
}
