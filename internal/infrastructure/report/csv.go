package report

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// transactionRecord fila plana del historial para CSV/XLSX.
type transactionRecord struct {
	Date           string `csv:"fecha"`
	Type           string `csv:"tipo"`
	Product        string `csv:"producto"`
	Quantity       int    `csv:"cantidad"`
	From           string `csv:"desde"`
	To             string `csv:"hacia"`
	Manager        string `csv:"gerente"`
	Admin          string `csv:"administrador"`
	Customer       string `csv:"cliente"`
	CustomerPhone  string `csv:"telefono"`
	CustomerCity   string `csv:"ciudad"`
	Amount         string `csv:"monto"`
	ContractorName string `csv:"contratista"`
	Notes          string `csv:"notas"`
	Comments       string `csv:"comentarios"`
	ID             string `csv:"id"`
}

// transactionHeaders en el mismo orden que los tags csv.
var transactionHeaders = []string{
	"fecha", "tipo", "producto", "cantidad", "desde", "hacia", "gerente", "administrador",
	"cliente", "telefono", "ciudad", "monto", "contratista", "notas", "comentarios", "id",
}

// TypeLabels nombre legible de cada tipo de transacción.
var TypeLabels = map[string]string{
	"receipt":          "Recepción",
	"transfer":         "Traslado",
	"sale":             "Venta",
	"return":           "Devolución",
	"contractor_issue": "Salida a contratista",
}

func typeLabel(t string) string {
	if l, ok := TypeLabels[t]; ok {
		return l
	}
	return t
}

func toRecords(rows []dto.TransactionResponse) []*transactionRecord {
	out := make([]*transactionRecord, 0, len(rows))
	for _, r := range rows {
		amount := ""
		if r.Type == "sale" {
			amount = r.SaleAmount.StringFixed(2)
		}
		out = append(out, &transactionRecord{
			Date:           r.Date.Format("2006-01-02"),
			Type:           typeLabel(r.Type),
			Product:        r.ProductName,
			Quantity:       r.Quantity,
			From:           r.FromWarehouseName,
			To:             r.ToWarehouseName,
			Manager:        r.ManagerName,
			Admin:          r.AdminName,
			Customer:       r.CustomerName,
			CustomerPhone:  r.CustomerPhone,
			CustomerCity:   r.CustomerCity,
			Amount:         amount,
			ContractorName: r.ContractorName,
			Notes:          r.Notes,
			Comments:       r.Comments,
			ID:             r.ID,
		})
	}
	return out
}

// StockCSV exporta filas de stock.
func StockCSV(rows []dto.StockRowDTO) ([]byte, error) {
	records := make([]*dto.StockRowDTO, 0, len(rows))
	for i := range rows {
		records = append(records, &rows[i])
	}
	b, err := gocsv.MarshalBytes(&records)
	if err != nil {
		return nil, fmt.Errorf("report: csv de stock: %w", err)
	}
	return b, nil
}

// TransactionsCSV exporta el historial.
func TransactionsCSV(rows []dto.TransactionResponse) ([]byte, error) {
	records := toRecords(rows)
	b, err := gocsv.MarshalBytes(&records)
	if err != nil {
		return nil, fmt.Errorf("report: csv de transacciones: %w", err)
	}
	return b, nil
}
