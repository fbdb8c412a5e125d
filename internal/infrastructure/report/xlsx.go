package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

const defaultSheet = "Sheet1"

// StockXLSX exporta el stock: una hoja por bodega más una hoja "Resumen".
func StockXLSX(groups []dto.WarehouseStockDTO) ([]byte, error) {
	f := excelize.NewFile()
	summary := "Resumen"
	f.SetSheetName(defaultSheet, summary)
	writeRow(f, summary, 1, "Bodega", "Productos", "Unidades")
	for i, g := range groups {
		writeRow(f, summary, i+2, g.WarehouseName, len(g.Items), g.TotalUnits)
	}

	used := map[string]bool{summary: true}
	for _, g := range groups {
		sheet := uniqueSheetName(g.WarehouseName, g.WarehouseID, used)
		f.NewSheet(sheet)
		writeRow(f, sheet, 1, "Producto", "Unidad", "Cantidad")
		for i, it := range g.Items {
			writeRow(f, sheet, i+2, it.ProductName, it.Unit, it.Quantity)
		}
	}
	f.SetActiveSheet(f.GetSheetIndex(summary))
	return write(f)
}

// TransactionsXLSX exporta el historial en una hoja.
func TransactionsXLSX(rows []dto.TransactionResponse) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Transacciones"
	f.SetSheetName(defaultSheet, sheet)

	header := make([]interface{}, len(transactionHeaders))
	for i, h := range transactionHeaders {
		header[i] = h
	}
	writeRow(f, sheet, 1, header...)
	for i, r := range toRecords(rows) {
		writeRow(f, sheet, i+2,
			r.Date, r.Type, r.Product, r.Quantity, r.From, r.To, r.Manager, r.Admin,
			r.Customer, r.CustomerPhone, r.CustomerCity, r.Amount, r.ContractorName,
			r.Notes, r.Comments, r.ID,
		)
	}
	return write(f)
}

func write(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		f.SetCellValue(sheet, cellName(i, row), v)
	}
}

// cellName convierte (columna base 0, fila base 1) en una referencia tipo "B3".
func cellName(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row)
}

const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// uniqueSheetName recorta al máximo de Excel y, si el nombre ya está usado,
// le agrega el id de la bodega (y un contador si aún choca).
func uniqueSheetName(name, id string, used map[string]bool) string {
	base := sheetNameReplacer.Replace(name)
	candidate := clip(base, maxSheetName)
	for n := 1; used[candidate]; n++ {
		suffix := " (" + id + ")"
		if n > 1 {
			suffix = " (" + id + "-" + strconv.Itoa(n) + ")"
		}
		suffix = clip(sheetNameReplacer.Replace(suffix), maxSheetName)
		candidate = clip(base, maxSheetName-len([]rune(suffix))) + suffix
	}
	used[candidate] = true
	return candidate
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
