// Package report exporta el stock y el historial del libro a CSV, XLSX, PDF y XML.
package report

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// Formatos de exportación.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
	FormatXML  = "xml"
)

// ContentType devuelve el MIME de un formato.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatXML:
		return "application/xml; charset=utf-8"
	}
	return "application/octet-stream"
}

// ParseFormat normaliza el formato pedido y lo valida contra los permitidos.
func ParseFormat(raw string, allowed ...string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(raw))
	if f == "" {
		f = FormatCSV
	}
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", fmt.Errorf("formato %q no soportado: %w", raw, domain.ErrInvalidInput)
}

// FileName nombre sugerido para la descarga.
func FileName(base, format string) string {
	return base + "." + format
}
