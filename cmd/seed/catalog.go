package main

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/seed"
)

// catalogRow una línea del catálogo exportado desde la hoja de cálculo de oficina.
type catalogRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"nombre"`
	Description string `csv:"descripcion"`
	Unit        string `csv:"unidad"`
	Opening     int    `csv:"saldo_inicial"`
}

// decodeCatalog convierte a UTF-8 si el archivo viene en Latin-1 y parsea las filas.
// Filas sin id o nombre se descartan; ids repetidos se quedan con la última aparición.
func decodeCatalog(raw []byte) ([]catalogRow, error) {
	if !utf8.Valid(raw) {
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("decodificar Latin-1: %w", err)
		}
		raw = decoded
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	var rows []*catalogRow
	if err := gocsv.UnmarshalBytes(raw, &rows); err != nil {
		return nil, fmt.Errorf("parsear CSV: %w", err)
	}
	byID := make(map[string]catalogRow, len(rows))
	for _, r := range rows {
		r.ID = strings.TrimSpace(r.ID)
		r.Name = strings.TrimSpace(r.Name)
		if r.ID == "" || r.Name == "" {
			continue
		}
		r.Description = strings.TrimSpace(r.Description)
		r.Unit = strings.TrimSpace(r.Unit)
		if r.Unit == "" {
			r.Unit = "ud"
		}
		if r.Opening < 0 {
			return nil, fmt.Errorf("producto %s: saldo_inicial negativo", r.ID)
		}
		byID[r.ID] = *r
	}
	out := make([]catalogRow, 0, len(byID))
	for _, r := range byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// writeSQL escribe el script. El saldo inicial entra como transacción "receipt" y el stock
// de oficina solo se suma cuando esa transacción se insertó, así el libro y el stock coinciden
// aunque el script se ejecute dos veces.
func writeSQL(w io.Writer, rows []catalogRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos y saldo inicial de oficina\n")
	b.WriteString("-- Generado por cmd/seed\n\n")

	b.WriteString("-- 1. Productos\n")
	b.WriteString("INSERT INTO products (id, name, description, unit) VALUES\n")
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s')%s\n",
			escapeSQL(r.ID), escapeSQL(r.Name), escapeSQL(r.Description), escapeSQL(r.Unit), sep)
	}
	b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, unit = EXCLUDED.unit;\n\n")

	b.WriteString("-- 2. Saldo inicial (transacción + stock de oficina)\n")
	for _, r := range rows {
		if r.Opening == 0 {
			continue
		}
		fmt.Fprintf(&b, "WITH t AS (\n")
		fmt.Fprintf(&b, "  INSERT INTO transactions (id, type, product_id, quantity, to_warehouse_id, date, notes)\n")
		fmt.Fprintf(&b, "  VALUES ('opening-%s', '%s', '%s', %d, '%s', current_date, '%s')\n",
			escapeSQL(r.ID), entity.TransactionTypeReceipt, escapeSQL(r.ID), r.Opening,
			entity.OfficeWarehouseID, escapeSQL(seed.OpeningNotes))
		b.WriteString("  ON CONFLICT (id) DO NOTHING\n")
		b.WriteString("  RETURNING product_id, to_warehouse_id, quantity\n")
		b.WriteString(")\n")
		b.WriteString("INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)\n")
		b.WriteString("SELECT product_id, to_warehouse_id, quantity, now() FROM t\n")
		b.WriteString("ON CONFLICT (product_id, warehouse_id) DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
