// seed genera un script SQL con el catálogo de productos y el saldo inicial de oficina
// a partir de un CSV (columnas: id, nombre, descripcion, unidad, saldo_inicial).
// Acepta archivos en UTF-8 o Latin-1 (exportaciones de Excel).
//
// Uso: go run ./cmd/seed [catalogo.csv] [salida.sql]
// Por defecto lee catalogo.csv y escribe catalog_seed.sql en el directorio actual.
// El script se aplica con psql después del primer arranque con STORE_DRIVER=postgres
// (necesita la bodega de oficina creada por la semilla).
package main

import (
	"fmt"
	"os"
)

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := "catalog_seed.sql"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err := decodeCatalog(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catálogo: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "Catálogo vacío")
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	total := 0
	for _, r := range rows {
		total += r.Opening
	}
	fmt.Printf("Generado %s: %d productos, %d unidades de saldo inicial\n", outPath, len(rows), total)
}
