// Package inventory contiene la lógica pura del libro: efecto de cada transacción
// sobre las bodegas y reconstrucción del stock a partir del log.
package inventory

import (
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockKey identifica una fila de stock (producto, bodega).
type StockKey struct {
	ProductID   string
	WarehouseID string
}

// Effect es la variación de cantidad que una transacción produce en una bodega.
type Effect struct {
	WarehouseID string
	Delta       int
}

// Effects devuelve los débitos/abonos de una transacción.
// receipt: +destino; transfer: -origen +destino; sale: -origen; return: +destino;
// contractor_issue: -origen (la mercancía sale del sistema).
func Effects(tx *entity.Transaction) []Effect {
	switch tx.Type {
	case entity.TransactionTypeReceipt:
		to := tx.ToWarehouseID
		if to == "" {
			to = entity.OfficeWarehouseID
		}
		return []Effect{{WarehouseID: to, Delta: tx.Quantity}}
	case entity.TransactionTypeTransfer:
		return []Effect{
			{WarehouseID: tx.FromWarehouseID, Delta: -tx.Quantity},
			{WarehouseID: tx.ToWarehouseID, Delta: tx.Quantity},
		}
	case entity.TransactionTypeSale, entity.TransactionTypeContractorIssue:
		return []Effect{{WarehouseID: tx.FromWarehouseID, Delta: -tx.Quantity}}
	case entity.TransactionTypeReturn:
		return []Effect{{WarehouseID: tx.ToWarehouseID, Delta: tx.Quantity}}
	}
	return nil
}

// Replay reconstruye el stock esperado aplicando el log en orden.
func Replay(txs []*entity.Transaction) map[StockKey]int {
	out := make(map[StockKey]int)
	for _, tx := range txs {
		for _, e := range Effects(tx) {
			if e.WarehouseID == "" {
				continue
			}
			out[StockKey{ProductID: tx.ProductID, WarehouseID: e.WarehouseID}] += e.Delta
		}
	}
	return out
}

// NetInflow es lo que entró al sistema menos lo que salió:
// recepciones - ventas - salidas a contratista + devoluciones.
// Debe coincidir con la suma de todo el stock.
func NetInflow(txs []*entity.Transaction) int {
	total := 0
	for _, tx := range txs {
		switch tx.Type {
		case entity.TransactionTypeReceipt, entity.TransactionTypeReturn:
			total += tx.Quantity
		case entity.TransactionTypeSale, entity.TransactionTypeContractorIssue:
			total -= tx.Quantity
		}
	}
	return total
}

// Drift es una diferencia entre el stock registrado y el reconstruido desde el log.
type Drift struct {
	ProductID   string
	WarehouseID string
	Recorded    int
	Expected    int
}

// FindDrift compara las filas de stock con el replay del log.
// Una fila ausente cuenta como 0; el resultado se ordena por bodega y producto.
func FindDrift(stocks []*entity.Stock, txs []*entity.Transaction) []Drift {
	expected := Replay(txs)
	recorded := make(map[StockKey]int, len(stocks))
	for _, s := range stocks {
		recorded[StockKey{ProductID: s.ProductID, WarehouseID: s.WarehouseID}] += s.Quantity
	}

	var out []Drift
	for k, rec := range recorded {
		if exp := expected[k]; exp != rec {
			out = append(out, Drift{ProductID: k.ProductID, WarehouseID: k.WarehouseID, Recorded: rec, Expected: exp})
		}
	}
	for k, exp := range expected {
		if _, ok := recorded[k]; !ok && exp != 0 {
			out = append(out, Drift{ProductID: k.ProductID, WarehouseID: k.WarehouseID, Recorded: 0, Expected: exp})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WarehouseID != out[j].WarehouseID {
			return out[i].WarehouseID < out[j].WarehouseID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}
