package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func tx(typ, product string, qty int, from, to string) *entity.Transaction {
	return &entity.Transaction{Type: typ, ProductID: product, Quantity: qty, FromWarehouseID: from, ToWarehouseID: to}
}

func TestReplay_AplicaEfectosPorTipo(t *testing.T) {
	mgr := entity.ManagerWarehouseID("2")
	log := []*entity.Transaction{
		tx(entity.TransactionTypeReceipt, "1", 50, "", entity.OfficeWarehouseID),
		tx(entity.TransactionTypeTransfer, "1", 20, entity.OfficeWarehouseID, mgr),
		tx(entity.TransactionTypeSale, "1", 5, mgr, ""),
		tx(entity.TransactionTypeReturn, "1", 2, "", mgr),
		tx(entity.TransactionTypeContractorIssue, "1", 10, entity.OfficeWarehouseID, ""),
	}

	got := Replay(log)

	assert.Equal(t, 20, got[StockKey{"1", entity.OfficeWarehouseID}])
	assert.Equal(t, 17, got[StockKey{"1", mgr}])
	assert.Equal(t, 37, NetInflow(log))
}

func TestReplay_RecepcionSinDestinoVaAOficina(t *testing.T) {
	got := Replay([]*entity.Transaction{tx(entity.TransactionTypeReceipt, "9", 3, "", "")})
	assert.Equal(t, 3, got[StockKey{"9", entity.OfficeWarehouseID}])
}

func TestFindDrift(t *testing.T) {
	log := []*entity.Transaction{
		tx(entity.TransactionTypeReceipt, "1", 10, "", entity.OfficeWarehouseID),
		tx(entity.TransactionTypeReceipt, "2", 4, "", entity.OfficeWarehouseID),
	}

	t.Run("sin diferencias", func(t *testing.T) {
		stocks := []*entity.Stock{
			{ProductID: "1", WarehouseID: entity.OfficeWarehouseID, Quantity: 10},
			{ProductID: "2", WarehouseID: entity.OfficeWarehouseID, Quantity: 4},
			{ProductID: "3", WarehouseID: "manager-2", Quantity: 0},
		}
		assert.Empty(t, FindDrift(stocks, log))
	})

	t.Run("fila alterada y fila faltante", func(t *testing.T) {
		stocks := []*entity.Stock{
			{ProductID: "1", WarehouseID: entity.OfficeWarehouseID, Quantity: 12},
		}
		drift := FindDrift(stocks, log)
		assert.Equal(t, []Drift{
			{ProductID: "1", WarehouseID: entity.OfficeWarehouseID, Recorded: 12, Expected: 10},
			{ProductID: "2", WarehouseID: entity.OfficeWarehouseID, Recorded: 0, Expected: 4},
		}, drift)
	})
}
