package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/query"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

// fixture: oficina con 2 productos, dos gerentes, un traslado, una venta, una devolución
// y una salida a contratista. Incluye una fila de stock con producto inexistente.
func fixture(t *testing.T) (*query.QueryUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.New(&memory.Snapshot{
		Products: []entity.Product{
			{ID: "1", Name: "Transmisor MD1160", Unit: "ud"},
			{ID: "2", Name: "Sensor de glucosa", Unit: "ud"},
		},
		Warehouses: []entity.Warehouse{
			{ID: entity.OfficeWarehouseID, Name: "Almacén de oficina", Type: entity.WarehouseTypeOffice},
		},
		Users: []entity.User{
			{ID: "1", Name: "Admin", Role: entity.RoleAdmin},
			{ID: "2", Name: "Ninel", Role: entity.RoleManager},
			{ID: "3", Name: "Kazbek", Role: entity.RoleManager},
		},
		Stock: []entity.Stock{{ProductID: "borrado", WarehouseID: entity.OfficeWarehouseID, Quantity: 3}},
	})
	lg := ledger.NewLedgerUseCase(store, store.Products(), store.Users(), zerolog.Nop())

	_, err := lg.Receive(ctx, ledger.ReceiveInput{ProductID: "1", Quantity: 30, AdminID: "1"})
	require.NoError(t, err)
	_, err = lg.Receive(ctx, ledger.ReceiveInput{ProductID: "2", Quantity: 10, AdminID: "1", Notes: "Lote Enero"})
	require.NoError(t, err)
	_, err = lg.Transfer(ctx, ledger.TransferInput{ProductID: "1", Quantity: 12, ManagerID: "2", AdminID: "1"})
	require.NoError(t, err)
	_, err = lg.Sell(ctx, ledger.SellInput{
		ManagerID: "2", ProductID: "1", Quantity: 4, Amount: decimal.NewFromInt(800),
		Customer: ledger.Customer{Name: "José Pérez"}, Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = lg.ReturnStock(ctx, ledger.ReturnInput{ManagerID: "2", ProductID: "1", Quantity: 1, Date: time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = lg.IssueToContractor(ctx, ledger.ContractorIssueInput{ProductID: "2", Quantity: 2, ContractorName: "Taller Sur", AdminID: "1"})
	require.NoError(t, err)

	q := query.NewQueryUseCase(store.Products(), store.Warehouses(), store.Stock(), store.Transactions(), store.Sales(), store.Users())
	return q, store
}

func TestStockWithProducts(t *testing.T) {
	q, _ := fixture(t)
	ctx := context.Background()

	rows, err := q.StockWithProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, entity.OfficeWarehouseID, rows[0].WarehouseID)
	assert.Equal(t, "Sensor de glucosa", rows[0].ProductName)
	assert.Equal(t, 8, rows[0].Quantity)
	assert.Equal(t, "manager-2", rows[2].WarehouseID)
	assert.Equal(t, 9, rows[2].Quantity)

	again, err := q.StockWithProducts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, rows, again)

	mine, err := q.ManagerStock(ctx, "2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Almacén de Ninel", mine[0].WarehouseName)

	none, err := q.ManagerStock(ctx, "3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStockByWarehouse(t *testing.T) {
	q, _ := fixture(t)
	groups, err := q.StockByWarehouse(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Almacén de oficina", groups[0].WarehouseName)
	assert.Equal(t, 26, groups[0].TotalUnits)
	assert.Equal(t, 9, groups[1].TotalUnits)
}

func TestTransactionFeed_Filtros(t *testing.T) {
	q, _ := fixture(t)
	ctx := context.Background()

	all, err := q.TransactionFeed(ctx, query.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 6)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.After(all[i-1].Date))
	}

	mine, err := q.TransactionFeed(ctx, query.TransactionFilter{ManagerID: "2"})
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	byCustomer, err := q.TransactionFeed(ctx, query.TransactionFilter{Search: "JOSÉ"})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, entity.TransactionTypeSale, byCustomer[0].Type)
	assert.Equal(t, "Ninel", byCustomer[0].ManagerName)
	assert.Equal(t, "Almacén de Ninel", byCustomer[0].FromWarehouseName)

	byNotes, err := q.TransactionFeed(ctx, query.TransactionFilter{Search: "lote enero"})
	require.NoError(t, err)
	assert.Len(t, byNotes, 1)

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	inFeb, err := q.TransactionFeed(ctx, query.TransactionFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, inFeb, 1)
	assert.Equal(t, entity.TransactionTypeSale, inFeb[0].Type)

	contractor, err := q.TransactionFeed(ctx, query.TransactionFilter{Type: entity.TransactionTypeContractorIssue, ProductID: "2"})
	require.NoError(t, err)
	require.Len(t, contractor, 1)
	assert.Equal(t, "Taller Sur", contractor[0].ContractorName)
}

func TestManagerRollups(t *testing.T) {
	q, _ := fixture(t)
	rollups, err := q.ManagerRollups(context.Background(), query.RollupFilter{})
	require.NoError(t, err)
	require.Len(t, rollups, 2)

	assert.Equal(t, "Kazbek", rollups[0].ManagerName)
	assert.Zero(t, rollups[0].Received)

	n := rollups[1]
	assert.Equal(t, 12, n.Received)
	assert.Equal(t, 4, n.Sold)
	assert.Equal(t, 1, n.Returned)
	assert.Equal(t, 1, n.SaleCount)
	assert.True(t, n.SalesAmount.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, 9, n.CurrentStock)
	assert.Equal(t, 1, n.StockItems)
}

func TestProductRollups_OmiteFilasEnCero(t *testing.T) {
	q, _ := fixture(t)
	rows, err := q.ProductRollups(context.Background(), query.RollupFilter{ManagerID: "2"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].ProductID)
	assert.Equal(t, 12, rows[0].Received)
	assert.Equal(t, 4, rows[0].Sold)
	assert.Equal(t, 1, rows[0].Returned)
}

func TestStatistics(t *testing.T) {
	q, _ := fixture(t)
	st, err := q.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalProducts)
	// incluye la fila huérfana de 3 unidades en oficina
	assert.Equal(t, 38, st.TotalStock)
	assert.Equal(t, 29, st.OfficeStock)
	assert.Equal(t, 9, st.ManagerStock)
	assert.Equal(t, 1, st.TotalSales)
	assert.Equal(t, 2, st.ContractorIssued)
}

func TestManagerSales(t *testing.T) {
	q, _ := fixture(t)
	sales, err := q.ManagerSales(context.Background(), "2")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Transmisor MD1160", sales[0].ProductName)
	assert.NotEmpty(t, sales[0].TransactionID)

	other, err := q.ManagerSales(context.Background(), "3")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestProductRollups_OrdenDeterministaConNombresRepetidos(t *testing.T) {
	ctx := context.Background()
	store := memory.New(&memory.Snapshot{
		Products: []entity.Product{
			{ID: "p2", Name: "Sensor", Unit: "ud"},
			{ID: "p1", Name: "Sensor", Unit: "ud"},
		},
		Warehouses: []entity.Warehouse{
			{ID: entity.OfficeWarehouseID, Name: "Almacén de oficina", Type: entity.WarehouseTypeOffice},
		},
		Users: []entity.User{
			{ID: "m2", Name: "Gerente", Role: entity.RoleManager},
			{ID: "m1", Name: "Gerente", Role: entity.RoleManager},
		},
	})
	lg := ledger.NewLedgerUseCase(store, store.Products(), store.Users(), zerolog.Nop())
	for _, pid := range []string{"p2", "p1"} {
		_, err := lg.Receive(ctx, ledger.ReceiveInput{ProductID: pid, Quantity: 10, AdminID: "admin"})
		require.NoError(t, err)
		for _, mid := range []string{"m2", "m1"} {
			_, err := lg.Transfer(ctx, ledger.TransferInput{ProductID: pid, Quantity: 2, ManagerID: mid, AdminID: "admin"})
			require.NoError(t, err)
		}
	}
	q := query.NewQueryUseCase(store.Products(), store.Warehouses(), store.Stock(), store.Transactions(), store.Sales(), store.Users())

	first, err := q.ProductRollups(ctx, query.RollupFilter{})
	require.NoError(t, err)
	require.Len(t, first, 4)
	var keys []string
	for _, r := range first {
		keys = append(keys, r.ManagerID+"/"+r.ProductID)
	}
	assert.Equal(t, []string{"m1/p1", "m1/p2", "m2/p1", "m2/p2"}, keys)

	for i := 0; i < 20; i++ {
		again, err := q.ProductRollups(ctx, query.RollupFilter{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
