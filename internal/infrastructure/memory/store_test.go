package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

type fakePersister struct {
	snap    *Snapshot
	saves   [][]string
	failErr error
}

func (f *fakePersister) Load(ctx context.Context) (*Snapshot, error) { return f.snap, nil }

func (f *fakePersister) Save(ctx context.Context, snap *Snapshot, collections []string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.snap = snap
	f.saves = append(f.saves, collections)
	return nil
}

func baseSnapshot() *Snapshot {
	return &Snapshot{
		Products: []entity.Product{{ID: "1", Name: "Bomba"}},
		Warehouses: []entity.Warehouse{
			{ID: entity.OfficeWarehouseID, Name: "Oficina", Type: entity.WarehouseTypeOffice},
		},
		Stock: []entity.Stock{{ProductID: "1", WarehouseID: entity.OfficeWarehouseID, Quantity: 10}},
		Users: []entity.User{{ID: "1", Email: "admin@company.com", Role: entity.RoleAdmin}},
	}
}

func TestOpen_UsaSemillaSiVacio(t *testing.T) {
	p := &fakePersister{}
	s, err := Open(context.Background(), p, baseSnapshot, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, p.saves, 1)
	assert.Equal(t, AllCollections, p.saves[0])
	list, _ := s.Products().List(context.Background())
	assert.Len(t, list, 1)
}

func TestRun_ErrorDescartaCambios(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{snap: baseSnapshot()}
	s, err := Open(ctx, p, nil, zerolog.Nop())
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Run(ctx, func(stockRepo repository.StockRepository, txRepo repository.TransactionRepository, _ repository.SaleRepository, _ repository.WarehouseRepository) error {
		require.NoError(t, stockRepo.Upsert(ctx, &entity.Stock{ProductID: "1", WarehouseID: entity.OfficeWarehouseID, Quantity: 0}))
		require.NoError(t, txRepo.Create(ctx, &entity.Transaction{ID: "t1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	st, _ := s.Stock().Get(ctx, "1", entity.OfficeWarehouseID)
	assert.Equal(t, 10, st.Quantity)
	txs, _ := s.Transactions().List(ctx)
	assert.Empty(t, txs)
	assert.Empty(t, p.saves)
}

func TestRun_CommitGuardaColeccionesTocadas(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{snap: baseSnapshot()}
	s, err := Open(ctx, p, nil, zerolog.Nop())
	require.NoError(t, err)

	err = s.Run(ctx, func(stockRepo repository.StockRepository, txRepo repository.TransactionRepository, _ repository.SaleRepository, _ repository.WarehouseRepository) error {
		if err := stockRepo.Upsert(ctx, &entity.Stock{ProductID: "1", WarehouseID: "manager-2", Quantity: 3}); err != nil {
			return err
		}
		return txRepo.Create(ctx, &entity.Transaction{ID: "t1"})
	})
	require.NoError(t, err)

	require.Len(t, p.saves, 1)
	assert.Equal(t, []string{CollectionStock, CollectionTransactions}, p.saves[0])
	rows, _ := s.Stock().List(ctx)
	assert.Len(t, rows, 2)
}

func TestRun_FalloAlGuardarNoCambiaEstado(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{snap: baseSnapshot()}
	s, err := Open(ctx, p, nil, zerolog.Nop())
	require.NoError(t, err)
	p.failErr = errors.New("disco lleno")

	err = s.Products().Create(ctx, &entity.Product{ID: "2", Name: "Sensor"})
	require.Error(t, err)

	got, _ := s.Products().GetByID(ctx, "2")
	assert.Nil(t, got)
}

func TestStockRepo_FilaAusenteEsCero(t *testing.T) {
	s := New(nil)
	st, err := s.Stock().Get(context.Background(), "9", "office")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Quantity)
	assert.Equal(t, "9", st.ProductID)
}

func TestUserRepo_EmailUnicoYBorrado(t *testing.T) {
	ctx := context.Background()
	s := New(baseSnapshot())
	users := s.Users()

	err := users.Create(ctx, &entity.User{ID: "2", Email: "ADMIN@company.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	require.NoError(t, users.Create(ctx, &entity.User{ID: "2", Email: "m@company.com", Role: entity.RoleManager}))
	u, _ := users.GetByID(ctx, "2")
	u.Email = "admin@company.com"
	assert.ErrorIs(t, users.Update(ctx, u), domain.ErrEmailAlreadyExists)

	require.NoError(t, users.Delete(ctx, "2"))
	assert.ErrorIs(t, users.Delete(ctx, "2"), domain.ErrNotFound)
}

func TestWarehouseRepo_GetByManager(t *testing.T) {
	ctx := context.Background()
	s := New(baseSnapshot())
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{
		ID: "manager-2", Type: entity.WarehouseTypeManager, ManagerID: "2",
	}))

	wh, err := s.Warehouses().GetByManager(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, wh)
	assert.Equal(t, "manager-2", wh.ID)

	none, err := s.Warehouses().GetByManager(ctx, "3")
	require.NoError(t, err)
	assert.Nil(t, none)
}
