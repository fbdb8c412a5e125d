package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

func seedSnapshot() *memory.Snapshot {
	return &memory.Snapshot{
		Products: []entity.Product{{ID: "1", Name: "Bomba", Unit: "ud"}},
		Users:    []entity.User{{ID: "1", Name: "Admin", Email: "admin@company.com", Role: entity.RoleAdmin}},
		Warehouses: []entity.Warehouse{
			{ID: entity.OfficeWarehouseID, Name: "Oficina", Type: entity.WarehouseTypeOffice},
		},
	}
}

func TestPersister_ArchivoVacio(t *testing.T) {
	p, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer p.Close()

	snap, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestPersister_GuardaSoloColeccionesIndicadas(t *testing.T) {
	ctx := context.Background()
	p, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer p.Close()

	snap := seedSnapshot()
	require.NoError(t, p.Save(ctx, snap, []string{memory.CollectionProducts}))

	loaded, err := p.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Products, 1)
	assert.Empty(t, loaded.Users)
}

func TestPersister_StoreSobrevivePorReapertura(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	p, err := Open(path)
	require.NoError(t, err)
	store, err := memory.Open(ctx, p, seedSnapshot, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Stock().Upsert(ctx, &entity.Stock{ProductID: "1", WarehouseID: entity.OfficeWarehouseID, Quantity: 7}))
	require.NoError(t, p.Close())

	p2, err := Open(path)
	require.NoError(t, err)
	defer p2.Close()
	seeded := false
	reopened, err := memory.Open(ctx, p2, func() *memory.Snapshot { seeded = true; return seedSnapshot() }, zerolog.Nop())
	require.NoError(t, err)

	assert.False(t, seeded)
	s, err := reopened.Stock().Get(ctx, "1", entity.OfficeWarehouseID)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Quantity)
	u, err := reopened.Users().GetByEmail(ctx, "ADMIN@company.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "1", u.ID)
}
