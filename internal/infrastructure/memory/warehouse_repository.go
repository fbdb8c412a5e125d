package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementa WarehouseRepository sobre el almacén en memoria.
type WarehouseRepo struct{ base }

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	return r.write(ctx, CollectionWarehouses, func(st *state) error {
		st.warehouses = append(st.warehouses, *w)
		return nil
	})
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.find(func(w *entity.Warehouse) bool { return w.ID == id }), nil
}

func (r *WarehouseRepo) GetByManager(ctx context.Context, managerID string) (*entity.Warehouse, error) {
	return r.find(func(w *entity.Warehouse) bool {
		return w.Type == entity.WarehouseTypeManager && w.ManagerID == managerID
	}), nil
}

func (r *WarehouseRepo) find(match func(w *entity.Warehouse) bool) *entity.Warehouse {
	var out *entity.Warehouse
	r.read(func(st *state) {
		for i := range st.warehouses {
			if match(&st.warehouses[i]) {
				w := st.warehouses[i]
				out = &w
				return
			}
		}
	})
	return out
}

// List devuelve las bodegas en orden de creación (oficina primero).
func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	r.read(func(st *state) {
		list = make([]*entity.Warehouse, 0, len(st.warehouses))
		for i := range st.warehouses {
			w := st.warehouses[i]
			list = append(list, &w)
		}
	})
	return list, nil
}
