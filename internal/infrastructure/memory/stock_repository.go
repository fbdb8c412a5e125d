package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementa StockRepository sobre el almacén en memoria.
type StockRepo struct{ base }

func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	out := &entity.Stock{ProductID: productID, WarehouseID: warehouseID}
	r.read(func(st *state) {
		for i := range st.stock {
			if st.stock[i].ProductID == productID && st.stock[i].WarehouseID == warehouseID {
				s := st.stock[i]
				out = &s
				return
			}
		}
	})
	return out, nil
}

// GetForUpdate equivale a Get: dentro de Run la copia de trabajo ya es exclusiva.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r *StockRepo) Upsert(ctx context.Context, s *entity.Stock) error {
	row := *s
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now()
	}
	return r.write(ctx, CollectionStock, func(st *state) error {
		for i := range st.stock {
			if st.stock[i].ProductID == row.ProductID && st.stock[i].WarehouseID == row.WarehouseID {
				st.stock[i] = row
				return nil
			}
		}
		st.stock = append(st.stock, row)
		return nil
	})
}

func (r *StockRepo) List(ctx context.Context) ([]*entity.Stock, error) {
	return r.filter(func(*entity.Stock) bool { return true }), nil
}

func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Stock, error) {
	return r.filter(func(s *entity.Stock) bool { return s.WarehouseID == warehouseID }), nil
}

func (r *StockRepo) filter(keep func(s *entity.Stock) bool) []*entity.Stock {
	var list []*entity.Stock
	r.read(func(st *state) {
		for i := range st.stock {
			if keep(&st.stock[i]) {
				s := st.stock[i]
				list = append(list, &s)
			}
		}
	})
	return list
}
