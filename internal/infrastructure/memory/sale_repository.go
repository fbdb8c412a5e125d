package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementa SaleRepository sobre el almacén en memoria.
type SaleRepo struct{ base }

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.write(ctx, CollectionSales, func(st *state) error {
		st.sales = append(st.sales, *s)
		return nil
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	list := r.filter(func(s *entity.Sale) bool { return s.ID == id })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	return r.write(ctx, CollectionSales, func(st *state) error {
		for i := range st.sales {
			if st.sales[i].ID == s.ID {
				st.sales[i] = *s
				return nil
			}
		}
		return fmt.Errorf("venta %s: %w", s.ID, domain.ErrNotFound)
	})
}

func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	return r.filter(func(*entity.Sale) bool { return true }), nil
}

func (r *SaleRepo) ListByManager(ctx context.Context, managerID string) ([]*entity.Sale, error) {
	return r.filter(func(s *entity.Sale) bool { return s.ManagerID == managerID }), nil
}

func (r *SaleRepo) filter(keep func(s *entity.Sale) bool) []*entity.Sale {
	var list []*entity.Sale
	r.read(func(st *state) {
		for i := range st.sales {
			if keep(&st.sales[i]) {
				s := st.sales[i]
				list = append(list, &s)
			}
		}
	})
	return list
}
