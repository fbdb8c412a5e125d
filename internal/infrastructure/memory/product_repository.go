package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementa ProductRepository sobre el almacén en memoria.
type ProductRepo struct{ base }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.write(ctx, CollectionProducts, func(st *state) error {
		st.products = append(st.products, *p)
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.read(func(st *state) {
		for i := range st.products {
			if st.products[i].ID == id {
				p := st.products[i]
				out = &p
				return
			}
		}
	})
	return out, nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	r.read(func(st *state) {
		list = make([]*entity.Product, 0, len(st.products))
		for i := range st.products {
			p := st.products[i]
			list = append(list, &p)
		}
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
