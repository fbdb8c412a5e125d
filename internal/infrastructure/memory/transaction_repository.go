package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementa TransactionRepository sobre el almacén en memoria.
type TransactionRepo struct{ base }

func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	return r.write(ctx, CollectionTransactions, func(st *state) error {
		st.transactions = append(st.transactions, *tx)
		return nil
	})
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	r.read(func(st *state) {
		for i := range st.transactions {
			if st.transactions[i].ID == id {
				t := st.transactions[i]
				out = &t
				return
			}
		}
	})
	return out, nil
}

func (r *TransactionRepo) Update(ctx context.Context, tx *entity.Transaction) error {
	return r.write(ctx, CollectionTransactions, func(st *state) error {
		for i := range st.transactions {
			if st.transactions[i].ID == tx.ID {
				st.transactions[i] = *tx
				return nil
			}
		}
		return fmt.Errorf("transacción %s: %w", tx.ID, domain.ErrNotFound)
	})
}

// List devuelve el libro en orden de registro.
func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	r.read(func(st *state) {
		list = make([]*entity.Transaction, 0, len(st.transactions))
		for i := range st.transactions {
			t := st.transactions[i]
			list = append(list, &t)
		}
	})
	return list, nil
}
