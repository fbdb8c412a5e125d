package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia del libro de transacciones.
// Update solo lo usa la edición de ventas sobre la transacción enlazada.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	List(ctx context.Context) ([]*entity.Transaction, error)
}
