package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del libro de transacciones sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, type, product_id, quantity, from_warehouse_id, to_warehouse_id,
	manager_id, admin_id, date, notes, comments, customer_name, customer_phone, customer_city,
	sale_amount, sale_id, contractor_name, created_at, updated_at`

// Create agrega una entrada al libro.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Type, t.ProductID, t.Quantity, nullable(t.FromWarehouseID), nullable(t.ToWarehouseID),
		nullable(t.ManagerID), nullable(t.AdminID), t.Date, t.Notes, t.Comments,
		t.CustomerName, t.CustomerPhone, t.CustomerCity,
		t.SaleAmount, nullable(t.SaleID), t.ContractorName, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	row := r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// Update reescribe cantidad, fecha y comentarios. Solo lo usa la edición de ventas.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	query := `UPDATE transactions SET quantity = $2, date = $3, comments = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Quantity, t.Date, t.Comments, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transacción %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

// List devuelve el libro completo en orden de registro.
func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var from, to, manager, admin, sale *string
	err := row.Scan(
		&t.ID, &t.Type, &t.ProductID, &t.Quantity, &from, &to,
		&manager, &admin, &t.Date, &t.Notes, &t.Comments,
		&t.CustomerName, &t.CustomerPhone, &t.CustomerCity,
		&t.SaleAmount, &sale, &t.ContractorName, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.FromWarehouseID = deref(from)
	t.ToWarehouseID = deref(to)
	t.ManagerID = deref(manager)
	t.AdminID = deref(admin)
	t.SaleID = deref(sale)
	return &t, nil
}
