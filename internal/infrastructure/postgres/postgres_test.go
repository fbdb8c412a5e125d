package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestNullableRoundTrip(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "", deref(nil))
	assert.Equal(t, "office", deref(nullable("office")))
}

func TestMigrations_Embedded(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/001_schema.sql")
	require.NoError(t, err)
	sql := string(script)
	for _, table := range []string{"users", "products", "warehouses", "stock", "transactions", "sales"} {
		assert.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" ("), table)
	}
	assert.Contains(t, sql, "CHECK (quantity >= 0)")
	assert.Contains(t, sql, "lower(email)")
}

// recordingQuerier guarda el SQL en orden; QueryRow responde sin filas.
type recordingQuerier struct {
	sql     []string
	execErr error
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), q.execErr
}

func (q *recordingQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = append(q.sql, sql)
	return nil, errors.New("no soportado")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	return noRow{}
}

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

func TestStockGetForUpdate_CreaLaFilaAntesDeBloquear(t *testing.T) {
	q := &recordingQuerier{}
	s, err := NewStockRepository(q).GetForUpdate(context.Background(), "1", "manager-2")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Quantity)
	assert.Equal(t, "manager-2", s.WarehouseID)

	require.Len(t, q.sql, 2)
	assert.Contains(t, q.sql[0], "INSERT INTO stock")
	assert.Contains(t, q.sql[0], "DO NOTHING")
	assert.Contains(t, q.sql[1], "FOR UPDATE")
}

func TestStockGetForUpdate_ErrorAlAsegurarFila(t *testing.T) {
	q := &recordingQuerier{execErr: errors.New("conexión cerrada")}
	_, err := NewStockRepository(q).GetForUpdate(context.Background(), "1", "office")
	require.Error(t, err)
	assert.Len(t, q.sql, 1)
}
