package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

type fakeReconciler struct {
	report *ledger.ReconciliationReport
	err    error
	calls  int
}

func (f *fakeReconciler) Reconcile(ctx context.Context) (*ledger.ReconciliationReport, error) {
	f.calls++
	return f.report, f.err
}

func TestNewReconcileScheduler_ExpresionInvalida(t *testing.T) {
	_, err := NewReconcileScheduler("cada rato", &fakeReconciler{}, time.Second, zerolog.Nop())
	assert.Error(t, err)
}

func TestRunReconcile_RegistraDiferencias(t *testing.T) {
	var buf bytes.Buffer
	r := &fakeReconciler{report: &ledger.ReconciliationReport{
		Drift: []inventory.Drift{{ProductID: "1", WarehouseID: "office", Recorded: 7, Expected: 9}},
	}}
	s, err := NewReconcileScheduler("@hourly", r, time.Second, zerolog.New(&buf))
	require.NoError(t, err)

	s.runReconcile(r, time.Second)

	assert.Equal(t, 1, r.calls)
	assert.Contains(t, buf.String(), `"warehouse_id":"office"`)
	assert.Contains(t, buf.String(), `"expected":9`)
}

func TestRunReconcile_Error(t *testing.T) {
	var buf bytes.Buffer
	r := &fakeReconciler{err: errors.New("sin conexión")}
	s, err := NewReconcileScheduler("@every 1h", r, time.Second, zerolog.New(&buf))
	require.NoError(t, err)

	s.runReconcile(r, time.Second)
	assert.Contains(t, buf.String(), "sin conexión")

	s.Start()
	s.Stop(context.Background())
}
