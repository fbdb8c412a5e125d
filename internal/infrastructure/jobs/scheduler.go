// Package jobs programa tareas periódicas; hoy solo la conciliación del libro.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Reconciler lo implementa ledger.LedgerUseCase.
type Reconciler interface {
	Reconcile(ctx context.Context) (*ledger.ReconciliationReport, error)
}

// Scheduler envuelve cron con la conciliación registrada.
type Scheduler struct {
	sched *cron.Cron
	log   zerolog.Logger
}

// NewReconcileScheduler registra la conciliación con la expresión spec (ej. "@hourly", "0 */6 * * *").
func NewReconcileScheduler(spec string, r Reconciler, timeout time.Duration, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		sched: cron.New(cron.WithParser(cronParser)),
		log:   log,
	}
	_, err := s.sched.AddFunc(spec, func() { s.runReconcile(r, timeout) })
	if err != nil {
		return nil, fmt.Errorf("jobs: expresión cron %q: %w", spec, err)
	}
	return s, nil
}

// Start arranca el planificador en segundo plano.
func (s *Scheduler) Start() {
	s.sched.Start()
	s.log.Info().Int("jobs", len(s.sched.Entries())).Msg("planificador iniciado")
}

// Stop detiene el planificador y espera a la tarea en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.sched.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("planificador detenido sin esperar la tarea en curso")
	}
}

func (s *Scheduler) runReconcile(r Reconciler, timeout time.Duration) {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error().Interface("panic", err).Msg("conciliación abortada")
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	report, err := r.Reconcile(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("conciliación programada falló")
		return
	}
	for _, d := range report.Drift {
		s.log.Warn().
			Str("product_id", d.ProductID).
			Str("warehouse_id", d.WarehouseID).
			Int("recorded", d.Recorded).
			Int("expected", d.Expected).
			Msg("diferencia entre stock y libro")
	}
}
