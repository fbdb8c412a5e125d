package ledger

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Reconcile recalcula el stock reproduciendo el libro y lo compara con las filas
// guardadas. No modifica nada.
func (uc *LedgerUseCase) Reconcile(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{CheckedAt: uc.now()}
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		_ repository.SaleRepository,
		_ repository.WarehouseRepository,
	) error {
		stocks, err := stockRepo.List(ctx)
		if err != nil {
			return err
		}
		txs, err := txRepo.List(ctx)
		if err != nil {
			return err
		}
		report.Transactions = len(txs)
		report.StockRows = len(stocks)
		report.Drift = inventory.FindDrift(stocks, txs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	ev := uc.log.Info()
	if !report.Consistent() {
		ev = uc.log.Warn()
	}
	ev.Int("transactions", report.Transactions).
		Int("stock_rows", report.StockRows).
		Int("drift", len(report.Drift)).
		Msg("conciliación de inventario")
	return report, nil
}
