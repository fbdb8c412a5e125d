package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// EditSale actualiza cantidad, fecha y comentarios de una venta y de la transacción
// enlazada por Sale.TransactionID. Un cambio de cantidad ajusta el stock del gerente
// por la diferencia; un aumento mayor al disponible se rechaza.
func (uc *LedgerUseCase) EditSale(ctx context.Context, saleID string, upd SaleUpdate) (*entity.Sale, error) {
	if saleID == "" {
		return nil, fmt.Errorf("venta requerida: %w", domain.ErrInvalidInput)
	}
	if upd.Quantity != nil && *upd.Quantity <= 0 {
		return nil, fmt.Errorf("la cantidad debe ser mayor que 0: %w", domain.ErrInvalidInput)
	}
	now := uc.now()
	var out *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		saleRepo repository.SaleRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		sale, err := saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
		}
		delta := 0
		if upd.Quantity != nil {
			delta = *upd.Quantity - sale.Quantity
			sale.Quantity = *upd.Quantity
		}
		if upd.Date != nil {
			sale.Date = dateOnly(*upd.Date)
		}
		if upd.Comments != nil {
			sale.Comments = strings.TrimSpace(*upd.Comments)
		}
		sale.UpdatedAt = &now

		var tx *entity.Transaction
		if sale.TransactionID != "" {
			if tx, err = txRepo.GetByID(ctx, sale.TransactionID); err != nil {
				return err
			}
		}
		if tx == nil {
			// Sin transacción enlazada no se toca el stock: el libro no registra esa venta.
			uc.log.Warn().Str("sale_id", sale.ID).Msg("venta sin transacción enlazada, stock sin ajustar")
			out = sale
			return saleRepo.Update(ctx, sale)
		}

		if delta != 0 {
			warehouseID := tx.FromWarehouseID
			if warehouseID == "" {
				wh, err := warehouseRepo.GetByManager(ctx, sale.ManagerID)
				if err != nil {
					return err
				}
				if wh == nil {
					return fmt.Errorf("bodega del gerente %s: %w", sale.ManagerID, domain.ErrNotFound)
				}
				warehouseID = wh.ID
			}
			if delta > 0 {
				err = debit(ctx, stockRepo, sale.ProductID, warehouseID, delta, now)
			} else {
				err = credit(ctx, stockRepo, sale.ProductID, warehouseID, -delta, now)
			}
			if err != nil {
				return err
			}
		}

		tx.Quantity = sale.Quantity
		tx.Date = sale.Date
		tx.Comments = sale.Comments
		tx.UpdatedAt = &now
		if err := txRepo.Update(ctx, tx); err != nil {
			return err
		}
		out = sale
		return saleRepo.Update(ctx, sale)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("sale_id", saleID).Msg("edición de venta rechazada")
		return nil, err
	}
	uc.log.Info().Str("sale_id", out.ID).Int("quantity", out.Quantity).Msg("venta actualizada")
	return out, nil
}
