// Package ledger contiene el motor del libro de inventario: único componente que
// modifica Stock y agrega Transactions, siempre en pareja y dentro de un TxRunner.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// LedgerUseCase registra entradas, traslados, ventas, devoluciones y salidas a contratista.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	log zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		userRepo:    userRepo,
		log:         log,
		now:         time.Now,
	}
}

// Receive acredita la oficina y agrega una transacción "receipt".
func (uc *LedgerUseCase) Receive(ctx context.Context, in ReceiveInput) (*entity.Transaction, error) {
	if err := uc.validateProduct(ctx, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	now := uc.now()
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		Type:          entity.TransactionTypeReceipt,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		ToWarehouseID: entity.OfficeWarehouseID,
		AdminID:       in.AdminID,
		Date:          dateOnly(now),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		_ repository.SaleRepository,
		_ repository.WarehouseRepository,
	) error {
		if err := credit(ctx, stockRepo, in.ProductID, entity.OfficeWarehouseID, in.Quantity, now); err != nil {
			return err
		}
		return txRepo.Create(ctx, tx)
	})
	return uc.done(tx, err)
}

// Transfer debita la oficina y acredita la bodega del gerente (creada si no existe).
func (uc *LedgerUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.Transaction, error) {
	if in.ManagerID == "" {
		return nil, fmt.Errorf("gerente requerido: %w", domain.ErrInvalidInput)
	}
	if err := uc.validateProduct(ctx, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	whName := uc.managerWarehouseName(ctx, in.ManagerID)
	now := uc.now()
	tx := &entity.Transaction{
		ID:              uuid.New().String(),
		Type:            entity.TransactionTypeTransfer,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		FromWarehouseID: entity.OfficeWarehouseID,
		ManagerID:       in.ManagerID,
		AdminID:         in.AdminID,
		Date:            dateOnly(now),
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
	}
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		_ repository.SaleRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		if err := debit(ctx, stockRepo, in.ProductID, entity.OfficeWarehouseID, in.Quantity, now); err != nil {
			return err
		}
		wh, err := ensureManagerWarehouse(ctx, warehouseRepo, in.ManagerID, whName, now)
		if err != nil {
			return err
		}
		tx.ToWarehouseID = wh.ID
		if err := credit(ctx, stockRepo, in.ProductID, wh.ID, in.Quantity, now); err != nil {
			return err
		}
		return txRepo.Create(ctx, tx)
	})
	return uc.done(tx, err)
}

// Sell debita la bodega del gerente y registra la venta y su transacción enlazadas por id.
func (uc *LedgerUseCase) Sell(ctx context.Context, in SellInput) (*entity.Sale, error) {
	if in.ManagerID == "" {
		return nil, fmt.Errorf("gerente requerido: %w", domain.ErrInvalidInput)
	}
	if in.Amount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("el monto no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	if err := uc.validateProduct(ctx, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	now := uc.now()
	date := uc.dateOr(in.Date)
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ManagerID:     in.ManagerID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Amount:        in.Amount,
		CustomerName:  strings.TrimSpace(in.Customer.Name),
		CustomerPhone: strings.TrimSpace(in.Customer.Phone),
		CustomerCity:  strings.TrimSpace(in.Customer.City),
		Date:          date,
		Comments:      strings.TrimSpace(in.Comments),
		CreatedAt:     now,
	}
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		Type:          entity.TransactionTypeSale,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		ManagerID:     in.ManagerID,
		Date:          date,
		Comments:      sale.Comments,
		CustomerName:  sale.CustomerName,
		CustomerPhone: sale.CustomerPhone,
		CustomerCity:  sale.CustomerCity,
		SaleAmount:    in.Amount,
		SaleID:        sale.ID,
		CreatedAt:     now,
	}
	sale.TransactionID = tx.ID

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		saleRepo repository.SaleRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		wh, err := warehouseRepo.GetByManager(ctx, in.ManagerID)
		if err != nil {
			return err
		}
		if wh == nil {
			return insufficient(0, in.Quantity)
		}
		tx.FromWarehouseID = wh.ID
		if err := debit(ctx, stockRepo, in.ProductID, wh.ID, in.Quantity, now); err != nil {
			return err
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		return saleRepo.Create(ctx, sale)
	})
	if _, err := uc.done(tx, err); err != nil {
		return nil, err
	}
	return sale, nil
}

// ReturnStock acredita la bodega del gerente. No se limita por lo vendido antes.
func (uc *LedgerUseCase) ReturnStock(ctx context.Context, in ReturnInput) (*entity.Transaction, error) {
	if in.ManagerID == "" {
		return nil, fmt.Errorf("gerente requerido: %w", domain.ErrInvalidInput)
	}
	if err := uc.validateProduct(ctx, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	whName := uc.managerWarehouseName(ctx, in.ManagerID)
	now := uc.now()
	tx := &entity.Transaction{
		ID:        uuid.New().String(),
		Type:      entity.TransactionTypeReturn,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		ManagerID: in.ManagerID,
		Date:      uc.dateOr(in.Date),
		Comments:  strings.TrimSpace(in.Comments),
		CreatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		_ repository.SaleRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		wh, err := ensureManagerWarehouse(ctx, warehouseRepo, in.ManagerID, whName, now)
		if err != nil {
			return err
		}
		tx.ToWarehouseID = wh.ID
		if err := credit(ctx, stockRepo, in.ProductID, wh.ID, in.Quantity, now); err != nil {
			return err
		}
		return txRepo.Create(ctx, tx)
	})
	return uc.done(tx, err)
}

// IssueToContractor debita la oficina; la cantidad sale del sistema (sin bodega destino).
func (uc *LedgerUseCase) IssueToContractor(ctx context.Context, in ContractorIssueInput) (*entity.Transaction, error) {
	contractor := strings.TrimSpace(in.ContractorName)
	if contractor == "" {
		return nil, fmt.Errorf("contratista requerido: %w", domain.ErrInvalidInput)
	}
	if err := uc.validateProduct(ctx, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	now := uc.now()
	tx := &entity.Transaction{
		ID:              uuid.New().String(),
		Type:            entity.TransactionTypeContractorIssue,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		FromWarehouseID: entity.OfficeWarehouseID,
		AdminID:         in.AdminID,
		Date:            uc.dateOr(in.Date),
		Comments:        strings.TrimSpace(in.Comments),
		ContractorName:  contractor,
		CreatedAt:       now,
	}
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		_ repository.SaleRepository,
		_ repository.WarehouseRepository,
	) error {
		if err := debit(ctx, stockRepo, in.ProductID, entity.OfficeWarehouseID, in.Quantity, now); err != nil {
			return err
		}
		return txRepo.Create(ctx, tx)
	})
	return uc.done(tx, err)
}

// validateProduct exige cantidad positiva y un producto existente.
func (uc *LedgerUseCase) validateProduct(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return fmt.Errorf("producto requerido: %w", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("la cantidad debe ser mayor que 0: %w", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return nil
}

// managerWarehouseName nombre de la bodega a crear; si el gerente no existe usa su id.
func (uc *LedgerUseCase) managerWarehouseName(ctx context.Context, managerID string) string {
	name := managerID
	if u, err := uc.userRepo.GetByID(ctx, managerID); err == nil && u != nil && u.Name != "" {
		name = u.Name
	}
	return "Almacén de " + name
}

func (uc *LedgerUseCase) dateOr(d time.Time) time.Time {
	if d.IsZero() {
		return dateOnly(uc.now())
	}
	return dateOnly(d)
}

// done registra el resultado de una operación de escritura.
func (uc *LedgerUseCase) done(tx *entity.Transaction, err error) (*entity.Transaction, error) {
	if err != nil {
		uc.log.Warn().Err(err).
			Str("type", tx.Type).
			Str("product_id", tx.ProductID).
			Int("quantity", tx.Quantity).
			Msg("operación de inventario rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("transaction_id", tx.ID).
		Str("type", tx.Type).
		Str("product_id", tx.ProductID).
		Int("quantity", tx.Quantity).
		Str("from", tx.FromWarehouseID).
		Str("to", tx.ToWarehouseID).
		Msg("transacción registrada")
	return tx, nil
}

// credit suma quantity a la fila (producto, bodega); la crea si no existe.
func credit(ctx context.Context, stockRepo repository.StockRepository, productID, warehouseID string, quantity int, now time.Time) error {
	stock, err := stockRepo.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return err
	}
	stock.Quantity += quantity
	stock.UpdatedAt = now
	return stockRepo.Upsert(ctx, stock)
}

// debit verifica disponible >= quantity y resta.
func debit(ctx context.Context, stockRepo repository.StockRepository, productID, warehouseID string, quantity int, now time.Time) error {
	stock, err := stockRepo.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return err
	}
	if stock.Quantity < quantity {
		return insufficient(stock.Quantity, quantity)
	}
	stock.Quantity -= quantity
	stock.UpdatedAt = now
	return stockRepo.Upsert(ctx, stock)
}

func insufficient(available, requested int) error {
	return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, available, requested)
}

// ensureManagerWarehouse devuelve la bodega del gerente, creándola con id manager-<id> si falta.
func ensureManagerWarehouse(ctx context.Context, warehouseRepo repository.WarehouseRepository, managerID, name string, now time.Time) (*entity.Warehouse, error) {
	wh, err := warehouseRepo.GetByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if wh != nil {
		return wh, nil
	}
	wh = &entity.Warehouse{
		ID:        entity.ManagerWarehouseID(managerID),
		Name:      name,
		Type:      entity.WarehouseTypeManager,
		ManagerID: managerID,
		CreatedAt: now,
	}
	if err := warehouseRepo.Create(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
