package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/bolt"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/seed"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
)

// backend agrupa los repositorios del driver elegido y cómo cerrarlo.
type backend struct {
	txRunner   ledger.TxRunner
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	stock      repository.StockRepository
	txs        repository.TransactionRepository
	sales      repository.SaleRepository
	users      repository.UserRepository
	close      func()
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	data, err := seed.Default()
	if err != nil {
		return nil, err
	}

	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
		if err := postgres.SeedIfEmpty(ctx, pool, data, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{
			txRunner:   postgres.NewTxRunner(pool),
			products:   postgres.NewProductRepository(pool),
			warehouses: postgres.NewWarehouseRepository(pool),
			stock:      postgres.NewStockRepository(pool),
			txs:        postgres.NewTransactionRepository(pool),
			sales:      postgres.NewSaleRepository(pool),
			users:      postgres.NewUserRepository(pool),
			close:      pool.Close,
		}, nil

	case config.StoreBolt:
		p, err := bolt.Open(cfg.Store.BoltPath)
		if err != nil {
			return nil, err
		}
		store, err := memory.Open(ctx, p, data.Snapshot, log)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		b := memoryBackend(store)
		b.close = func() {
			if err := p.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar archivo bbolt")
			}
		}
		return b, nil

	case config.StoreMemory:
		store, err := memory.Open(ctx, nil, data.Snapshot, log)
		if err != nil {
			return nil, err
		}
		return memoryBackend(store), nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Store.Driver)
}

func memoryBackend(store *memory.Store) *backend {
	return &backend{
		txRunner:   store,
		products:   store.Products(),
		warehouses: store.Warehouses(),
		stock:      store.Stock(),
		txs:        store.Transactions(),
		sales:      store.Sales(),
		users:      store.Users(),
		close:      func() {},
	}
}
