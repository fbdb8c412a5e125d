package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/seed"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica los scripts de migrations/ en orden de nombre. Son idempotentes (IF NOT EXISTS).
func Migrate(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		script, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("aplicar %s: %w", name, err)
		}
		log.Debug().Str("migration", name).Msg("migración aplicada")
	}
	return nil
}

// SeedIfEmpty carga el conjunto semilla en una sola transacción cuando no hay usuarios.
func SeedIfEmpty(ctx context.Context, pool *pgxpool.Pool, data *seed.Data, log zerolog.Logger) error {
	var users int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&users); err != nil {
		return fmt.Errorf("contar usuarios: %w", err)
	}
	if users > 0 {
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	for i := range data.Users {
		if err := userRepo.Create(ctx, &data.Users[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", data.Users[i].ID, err)
		}
	}
	productRepo := NewProductRepository(tx)
	for i := range data.Products {
		if err := productRepo.Create(ctx, &data.Products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", data.Products[i].ID, err)
		}
	}
	warehouseRepo := NewWarehouseRepository(tx)
	for i := range data.Warehouses {
		if err := warehouseRepo.Create(ctx, &data.Warehouses[i]); err != nil {
			return fmt.Errorf("seed warehouse %s: %w", data.Warehouses[i].ID, err)
		}
	}
	stockRepo := NewStockRepository(tx)
	for i := range data.Stock {
		if err := stockRepo.Upsert(ctx, &data.Stock[i]); err != nil {
			return fmt.Errorf("seed stock: %w", err)
		}
	}
	txRepo := NewTransactionRepository(tx)
	for i := range data.Transactions {
		if err := txRepo.Create(ctx, &data.Transactions[i]); err != nil {
			return fmt.Errorf("seed transaction %s: %w", data.Transactions[i].ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	log.Info().
		Int("users", len(data.Users)).
		Int("products", len(data.Products)).
		Int("transactions", len(data.Transactions)).
		Msg("base de datos inicializada con datos semilla")
	return nil
}
