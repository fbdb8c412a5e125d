package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Get y GetForUpdate devuelven una fila con cantidad 0 si no existe (se crea en el Upsert).
type StockRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila cuando el backend lo soporta (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	List(ctx context.Context) ([]*entity.Stock, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Stock, error)
}
