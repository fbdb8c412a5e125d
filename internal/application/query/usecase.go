// Package query deriva vistas de solo lectura sobre el almacén: stock con producto,
// historial de transacciones, resúmenes por gerente y estadísticas globales.
package query

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// UnknownWarehouseName nombre mostrado cuando una fila apunta a una bodega inexistente.
const UnknownWarehouseName = "Almacén desconocido"

// TransactionFilter filtros del historial; campos vacíos no filtran.
type TransactionFilter struct {
	ManagerID string
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Search    string
}

// RollupFilter filtros de los resúmenes por gerente.
type RollupFilter struct {
	ManagerID string
	From      *time.Time
	To        *time.Time
}

// QueryUseCase agrupa las consultas; no escribe nada.
type QueryUseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
	txRepo        repository.TransactionRepository
	saleRepo      repository.SaleRepository
	userRepo      repository.UserRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	txRepo repository.TransactionRepository,
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
) *QueryUseCase {
	return &QueryUseCase{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		txRepo:        txRepo,
		saleRepo:      saleRepo,
		userRepo:      userRepo,
	}
}

// lookups índices por id para los joins.
type lookups struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	users      map[string]*entity.User
}

func (uc *QueryUseCase) loadLookups(ctx context.Context) (*lookups, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.warehouseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	l := &lookups{
		products:   make(map[string]*entity.Product, len(products)),
		warehouses: make(map[string]*entity.Warehouse, len(warehouses)),
		users:      make(map[string]*entity.User, len(users)),
	}
	for _, p := range products {
		l.products[p.ID] = p
	}
	for _, w := range warehouses {
		l.warehouses[w.ID] = w
	}
	for _, u := range users {
		l.users[u.ID] = u
	}
	return l, nil
}

func (l *lookups) warehouseName(id string) string {
	if id == "" {
		return ""
	}
	if w, ok := l.warehouses[id]; ok {
		return w.Name
	}
	return UnknownWarehouseName
}

func (l *lookups) userName(id string) string {
	if u, ok := l.users[id]; ok {
		return u.Name
	}
	return ""
}

// StockWithProducts une stock con producto; warehouseID vacío = todas las bodegas.
// Las filas cuyo producto no existe se omiten.
func (uc *QueryUseCase) StockWithProducts(ctx context.Context, warehouseID string) ([]dto.StockRowDTO, error) {
	l, err := uc.loadLookups(ctx)
	if err != nil {
		return nil, err
	}
	var stocks []*entity.Stock
	if warehouseID == "" {
		stocks, err = uc.stockRepo.List(ctx)
	} else {
		stocks, err = uc.stockRepo.ListByWarehouse(ctx, warehouseID)
	}
	if err != nil {
		return nil, err
	}
	rows := make([]dto.StockRowDTO, 0, len(stocks))
	for _, s := range stocks {
		p, ok := l.products[s.ProductID]
		if !ok {
			continue
		}
		rows = append(rows, dto.StockRowDTO{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Unit:          p.Unit,
			WarehouseID:   s.WarehouseID,
			WarehouseName: l.warehouseName(s.WarehouseID),
			Quantity:      s.Quantity,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WarehouseID != rows[j].WarehouseID {
			return warehouseLess(rows[i].WarehouseID, rows[j].WarehouseID)
		}
		return rows[i].ProductName < rows[j].ProductName
	})
	return rows, nil
}

// ManagerStock stock de la bodega del gerente; vacío si aún no tiene bodega.
func (uc *QueryUseCase) ManagerStock(ctx context.Context, managerID string) ([]dto.StockRowDTO, error) {
	wh, err := uc.warehouseRepo.GetByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return []dto.StockRowDTO{}, nil
	}
	return uc.StockWithProducts(ctx, wh.ID)
}

// StockByWarehouse agrupa el stock por bodega, oficina primero.
func (uc *QueryUseCase) StockByWarehouse(ctx context.Context) ([]dto.WarehouseStockDTO, error) {
	rows, err := uc.StockWithProducts(ctx, "")
	if err != nil {
		return nil, err
	}
	var out []dto.WarehouseStockDTO
	index := map[string]int{}
	for _, r := range rows {
		i, ok := index[r.WarehouseID]
		if !ok {
			i = len(out)
			index[r.WarehouseID] = i
			out = append(out, dto.WarehouseStockDTO{WarehouseID: r.WarehouseID, WarehouseName: r.WarehouseName})
		}
		out[i].Items = append(out[i].Items, r)
		out[i].TotalUnits += r.Quantity
	}
	return out, nil
}

// TransactionFeed historial con detalles, del más reciente al más antiguo.
func (uc *QueryUseCase) TransactionFeed(ctx context.Context, f TransactionFilter) ([]dto.TransactionResponse, error) {
	l, err := uc.loadLookups(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := ""
	if s := strings.TrimSpace(f.Search); s != "" {
		needle = cases.Fold().String(s)
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		p, ok := l.products[tx.ProductID]
		if !ok {
			continue
		}
		if f.ManagerID != "" && tx.ManagerID != f.ManagerID {
			continue
		}
		if f.ProductID != "" && tx.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if !inRange(tx.Date, f.From, f.To) {
			continue
		}
		if needle != "" && !matches(needle, p.Name, tx.CustomerName, tx.ContractorName, tx.Notes, tx.Comments) {
			continue
		}
		r := TransactionToResponse(tx)
		r.ProductName = p.Name
		r.FromWarehouseName = l.warehouseName(tx.FromWarehouseID)
		r.ToWarehouseName = l.warehouseName(tx.ToWarehouseID)
		r.ManagerName = l.userName(tx.ManagerID)
		r.AdminName = l.userName(tx.AdminID)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ManagerSales ventas de un gerente (todas si managerID es vacío), más recientes primero.
func (uc *QueryUseCase) ManagerSales(ctx context.Context, managerID string) ([]dto.SaleResponse, error) {
	l, err := uc.loadLookups(ctx)
	if err != nil {
		return nil, err
	}
	var sales []*entity.Sale
	if managerID == "" {
		sales, err = uc.saleRepo.List(ctx)
	} else {
		sales, err = uc.saleRepo.ListByManager(ctx, managerID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		p, ok := l.products[s.ProductID]
		if !ok {
			continue
		}
		r := SaleToResponse(s)
		r.ProductName = p.Name
		r.ManagerName = l.userName(s.ManagerID)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// TransactionToResponse convierte una transacción sin resolver nombres.
func TransactionToResponse(tx *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              tx.ID,
		Type:            tx.Type,
		ProductID:       tx.ProductID,
		Quantity:        tx.Quantity,
		FromWarehouseID: tx.FromWarehouseID,
		ToWarehouseID:   tx.ToWarehouseID,
		ManagerID:       tx.ManagerID,
		AdminID:         tx.AdminID,
		Date:            tx.Date,
		Notes:           tx.Notes,
		Comments:        tx.Comments,
		CustomerName:    tx.CustomerName,
		CustomerPhone:   tx.CustomerPhone,
		CustomerCity:    tx.CustomerCity,
		SaleAmount:      tx.SaleAmount,
		SaleID:          tx.SaleID,
		ContractorName:  tx.ContractorName,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

// SaleToResponse convierte una venta sin resolver nombres.
func SaleToResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID,
		ManagerID:     s.ManagerID,
		ProductID:     s.ProductID,
		Quantity:      s.Quantity,
		Amount:        s.Amount,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		CustomerCity:  s.CustomerCity,
		Date:          s.Date,
		Comments:      s.Comments,
		TransactionID: s.TransactionID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func inRange(d time.Time, from, to *time.Time) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

func matches(needle string, fields ...string) bool {
	folder := cases.Fold()
	for _, f := range fields {
		if f != "" && strings.Contains(folder.String(f), needle) {
			return true
		}
	}
	return false
}

// warehouseLess ordena la oficina antes que las bodegas de gerentes.
func warehouseLess(a, b string) bool {
	if a == entity.OfficeWarehouseID || b == entity.OfficeWarehouseID {
		return a == entity.OfficeWarehouseID
	}
	return a < b
}
