package query

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ManagerRollups resume por gerente lo recibido, vendido y devuelto en el período,
// más su stock actual.
func (uc *QueryUseCase) ManagerRollups(ctx context.Context, f RollupFilter) ([]dto.ManagerRollupDTO, error) {
	l, err := uc.loadLookups(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byManager := map[string]*dto.ManagerRollupDTO{}
	var order []string
	for _, u := range l.users {
		if u.Role != entity.RoleManager || (f.ManagerID != "" && u.ID != f.ManagerID) {
			continue
		}
		byManager[u.ID] = &dto.ManagerRollupDTO{ManagerID: u.ID, ManagerName: u.Name}
		order = append(order, u.ID)
	}

	for _, tx := range txs {
		r, ok := byManager[tx.ManagerID]
		if !ok || !inRange(tx.Date, f.From, f.To) {
			continue
		}
		switch tx.Type {
		case entity.TransactionTypeTransfer:
			r.Received += tx.Quantity
			r.TransferCount++
		case entity.TransactionTypeSale:
			r.Sold += tx.Quantity
			r.SaleCount++
			r.SalesAmount = r.SalesAmount.Add(tx.SaleAmount)
		case entity.TransactionTypeReturn:
			r.Returned += tx.Quantity
			r.ReturnCount++
		}
	}

	for _, s := range stocks {
		wh, ok := l.warehouses[s.WarehouseID]
		if !ok || wh.Type != entity.WarehouseTypeManager {
			continue
		}
		r, ok := byManager[wh.ManagerID]
		if !ok {
			continue
		}
		r.CurrentStock += s.Quantity
		if s.Quantity > 0 {
			r.StockItems++
		}
	}

	out := make([]dto.ManagerRollupDTO, 0, len(order))
	for _, id := range order {
		out = append(out, *byManager[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ManagerName != out[j].ManagerName {
			return out[i].ManagerName < out[j].ManagerName
		}
		return out[i].ManagerID < out[j].ManagerID
	})
	return out, nil
}

// ProductRollups desglosa por gerente y producto; omite combinaciones sin movimiento.
func (uc *QueryUseCase) ProductRollups(ctx context.Context, f RollupFilter) ([]dto.ProductRollupDTO, error) {
	l, err := uc.loadLookups(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	type key struct{ manager, product string }
	rows := map[key]*dto.ProductRollupDTO{}
	for _, tx := range txs {
		if tx.ManagerID == "" || (f.ManagerID != "" && tx.ManagerID != f.ManagerID) {
			continue
		}
		u, ok := l.users[tx.ManagerID]
		if !ok || u.Role != entity.RoleManager {
			continue
		}
		p, ok := l.products[tx.ProductID]
		if !ok || !inRange(tx.Date, f.From, f.To) {
			continue
		}
		k := key{tx.ManagerID, tx.ProductID}
		r, ok := rows[k]
		if !ok {
			r = &dto.ProductRollupDTO{ManagerID: u.ID, ManagerName: u.Name, ProductID: p.ID, ProductName: p.Name}
			rows[k] = r
		}
		switch tx.Type {
		case entity.TransactionTypeTransfer:
			r.Received += tx.Quantity
		case entity.TransactionTypeSale:
			r.Sold += tx.Quantity
		case entity.TransactionTypeReturn:
			r.Returned += tx.Quantity
		}
	}

	out := make([]dto.ProductRollupDTO, 0, len(rows))
	for _, r := range rows {
		if r.Received == 0 && r.Sold == 0 && r.Returned == 0 {
			continue
		}
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ManagerName != b.ManagerName {
			return a.ManagerName < b.ManagerName
		}
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		if a.ManagerID != b.ManagerID {
			return a.ManagerID < b.ManagerID
		}
		return a.ProductID < b.ProductID
	})
	return out, nil
}

// Statistics totales globales del almacén.
func (uc *QueryUseCase) Statistics(ctx context.Context) (*dto.StatisticsDTO, error) {
	l, err := uc.loadLookups(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := uc.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	st := &dto.StatisticsDTO{TotalProducts: len(l.products), TotalSales: len(sales)}
	for _, s := range stocks {
		st.TotalStock += s.Quantity
		if wh, ok := l.warehouses[s.WarehouseID]; (ok && wh.IsOffice()) || s.WarehouseID == entity.OfficeWarehouseID {
			st.OfficeStock += s.Quantity
		} else {
			st.ManagerStock += s.Quantity
		}
	}
	for _, tx := range txs {
		if tx.Type == entity.TransactionTypeContractorIssue {
			st.ContractorIssued += tx.Quantity
		}
	}
	return st, nil
}
