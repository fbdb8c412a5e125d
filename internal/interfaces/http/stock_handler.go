package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/query"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockHandler lecturas de stock e historial de transacciones.
type StockHandler struct {
	uc *query.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *query.QueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Stock godoc
// @Summary      Stock con producto
// @Description  El admin puede filtrar por warehouse_id; un gerente siempre ve su propia bodega.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega (solo admin)"
// @Success      200  {array}  dto.StockRowDTO
// @Router       /api/stock [get]
func (h *StockHandler) Stock(c *fiber.Ctx) error {
	if isManager(c) {
		return h.MyStock(c)
	}
	out, err := h.uc.StockWithProducts(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MyStock godoc
// @Summary      Stock de la bodega del usuario autenticado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockRowDTO
// @Router       /api/me/stock [get]
func (h *StockHandler) MyStock(c *fiber.Ctx) error {
	out, err := h.uc.ManagerStock(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transactions godoc
// @Summary      Historial de transacciones
// @Description  Más recientes primero. Un gerente solo ve sus operaciones.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        manager_id  query  string  false  "Gerente (solo admin)"
// @Param        product_id  query  string  false  "Producto"
// @Param        type        query  string  false  "receipt|transfer|sale|return|contractor_issue"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        search      query  string  false  "Texto libre"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *StockHandler) Transactions(c *fiber.Ctx) error {
	f, err := transactionFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validation(c, "limit/offset inválidos")
	}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}

	rows, err := h.uc.TransactionFeed(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	total := len(rows)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	return c.JSON(dto.TransactionListResponse{
		Items: rows[start:end],
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// transactionFilter arma el filtro desde la query; para gerentes fija manager_id al propio.
func transactionFilter(c *fiber.Ctx) (query.TransactionFilter, error) {
	f := query.TransactionFilter{
		ManagerID: c.Query("manager_id"),
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		Search:    c.Query("search"),
	}
	if isManager(c) {
		f.ManagerID = GetUserID(c)
	}
	if f.Type != "" && !entity.ValidTransactionType(f.Type) {
		return f, errInvalidType
	}
	var err error
	if f.From, err = queryDate(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryDate(c, "to"); err != nil {
		return f, err
	}
	return f, nil
}
