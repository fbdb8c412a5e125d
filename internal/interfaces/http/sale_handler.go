package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/query"
)

// SaleHandler lectura y edición de ventas.
type SaleHandler struct {
	ledgerUC *ledger.LedgerUseCase
	queryUC  *query.QueryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(ledgerUC *ledger.LedgerUseCase, queryUC *query.QueryUseCase) *SaleHandler {
	return &SaleHandler{ledgerUC: ledgerUC, queryUC: queryUC}
}

// List godoc
// @Summary      Listar ventas
// @Description  Un gerente solo ve sus ventas; el admin puede filtrar por manager_id.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        manager_id  query  string  false  "Gerente (solo admin)"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	managerID := c.Query("manager_id")
	if isManager(c) {
		managerID = GetUserID(c)
	}
	out, err := h.queryUC.ManagerSales(c.UserContext(), managerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar venta
// @Description  Ajusta el stock del gerente por la diferencia de cantidad y actualiza la transacción enlazada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "quantity, date, comments"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	upd := ledger.SaleUpdate{Quantity: in.Quantity, Comments: in.Comments}
	if in.Date != nil {
		d, err := parseDate(*in.Date)
		if err != nil || d.IsZero() {
			return validation(c, "date debe tener formato YYYY-MM-DD")
		}
		upd.Date = &d
	}
	sale, err := h.ledgerUC.EditSale(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(query.SaleToResponse(sale))
}
