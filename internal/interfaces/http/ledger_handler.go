package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/query"
)

// LedgerHandler operaciones que mueven stock. Cada una escribe exactamente una transacción.
type LedgerHandler struct {
	uc *ledger.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Receipt godoc
// @Summary      Registrar entrada a oficina
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiptRequest  true  "product_id, quantity, notes"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/receipts [post]
func (h *LedgerHandler) Receipt(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	tx, err := h.uc.Receive(c.UserContext(), ledger.ReceiveInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		AdminID:   GetUserID(c),
		Notes:     in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(query.TransactionToResponse(tx))
}

// Transfer godoc
// @Summary      Trasladar de oficina a un gerente
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, quantity, manager_id"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/transfers [post]
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	tx, err := h.uc.Transfer(c.UserContext(), ledger.TransferInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		ManagerID: in.ManagerID,
		AdminID:   GetUserID(c),
		Notes:     in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(query.TransactionToResponse(tx))
}

// Sale godoc
// @Summary      Registrar venta del gerente autenticado
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "product_id, quantity, amount, cliente, date"
// @Success      201   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/sales [post]
func (h *LedgerHandler) Sale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return validation(c, "date debe tener formato YYYY-MM-DD")
	}
	sale, err := h.uc.Sell(c.UserContext(), ledger.SellInput{
		ManagerID: GetUserID(c),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Amount:    in.Amount,
		Customer:  ledger.Customer{Name: in.CustomerName, Phone: in.CustomerPhone, City: in.CustomerCity},
		Date:      date,
		Comments:  in.Comments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(query.SaleToResponse(sale))
}

// Return godoc
// @Summary      Registrar devolución a la bodega del gerente autenticado
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnRequest  true  "product_id, quantity, date"
// @Success      201   {object}  dto.TransactionResponse
// @Router       /api/ledger/returns [post]
func (h *LedgerHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return validation(c, "date debe tener formato YYYY-MM-DD")
	}
	tx, err := h.uc.ReturnStock(c.UserContext(), ledger.ReturnInput{
		ManagerID: GetUserID(c),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Date:      date,
		Comments:  in.Comments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(query.TransactionToResponse(tx))
}

// ContractorIssue godoc
// @Summary      Registrar salida a contratista
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContractorIssueRequest  true  "product_id, quantity, contractor_name"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/contractor-issues [post]
func (h *LedgerHandler) ContractorIssue(c *fiber.Ctx) error {
	var in dto.ContractorIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return validation(c, "date debe tener formato YYYY-MM-DD")
	}
	tx, err := h.uc.IssueToContractor(c.UserContext(), ledger.ContractorIssueInput{
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		ContractorName: in.ContractorName,
		AdminID:        GetUserID(c),
		Date:           date,
		Comments:       in.Comments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(query.TransactionToResponse(tx))
}

// Reconciliation godoc
// @Summary      Conciliar stock contra el libro
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationResponse
// @Router       /api/ledger/reconciliation [get]
func (h *LedgerHandler) Reconciliation(c *fiber.Ctx) error {
	report, err := h.uc.Reconcile(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ReconciliationResponse{
		CheckedAt:    report.CheckedAt,
		Consistent:   report.Consistent(),
		Transactions: report.Transactions,
		StockRows:    report.StockRows,
		Drift:        make([]dto.DriftDTO, 0, len(report.Drift)),
	}
	for _, d := range report.Drift {
		out.Drift = append(out.Drift, dto.DriftDTO{
			ProductID: d.ProductID, WarehouseID: d.WarehouseID, Recorded: d.Recorded, Expected: d.Expected,
		})
	}
	return c.JSON(out)
}
