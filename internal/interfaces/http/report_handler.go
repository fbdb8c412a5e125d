package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/query"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/report"
)

// ReportHandler resúmenes y exportaciones para el admin.
type ReportHandler struct {
	uc  *query.QueryUseCase
	now func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *query.QueryUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, now: func() time.Time { return time.Now().UTC() }}
}

// Statistics godoc
// @Summary      Estadísticas globales
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatisticsDTO
// @Router       /api/reports/statistics [get]
func (h *ReportHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.uc.Statistics(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Managers godoc
// @Summary      Resumen por gerente
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        manager_id  query  string  false  "Gerente"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.ManagerRollupDTO
// @Router       /api/reports/managers [get]
func (h *ReportHandler) Managers(c *fiber.Ctx) error {
	f, err := rollupFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ManagerRollups(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Movimientos por gerente y producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        manager_id  query  string  false  "Gerente"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.ProductRollupDTO
// @Router       /api/reports/products [get]
func (h *ReportHandler) Products(c *fiber.Ctx) error {
	f, err := rollupFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ProductRollups(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockByWarehouse godoc
// @Summary      Stock agrupado por bodega
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseStockDTO
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockByWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.StockByWarehouse(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportStock godoc
// @Summary      Exportar stock
// @Tags         reports
// @Security     Bearer
// @Produce      octet-stream
// @Param        format  query  string  false  "csv|xlsx|pdf"  default(csv)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/export [get]
func (h *ReportHandler) ExportStock(c *fiber.Ctx) error {
	format, err := report.ParseFormat(c.Query("format"), report.FormatCSV, report.FormatXLSX, report.FormatPDF)
	if err != nil {
		return writeError(c, err)
	}
	ctx := c.UserContext()

	var body []byte
	switch format {
	case report.FormatCSV:
		rows, err := h.uc.StockWithProducts(ctx, "")
		if err != nil {
			return writeError(c, err)
		}
		body, err = report.StockCSV(rows)
		if err != nil {
			return writeError(c, err)
		}
	case report.FormatXLSX:
		groups, err := h.uc.StockByWarehouse(ctx)
		if err != nil {
			return writeError(c, err)
		}
		body, err = report.StockXLSX(groups)
		if err != nil {
			return writeError(c, err)
		}
	case report.FormatPDF:
		groups, err := h.uc.StockByWarehouse(ctx)
		if err != nil {
			return writeError(c, err)
		}
		stats, err := h.uc.Statistics(ctx)
		if err != nil {
			return writeError(c, err)
		}
		body, err = report.StockPDF(groups, stats, h.now())
		if err != nil {
			return writeError(c, err)
		}
	}
	return sendFile(c, report.FileName("stock", format), format, body)
}

// ExportTransactions godoc
// @Summary      Exportar historial de transacciones
// @Description  Acepta los mismos filtros que GET /api/transactions. XML incluye digest SHA-256 canónico.
// @Tags         reports
// @Security     Bearer
// @Produce      octet-stream
// @Param        format  query  string  false  "csv|xlsx|xml"  default(csv)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/transactions/export [get]
func (h *ReportHandler) ExportTransactions(c *fiber.Ctx) error {
	format, err := report.ParseFormat(c.Query("format"), report.FormatCSV, report.FormatXLSX, report.FormatXML)
	if err != nil {
		return writeError(c, err)
	}
	f, err := transactionFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	rows, err := h.uc.TransactionFeed(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}

	var body []byte
	switch format {
	case report.FormatCSV:
		body, err = report.TransactionsCSV(rows)
	case report.FormatXLSX:
		body, err = report.TransactionsXLSX(rows)
	case report.FormatXML:
		body, err = report.LedgerXML(rows, h.now())
	}
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, report.FileName("transacciones", format), format, body)
}

func sendFile(c *fiber.Ctx, name, format string, body []byte) error {
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, report.ContentType(format))
	return c.Send(body)
}

func rollupFilter(c *fiber.Ctx) (query.RollupFilter, error) {
	f := query.RollupFilter{ManagerID: c.Query("manager_id")}
	var err error
	if f.From, err = queryDate(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryDate(c, "to"); err != nil {
		return f, err
	}
	return f, nil
}
