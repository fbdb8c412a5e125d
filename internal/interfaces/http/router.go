package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/query"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	LedgerUC    *ledger.LedgerUseCase
	QueryUC     *query.QueryUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	UserUC      *usecase.UserUseCase
	JWTSecret   string
	AppName     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	managerOnly := RequireRole(entity.RoleManager)

	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	lg := protected.Group("/ledger")
	lg.Post("/receipts", adminOnly, ledgerHandler.Receipt)
	lg.Post("/transfers", adminOnly, ledgerHandler.Transfer)
	lg.Post("/contractor-issues", adminOnly, ledgerHandler.ContractorIssue)
	lg.Get("/reconciliation", adminOnly, ledgerHandler.Reconciliation)
	lg.Post("/sales", managerOnly, ledgerHandler.Sale)
	lg.Post("/returns", managerOnly, ledgerHandler.Return)

	saleHandler := NewSaleHandler(deps.LedgerUC, deps.QueryUC)
	protected.Get("/sales", saleHandler.List)
	protected.Put("/sales/:id", adminOnly, saleHandler.Update)

	stockHandler := NewStockHandler(deps.QueryUC)
	protected.Get("/stock", stockHandler.Stock)
	protected.Get("/me/stock", stockHandler.MyStock)
	protected.Get("/transactions", stockHandler.Transactions)

	reportHandler := NewReportHandler(deps.QueryUC)
	reports := protected.Group("/reports", adminOnly)
	reports.Get("/statistics", reportHandler.Statistics)
	reports.Get("/managers", reportHandler.Managers)
	reports.Get("/products", reportHandler.Products)
	reports.Get("/stock", reportHandler.StockByWarehouse)
	reports.Get("/stock/export", reportHandler.ExportStock)
	reports.Get("/transactions/export", reportHandler.ExportTransactions)

	productHandler := NewProductHandler(deps.ProductUC)
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.GetByID)
	protected.Post("/products", adminOnly, productHandler.Create)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	protected.Get("/warehouses", warehouseHandler.List)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
