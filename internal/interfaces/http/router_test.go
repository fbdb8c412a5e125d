package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/query"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/report"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
)

// Usuarios del conjunto semilla.
const (
	adminID = "1"
	ninelID = "2"
)

// newAPI arma la API completa sobre un almacén en memoria con los datos semilla.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	data, err := seed.Default()
	require.NoError(t, err)
	store := memory.New(data.Snapshot())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		LedgerUC:    ledger.NewLedgerUseCase(store, store.Products(), store.Users(), zerolog.Nop()),
		QueryUC:     query.NewQueryUseCase(store.Products(), store.Warehouses(), store.Stock(), store.Transactions(), store.Sales(), store.Users()),
		ProductUC:   usecase.NewProductUseCase(store.Products()),
		WarehouseUC: usecase.NewWarehouseUseCase(store.Warehouses()),
		UserUC:      usecase.NewUserUseCase(store.Users()),
		JWTSecret:   testJWTSecret,
		AppName:     "stock-ledger-test",
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func TestHealth(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@company.com", Password: seed.DefaultPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Role)

	// El token devuelto sirve para rutas protegidas.
	resp = call(t, app, http.MethodGet, "/api/products", "Bearer "+out.Token, nil)
	var products []dto.ProductResponse
	decode(t, resp, &products)
	assert.Len(t, products, 6)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@company.com", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@company.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLedgerFlow(t *testing.T) {
	app := newAPI(t)
	admin := tokenFor(t, adminID, "admin")
	ninel := tokenFor(t, ninelID, "manager")

	// Traslado oficina → Ninel.
	resp := call(t, app, http.MethodPost, "/api/ledger/transfers", admin, dto.TransferRequest{ProductID: "1", Quantity: 10, ManagerID: ninelID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tx dto.TransactionResponse
	decode(t, resp, &tx)
	assert.Equal(t, "transfer", tx.Type)
	assert.Equal(t, adminID, tx.AdminID)

	// Venta del gerente desde su bodega.
	resp = call(t, app, http.MethodPost, "/api/ledger/sales", ninel, map[string]any{
		"product_id": "1", "quantity": 3, "amount": "450.50", "customer_name": "María", "date": "2025-03-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	decode(t, resp, &sale)
	assert.Equal(t, ninelID, sale.ManagerID)
	assert.Equal(t, "450.5", sale.Amount.String())
	assert.NotEmpty(t, sale.TransactionID)

	// Más de lo disponible.
	resp = call(t, app, http.MethodPost, "/api/ledger/sales", ninel, dto.SaleRequest{ProductID: "1", Quantity: 100})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, resp))

	resp = call(t, app, http.MethodGet, "/api/me/stock", ninel, nil)
	var rows []dto.StockRowDTO
	decode(t, resp, &rows)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		if r.ProductID == "1" {
			assert.Equal(t, 7, r.Quantity)
		}
	}

	// Editar la venta: 3 → 5 descuenta 2 más.
	five := 5
	resp = call(t, app, http.MethodPut, "/api/sales/"+sale.ID, admin, dto.UpdateSaleRequest{Quantity: &five})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// El gerente solo ve sus operaciones.
	resp = call(t, app, http.MethodGet, "/api/transactions?manager_id=3", ninel, nil)
	var feed dto.TransactionListResponse
	decode(t, resp, &feed)
	assert.Equal(t, 2, feed.Page.Total)
	for _, it := range feed.Items {
		assert.Equal(t, ninelID, it.ManagerID)
	}

	resp = call(t, app, http.MethodGet, "/api/transactions?type=sale&from=2025-03-01&to=2025-03-01", admin, nil)
	decode(t, resp, &feed)
	require.Equal(t, 1, feed.Page.Total)
	assert.Equal(t, sale.ID, feed.Items[0].SaleID)
	assert.Equal(t, 5, feed.Items[0].Quantity)

	resp = call(t, app, http.MethodGet, "/api/ledger/reconciliation", admin, nil)
	var rec dto.ReconciliationResponse
	decode(t, resp, &rec)
	assert.True(t, rec.Consistent)
	assert.Empty(t, rec.Drift)
}

func TestLedger_ErroresMapeados(t *testing.T) {
	app := newAPI(t)
	admin := tokenFor(t, adminID, "admin")
	ninel := tokenFor(t, ninelID, "manager")

	resp := call(t, app, http.MethodPost, "/api/ledger/receipts", admin, dto.ReceiptRequest{ProductID: "1", Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/ledger/receipts", admin, dto.ReceiptRequest{ProductID: "999", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/ledger/receipts", ninel, dto.ReceiptRequest{ProductID: "1", Quantity: 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/ledger/sales", admin, dto.SaleRequest{ProductID: "1", Quantity: 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/ledger/returns", ninel, dto.ReturnRequest{ProductID: "1", Quantity: 1, Date: "01/02/2025"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/transactions?type=robo", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPut, "/api/sales/no-existe", admin, map[string]any{"comments": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestReports(t *testing.T) {
	app := newAPI(t)
	admin := tokenFor(t, adminID, "admin")

	resp := call(t, app, http.MethodGet, "/api/reports/statistics", admin, nil)
	var stats dto.StatisticsDTO
	decode(t, resp, &stats)
	assert.Equal(t, 6, stats.TotalProducts)
	assert.Equal(t, 476, stats.TotalStock)
	assert.Equal(t, 476, stats.OfficeStock)

	resp = call(t, app, http.MethodGet, "/api/reports/statistics", tokenFor(t, ninelID, "manager"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/reports/stock/export?format=csv", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock.csv")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "producto")

	resp = call(t, app, http.MethodGet, "/api/reports/transactions/export?format=xml", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NoError(t, report.VerifyLedgerXML(body))

	resp = call(t, app, http.MethodGet, "/api/reports/transactions/export?format=pdf", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers(t *testing.T) {
	app := newAPI(t)
	admin := tokenFor(t, adminID, "admin")

	resp := call(t, app, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{Name: "Nuevo", Email: "Nuevo@Company.com", Role: "manager"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.UserResponse
	decode(t, resp, &created)
	assert.Equal(t, "nuevo@company.com", created.Email)

	resp = call(t, app, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{Name: "Otro", Email: "ninel@company.com", Role: "manager"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, resp))

	resp = call(t, app, http.MethodDelete, "/api/users/"+adminID, admin, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "CANNOT_DELETE_SELF", errorCode(t, resp))

	resp = call(t, app, http.MethodDelete, "/api/users/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/users", tokenFor(t, ninelID, "manager"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
