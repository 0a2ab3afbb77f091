package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/analytics"
	"github.com/jhoicas/Compras-api/internal/application/auth"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
	"github.com/jhoicas/Compras-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Compras-api/internal/interfaces/http"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type api struct {
	t     *testing.T
	app   *fiber.App
	admin string
	user  string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	repos := store.Repos()
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, log)
	_, err := authUC.SeedAdmin(context.Background(), auth.AdminSeed{Name: "Ana", Email: "admin@compras.local", Password: "s3cret"})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(repos.Users, log),
		ProductUC:     usecase.NewProductUseCase(repos.Products, nil, log),
		OrderUC:       purchasing.NewOrderUseCase(store, repos, nil, log),
		EntryUC:       purchasing.NewEntryUseCase(store, repos, nil, log),
		ExitUC:        inventory.NewExitUseCase(store, repos, nil, log),
		InstallmentUC: inventory.NewInstallmentUseCase(store, repos, log),
		ReportUC:      analytics.NewReportUseCase(repos, nil, pdf.NewStockReportGenerator("Compras"), log),
		JWTSecret:     testJWTSecret,
		Log:           log,
	})
	a := &api{t: t, app: app, user: tokenForRole(t, "user")}

	var login struct {
		Token string `json:"token"`
	}
	a.decode(a.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@compras.local", "password": "s3cret"}), http.StatusOK, &login)
	a.admin = "Bearer " + login.Token
	return a
}

func (a *api) call(method, path, token string, body any) *http.Response {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

// decode verifica el status y decodifica data en out (si no es nil). Devuelve el sobre.
func (a *api) decode(resp *http.Response, status int, out any) envelope {
	a.t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(a.t, status, resp.StatusCode, "error=%s message=%s", env.Error, env.Message)
	if out != nil {
		require.NoError(a.t, json.Unmarshal(env.Data, out))
	}
	return env
}

type idOnly struct {
	ID    string `json:"id"`
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
	Status string `json:"status"`
}

func TestAPI_FlujoCompleto(t *testing.T) {
	a := newAPI(t)

	var product idOnly
	a.decode(a.call(http.MethodPost, "/api/products", a.user, map[string]any{
		"name": "Papel A4", "supplier": "Papelera", "unit_cost": "100", "unit_type": "caja",
	}), http.StatusCreated, &product)

	var order idOnly
	a.decode(a.call(http.MethodPost, "/api/orders", a.user, map[string]any{
		"order_number": "PC-001", "date": "2025-03-01",
		"items": []map[string]any{{"product_id": product.ID, "quantity": 10}},
	}), http.StatusCreated, &order)
	assert.Equal(t, "pending", order.Status)

	env := a.decode(a.call(http.MethodPut, "/api/orders/"+order.ID+"/approve", a.user, nil), http.StatusForbidden, nil)
	assert.Equal(t, apphttp.CodeForbidden, env.Error)

	a.decode(a.call(http.MethodPut, "/api/orders/"+order.ID+"/approve", a.admin, nil), http.StatusOK, &order)
	assert.Equal(t, "approved", order.Status)

	entry := func(qty int) map[string]any {
		return map[string]any{
			"order_id": order.ID, "date": "2025-03-10", "payment_method": "pix",
			"installments": 1, "first_due_date": "2025-04-10",
			"invoices": []map[string]any{{
				"invoice_number": "NF-100",
				"items":          []map[string]any{{"order_item_id": order.Items[0].ID, "quantity": qty, "adjusted_unit_cost": "110"}},
			}},
		}
	}
	env = a.decode(a.call(http.MethodPost, "/api/stock-entries", a.user, entry(11)), http.StatusUnprocessableEntity, nil)
	assert.Equal(t, apphttp.CodeOverReceipt, env.Error)

	var created struct {
		StockItems   int `json:"stock_items"`
		Installments []struct {
			Value string `json:"value"`
		} `json:"installments"`
	}
	a.decode(a.call(http.MethodPost, "/api/stock-entries", a.user, entry(10)), http.StatusCreated, &created)
	assert.Equal(t, 10, created.StockItems)
	require.Len(t, created.Installments, 1)
	assert.Equal(t, "1100", created.Installments[0].Value)

	var units []idOnly
	a.decode(a.call(http.MethodGet, "/api/stock-items?status=available&search=papel", a.user, nil), http.StatusOK, &units)
	require.Len(t, units, 10)

	var exit idOnly
	a.decode(a.call(http.MethodPost, "/api/stock-exits", a.user, map[string]any{
		"stock_item_ids": []string{units[0].ID, units[1].ID, units[2].ID}, "exit_date": "2025-03-20",
	}), http.StatusCreated, &exit)

	env = a.decode(a.call(http.MethodPost, "/api/stock-exits", a.user, map[string]any{
		"stock_item_ids": []string{units[0].ID}, "exit_date": "2025-03-21",
	}), http.StatusConflict, nil)
	assert.Equal(t, apphttp.CodeConflict, env.Error)

	var stats struct {
		StockItemsCount int    `json:"stock_items_count"`
		TotalStockValue string `json:"total_stock_value"`
	}
	a.decode(a.call(http.MethodGet, "/api/dashboard/stats", a.user, nil), http.StatusOK, &stats)
	assert.Equal(t, 7, stats.StockItemsCount)
	assert.Equal(t, "770", stats.TotalStockValue)

	resp := a.call(http.MethodGet, "/api/reports/stock/pdf", a.user, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	a.decode(a.call(http.MethodPut, "/api/stock-exits/"+exit.ID+"/confirm", a.admin, nil), http.StatusOK, nil)
	a.decode(a.call(http.MethodDelete, "/api/stock-exits/"+exit.ID, a.user, nil), http.StatusForbidden, nil)
	a.decode(a.call(http.MethodDelete, "/api/stock-exits/"+exit.ID, a.admin, nil), http.StatusOK, nil)
	a.decode(a.call(http.MethodGet, "/api/stock-items?status=available", a.user, nil), http.StatusOK, &units)
	assert.Len(t, units, 10)
}

func TestAPI_Errores(t *testing.T) {
	a := newAPI(t)

	env := a.decode(a.call(http.MethodGet, "/api/products/no-existe", a.user, nil), http.StatusNotFound, nil)
	assert.Equal(t, apphttp.CodeNotFound, env.Error)

	env = a.decode(a.call(http.MethodPost, "/api/products", a.user, map[string]any{"name": ""}), http.StatusBadRequest, nil)
	assert.Equal(t, apphttp.CodeValidation, env.Error)
	assert.Contains(t, env.Message, "supplier")

	env = a.decode(a.call(http.MethodGet, "/api/orders?status=closed", a.user, nil), http.StatusBadRequest, nil)
	assert.Equal(t, apphttp.CodeValidation, env.Error)

	env = a.decode(a.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@compras.local", "password": "mal"}), http.StatusUnauthorized, nil)
	assert.Equal(t, apphttp.CodeUnauthorized, env.Error)

	env = a.decode(a.call(http.MethodGet, "/api/products", "", nil), http.StatusUnauthorized, nil)
	assert.Equal(t, "MISSING_TOKEN", env.Error)

	var product idOnly
	a.decode(a.call(http.MethodPost, "/api/products", a.user, map[string]any{
		"name": "Tóner", "supplier": "HP", "unit_cost": "50", "unit_type": "unidad",
	}), http.StatusCreated, &product)
	order := map[string]any{
		"order_number": "PC-9", "date": "2025-03-01",
		"items": []map[string]any{{"product_id": product.ID, "quantity": 1}},
	}
	a.decode(a.call(http.MethodPost, "/api/orders", a.user, order), http.StatusCreated, nil)
	env = a.decode(a.call(http.MethodPost, "/api/orders", a.user, order), http.StatusConflict, nil)
	assert.Equal(t, apphttp.CodeDuplicate, env.Error)
}

func TestAPI_Usuarios(t *testing.T) {
	a := newAPI(t)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	a.decode(a.call(http.MethodGet, "/api/users/me", a.admin, nil), http.StatusOK, &me)
	assert.Equal(t, "admin@compras.local", me.Email)
	assert.Equal(t, "admin", me.Role)

	nuevo := map[string]string{"name": "Bruno", "email": "bruno@compras.local", "password": "clave-segura", "role": "user"}
	a.decode(a.call(http.MethodPost, "/api/users", a.user, nuevo), http.StatusForbidden, nil)
	a.decode(a.call(http.MethodPost, "/api/users", a.admin, nuevo), http.StatusCreated, nil)

	var login struct {
		Token string `json:"token"`
	}
	a.decode(a.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "bruno@compras.local", "password": "clave-segura"}), http.StatusOK, &login)
	assert.NotEmpty(t, login.Token)
}
