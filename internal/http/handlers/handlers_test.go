package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/donlucho/ferreteria-api/internal/auth"
	router "github.com/donlucho/ferreteria-api/internal/http"
	"github.com/donlucho/ferreteria-api/internal/http/handlers"
	rl "github.com/donlucho/ferreteria-api/internal/http/rate_limiter"
	"github.com/donlucho/ferreteria-api/internal/models"
	"github.com/donlucho/ferreteria-api/internal/repo"
	"github.com/donlucho/ferreteria-api/internal/sales"
)

type testEnv struct {
	router    http.Handler
	products  *repo.InMemoryProductRepository
	sales     *repo.InMemorySaleRepository
	movements *repo.InMemoryMovementRepository
	alerts    *repo.InMemoryAlertRepository
	users     *repo.InMemoryUserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		products:  repo.NewInMemoryProductRepository(),
		sales:     repo.NewInMemorySaleRepository(),
		movements: repo.NewInMemoryMovementRepository(),
		alerts:    repo.NewInMemoryAlertRepository(),
		users:     repo.NewInMemoryUserRepository(),
	}

	handlers.SetProductRepo(env.products)
	handlers.SetSaleRepo(env.sales)
	handlers.SetMovementRepo(env.movements)
	handlers.SetAlertRepo(env.alerts)
	handlers.SetUserRepo(env.users)
	handlers.SetSupplierRepo(repo.NewInMemorySupplierRepository())
	handlers.SetActionLogRepo(repo.NewInMemoryActionLogRepository())
	handlers.SetAccountingRepo(repo.NewInMemoryAccountingRepository())
	handlers.SetSalePoster(sales.NewPoster(env.products, env.sales, env.movements, env.alerts))
	handlers.SetCache(nil)
	rl.CleanupAllVisitors()

	env.router = router.NewRouter()
	return env
}

func (env *testEnv) seedProduct(t *testing.T, name string, price float64, stock, minStock int) models.Product {
	t.Helper()
	p, err := env.products.Create(models.Product{Name: name, Price: price, Stock: stock, MinStock: minStock})
	if err != nil {
		t.Fatalf("seeding product %q: %v", name, err)
	}
	return p
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(models.User{ID: 1, Username: "tester", Role: role})
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return "Bearer " + token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/products", "/sales", "/dashboard", "/alerts"} {
		if rec := env.do(t, http.MethodGet, path, "", nil); rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, rec.Code)
		}
	}
}

func TestRoleGates(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		body   any
		want   int
	}{
		{"cajero cannot create products", http.MethodPost, "/products", auth.RoleCajero, map[string]any{"name": "X", "price": 1.0}, http.StatusForbidden},
		{"contador cannot post sales", http.MethodPost, "/sales", auth.RoleContador, map[string]any{}, http.StatusForbidden},
		{"bodeguero cannot read accounting", http.MethodGet, "/accounting", auth.RoleBodeguero, nil, http.StatusForbidden},
		{"cajero cannot read logs", http.MethodGet, "/logs", auth.RoleCajero, nil, http.StatusForbidden},
		{"contador reads accounting", http.MethodGet, "/accounting", auth.RoleContador, nil, http.StatusOK},
		{"any role reads catalog", http.MethodGet, "/products", auth.RoleContador, nil, http.StatusOK},
		{"any role reads dashboard", http.MethodGet, "/dashboard", auth.RoleCajero, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := env.do(t, tt.method, tt.path, tokenFor(t, tt.role), tt.body); rec.Code != tt.want {
				t.Errorf("%s %s as %s = %d, want %d", tt.method, tt.path, tt.role, rec.Code, tt.want)
			}
		})
	}
}

func TestCreateAndSearchProducts(t *testing.T) {
	env := newTestEnv(t)
	token := tokenFor(t, auth.RoleBodeguero)

	rec := env.do(t, http.MethodPost, "/products", token, map[string]any{
		"name": "Martillo Stanley", "sku": "MART-01", "price": 9990.0, "cost": 6000.0,
		"stock": 10, "min_stock": 3,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product = %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/products", token, map[string]any{"name": "", "price": -1.0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid product = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/products/search?q=mart", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search = %d", rec.Code)
	}
	if results := decodeBody[[]map[string]any](t, rec); len(results) != 1 {
		t.Errorf("search matched %d products, want 1", len(results))
	}
}

func TestPostSaleEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	martillo := env.seedProduct(t, "Martillo", 5.0, 3, 1)
	clavos := env.seedProduct(t, "Clavos", 2.5, 10, 2)
	token := tokenFor(t, auth.RoleCajero)

	rec := env.do(t, http.MethodPost, "/sales", token, map[string]any{
		"customer_name": "Juan Pérez",
		"document_type": "boleta",
		"items": []map[string]int{
			{"product_id": martillo.ID, "quantity": 2},
			{"product_id": clavos.ID, "quantity": 4},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("post sale = %d: %s", rec.Code, rec.Body.String())
	}

	sale := decodeBody[models.Sale](t, rec)
	if sale.Total != 20.0 {
		t.Errorf("total = %v, want 20.0", sale.Total)
	}
	if sale.SaleNumber == "" {
		t.Error("sale number not assigned")
	}

	if p, _ := env.products.GetByID(martillo.ID); p.Stock != 1 {
		t.Errorf("martillo stock = %d, want 1", p.Stock)
	}
	if p, _ := env.products.GetByID(clavos.ID); p.Stock != 6 {
		t.Errorf("clavos stock = %d, want 6", p.Stock)
	}
}

func TestPostSaleValidationFailures(t *testing.T) {
	env := newTestEnv(t)
	martillo := env.seedProduct(t, "Martillo", 5.0, 3, 1)
	token := tokenFor(t, auth.RoleCajero)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			"missing customer",
			map[string]any{"document_type": "boleta", "items": []map[string]int{{"product_id": martillo.ID, "quantity": 1}}},
			http.StatusBadRequest,
		},
		{
			"bad document type",
			map[string]any{"customer_name": "X", "document_type": "ticket", "items": []map[string]int{{"product_id": martillo.ID, "quantity": 1}}},
			http.StatusBadRequest,
		},
		{
			"no items",
			map[string]any{"customer_name": "X", "document_type": "boleta"},
			http.StatusBadRequest,
		},
		{
			"unknown product",
			map[string]any{"customer_name": "X", "document_type": "boleta", "items": []map[string]int{{"product_id": 999, "quantity": 1}}},
			http.StatusBadRequest,
		},
		{
			"insufficient stock",
			map[string]any{"customer_name": "X", "document_type": "boleta", "items": []map[string]int{{"product_id": martillo.ID, "quantity": 4}}},
			http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := env.do(t, http.MethodPost, "/sales", token, tt.body); rec.Code != tt.want {
				t.Errorf("post sale = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	// Nothing was recorded or decremented by the failed attempts.
	if all, _ := env.sales.GetAll(); len(all) != 0 {
		t.Errorf("sales recorded = %d, want 0", len(all))
	}
	if p, _ := env.products.GetByID(martillo.ID); p.Stock != 3 {
		t.Errorf("stock = %d, want untouched 3", p.Stock)
	}
}

func TestSaleFiltersAndMetadataEdit(t *testing.T) {
	env := newTestEnv(t)
	martillo := env.seedProduct(t, "Martillo", 5.0, 50, 1)
	token := tokenFor(t, auth.RoleCajero)

	for _, customer := range []string{"Juan Pérez", "María López"} {
		rec := env.do(t, http.MethodPost, "/sales", token, map[string]any{
			"customer_name": customer,
			"document_type": "boleta",
			"items":         []map[string]int{{"product_id": martillo.ID, "quantity": 1}},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("post sale for %q = %d", customer, rec.Code)
		}
	}

	rec := env.do(t, http.MethodGet, "/sales?customer=juan", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list sales = %d", rec.Code)
	}
	filtered := decodeBody[[]models.Sale](t, rec)
	if len(filtered) != 1 || filtered[0].CustomerName != "Juan Pérez" {
		t.Errorf("filter matched %+v, want only Juan Pérez", filtered)
	}

	saleID := filtered[0].ID
	rec = env.do(t, http.MethodPut, "/sales/1", token, map[string]any{
		"customer_name": "Juan P. Soto",
		"document_type": "factura",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update sale = %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[models.Sale](t, rec)
	if updated.ID != saleID || updated.DocumentType != "factura" {
		t.Errorf("updated sale = %+v", updated)
	}
	if len(updated.Items) != 1 {
		t.Errorf("items changed on metadata edit: %+v", updated.Items)
	}
}

func TestDeleteSaleKeepsStock(t *testing.T) {
	env := newTestEnv(t)
	martillo := env.seedProduct(t, "Martillo", 5.0, 10, 1)
	token := tokenFor(t, auth.RoleCajero)

	rec := env.do(t, http.MethodPost, "/sales", token, map[string]any{
		"customer_name": "Juan",
		"document_type": "boleta",
		"items":         []map[string]int{{"product_id": martillo.ID, "quantity": 4}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("post sale = %d", rec.Code)
	}

	if rec := env.do(t, http.MethodDelete, "/sales/1", token, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete sale = %d", rec.Code)
	}

	if p, _ := env.products.GetByID(martillo.ID); p.Stock != 6 {
		t.Errorf("stock = %d after delete, want 6 (no restock)", p.Stock)
	}
	if rec := env.do(t, http.MethodDelete, "/sales/1", token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", rec.Code)
	}
}

func TestStockEntryLogsMovement(t *testing.T) {
	env := newTestEnv(t)
	martillo := env.seedProduct(t, "Martillo", 5.0, 2, 1)
	token := tokenFor(t, auth.RoleBodeguero)

	rec := env.do(t, http.MethodPost, "/products/1/entries", token, map[string]any{"quantity": 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("stock entry = %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[models.Product](t, rec)
	if updated.Stock != 7 {
		t.Errorf("stock = %d, want 7", updated.Stock)
	}

	if rec := env.do(t, http.MethodPost, "/products/1/entries", token, map[string]any{"quantity": 0}); rec.Code != http.StatusBadRequest {
		t.Errorf("zero quantity entry = %d, want 400", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/products/99/entries", token, map[string]any{"quantity": 1}); rec.Code != http.StatusNotFound {
		t.Errorf("entry for unknown product = %d, want 404", rec.Code)
	}

	logged := env.movements.All()
	if len(logged) != 1 {
		t.Fatalf("movements = %d, want 1", len(logged))
	}
	if logged[0].ProductID != martillo.ID || logged[0].Kind != models.MovementEntry || logged[0].Delta != 5 {
		t.Errorf("movement = %+v, want entry/+5", logged[0])
	}
}

func TestCreateSupplierAndAccountingRecordSetCreatedAt(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/suppliers", tokenFor(t, auth.RoleBodeguero), map[string]any{
		"name": "Ferretería Mayorista Ltda.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create supplier = %d: %s", rec.Code, rec.Body.String())
	}
	supplier := decodeBody[models.Supplier](t, rec)
	if supplier.CreatedAt == "" {
		t.Error("supplier created with empty CreatedAt")
	} else if _, err := time.Parse(time.RFC3339, supplier.CreatedAt); err != nil {
		t.Errorf("supplier CreatedAt %q is not RFC3339: %v", supplier.CreatedAt, err)
	}

	rec = env.do(t, http.MethodPost, "/accounting", tokenFor(t, auth.RoleContador), map[string]any{
		"description": "Compra de stock", "amount": 150000.0, "record_type": "expense",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create accounting record = %d: %s", rec.Code, rec.Body.String())
	}
	record := decodeBody[models.AccountingRecord](t, rec)
	if record.CreatedAt == "" {
		t.Error("accounting record created with empty CreatedAt")
	} else if _, err := time.Parse(time.RFC3339, record.CreatedAt); err != nil {
		t.Errorf("accounting record CreatedAt %q is not RFC3339: %v", record.CreatedAt, err)
	}
}

func TestMovementListingOrderAndExportCompleteness(t *testing.T) {
	env := newTestEnv(t)
	martillo := env.seedProduct(t, "Martillo", 5.0, 1000, 1)
	token := tokenFor(t, auth.RoleBodeguero)

	// Well past one page of history.
	for i := 1; i <= 120; i++ {
		if err := env.movements.Log(martillo.ID, models.MovementEntry, i); err != nil {
			t.Fatalf("logging movement %d: %v", i, err)
		}
	}

	// Unfiltered listing returns everything, newest first.
	rec := env.do(t, http.MethodGet, "/products/1/movements", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list movements = %d", rec.Code)
	}
	listed := decodeBody[handlers.MovementsSearchResult](t, rec)
	if listed.Meta.TotalCount != 120 {
		t.Errorf("total = %d, want 120", listed.Meta.TotalCount)
	}
	if len(listed.Data) != 120 {
		t.Errorf("listed %d movements, want all 120", len(listed.Data))
	}
	if listed.Data[0].Delta != 120 || listed.Data[len(listed.Data)-1].Delta != 1 {
		t.Errorf("ordering = first delta %d, last delta %d, want newest first",
			listed.Data[0].Delta, listed.Data[len(listed.Data)-1].Delta)
	}

	// Pagination still applies when asked for.
	rec = env.do(t, http.MethodGet, "/products/1/movements?limit=10&offset=5", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("paged movements = %d", rec.Code)
	}
	page := decodeBody[handlers.MovementsSearchResult](t, rec)
	if len(page.Data) != 10 || page.Data[0].Delta != 115 {
		t.Errorf("page = %d rows starting at delta %d, want 10 rows from 115",
			len(page.Data), page.Data[0].Delta)
	}

	// The export contains every ledger row, not a truncated page.
	rec = env.do(t, http.MethodGet, "/products/1/movements/export?format=json", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d", rec.Code)
	}
	exported := decodeBody[[]models.Movement](t, rec)
	if len(exported) != 120 {
		t.Errorf("exported %d movements, want all 120", len(exported))
	}
}

func TestProductResponseStockStates(t *testing.T) {
	env := newTestEnv(t)
	// At minimum, above minimum within twice, and comfortably stocked.
	env.seedProduct(t, "Crítico", 1.0, 2, 2)
	env.seedProduct(t, "Bajo", 1.0, 3, 2)
	env.seedProduct(t, "Normal", 1.0, 50, 2)
	token := tokenFor(t, auth.RoleGerente)

	rec := env.do(t, http.MethodGet, "/products", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list products = %d", rec.Code)
	}
	products := decodeBody[[]handlers.ProductResponse](t, rec)
	if len(products) != 3 {
		t.Fatalf("listed %d products, want 3", len(products))
	}

	want := map[string][2]bool{ // name -> low, critical
		"Crítico": {false, true},
		"Bajo":    {true, false},
		"Normal":  {false, false},
	}
	for _, p := range products {
		w, ok := want[p.Name]
		if !ok {
			t.Fatalf("unexpected product %q", p.Name)
		}
		if p.LowStock != w[0] || p.CriticalStock != w[1] {
			t.Errorf("%s: low=%v critical=%v, want low=%v critical=%v",
				p.Name, p.LowStock, p.CriticalStock, w[0], w[1])
		}
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register", "", map[string]any{
		"username": "lucho", "password": "s3creto", "role": "gerente",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register = %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/register", "", map[string]any{
		"username": "lucho", "password": "otro",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register = %d, want 409", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/login", "", map[string]any{
		"username": "lucho", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password login = %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/login", "", map[string]any{
		"username": "lucho", "password": "s3creto",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeBody[map[string]string](t, rec)
	if result["token"] == "" || result["refresh_token"] == "" {
		t.Errorf("login result missing tokens: %v", result)
	}

	// The access token works against a gated route.
	if rec := env.do(t, http.MethodGet, "/logs", "Bearer "+result["token"], nil); rec.Code != http.StatusOK {
		t.Errorf("logs with fresh token = %d, want 200", rec.Code)
	}

	// The refresh token is redeemable exactly once.
	rec = env.do(t, http.MethodPost, "/refresh", "", map[string]any{"refresh_token": result["refresh_token"]})
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh = %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/refresh", "", map[string]any{"refresh_token": result["refresh_token"]})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("second refresh = %d, want 401", rec.Code)
	}
}

func TestRegisterRoleAssignment(t *testing.T) {
	env := newTestEnv(t)

	// First account bootstraps as gerente.
	rec := env.do(t, http.MethodPost, "/register", "", map[string]any{
		"username": "dueño", "password": "pw", "role": "gerente",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("bootstrap register = %d: %s", rec.Code, rec.Body.String())
	}

	// Afterwards only a gerente may assign non-default roles.
	rec = env.do(t, http.MethodPost, "/register", "", map[string]any{
		"username": "intruso", "password": "pw", "role": "gerente",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("anonymous gerente register = %d, want 403", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/register", tokenFor(t, auth.RoleGerente), map[string]any{
		"username": "conta", "password": "pw", "role": "contador",
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("gerente assigning contador = %d, want 201", rec.Code)
	}

	// The default cajero role needs no authorization.
	rec = env.do(t, http.MethodPost, "/register", "", map[string]any{
		"username": "caja1", "password": "pw",
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("default-role register = %d, want 201", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/users", tokenFor(t, auth.RoleGerente), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list users = %d", rec.Code)
	}
	if users := decodeBody[[]models.User](t, rec); len(users) != 3 {
		t.Errorf("users listed = %d, want 3", len(users))
	}
	if rec := env.do(t, http.MethodGet, "/users", tokenFor(t, auth.RoleCajero), nil); rec.Code != http.StatusForbidden {
		t.Errorf("users as cajero = %d, want 403", rec.Code)
	}
}

func TestDashboardSummary(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Crítico", 1.0, 1, 5)
	env.seedProduct(t, "Normal", 1.0, 100, 5)
	token := tokenFor(t, auth.RoleGerente)

	martillo := env.seedProduct(t, "Martillo", 10.0, 20, 1)
	rec := env.do(t, http.MethodPost, "/sales", tokenFor(t, auth.RoleCajero), map[string]any{
		"customer_name": "Juan",
		"document_type": "boleta",
		"items":         []map[string]int{{"product_id": martillo.ID, "quantity": 2}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("post sale = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/dashboard", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard = %d: %s", rec.Code, rec.Body.String())
	}
	summary := decodeBody[handlers.DashboardSummary](t, rec)
	if summary.ProductCount != 3 {
		t.Errorf("product count = %d, want 3", summary.ProductCount)
	}
	if summary.MonthlyRevenue != 20.0 {
		t.Errorf("monthly revenue = %v, want 20.0", summary.MonthlyRevenue)
	}
	if summary.Stock.Critical != 1 {
		t.Errorf("critical products = %d, want 1", summary.Stock.Critical)
	}
	if len(summary.SalesByDay) != 7 {
		t.Errorf("sales series length = %d, want 7", len(summary.SalesByDay))
	}
}
