package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/donlucho/ferreteria-api/internal/auth"
	"github.com/donlucho/ferreteria-api/internal/http/handlers"
)

// NewRouter wires every route with its auth and role requirements. Reading
// the product catalog is open to any authenticated role (the sales screen
// needs it); mutations are gated per screen.
func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", handlers.RegisterHandler)
	r.With(RateLimitMiddleware).Post("/login", handlers.LoginHandler)
	r.Post("/refresh", handlers.RefreshHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/search", handlers.SearchProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(RequireScreen(auth.ScreenProducts))
			r.Post("/products", handlers.CreateProductHandler)
			r.Put("/products/{id}", handlers.UpdateProductHandler)
			r.Delete("/products/{id}", handlers.DeleteProductHandler)
			r.Post("/products/import", handlers.ImportProductsHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireScreen(auth.ScreenInventory))
			r.Post("/products/{id}/entries", handlers.StockEntryHandler)
			r.Get("/products/{id}/movements", handlers.GetMovementsHandler)
			r.Get("/products/{id}/movements/export", handlers.ExportMovementsHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireScreen(auth.ScreenSales))
			r.Post("/sales", handlers.CreateSaleHandler)
			r.Get("/sales", handlers.GetSalesHandler)
			r.Get("/sales/export", handlers.ExportSalesHandler)
			r.Put("/sales/{id}", handlers.UpdateSaleHandler)
			r.Delete("/sales/{id}", handlers.DeleteSaleHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireScreen(auth.ScreenSuppliers))
			r.Get("/suppliers", handlers.GetSuppliersHandler)
			r.Post("/suppliers", handlers.CreateSupplierHandler)
			r.Put("/suppliers/{id}", handlers.UpdateSupplierHandler)
			r.Delete("/suppliers/{id}", handlers.DeleteSupplierHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireScreen(auth.ScreenAccounting))
			r.Get("/accounting", handlers.GetAccountingRecordsHandler)
			r.Post("/accounting", handlers.CreateAccountingRecordHandler)
			r.Delete("/accounting/{id}", handlers.DeleteAccountingRecordHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireScreen(auth.ScreenAlerts))
			r.Get("/alerts", handlers.GetAlertsHandler)
			r.Post("/alerts/{id}/read", handlers.MarkAlertReadHandler)
			r.Delete("/alerts/{id}", handlers.DeleteAlertHandler)
		})

		r.With(RequireScreen(auth.ScreenUsers)).Get("/users", handlers.GetUsersHandler)
		r.With(RequireScreen(auth.ScreenLogs)).Get("/logs", handlers.GetActionLogsHandler)
		r.With(RequireScreen(auth.ScreenDashboard)).Get("/dashboard", handlers.GetDashboardHandler)
	})

	return r
}
