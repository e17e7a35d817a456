package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/donlucho/ferreteria-api/internal/reports"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardSummary is the aggregate payload behind the main screen.
type DashboardSummary struct {
	ProductCount   int                  `json:"product_count"`
	UserCount      int                  `json:"user_count"`
	MonthlyRevenue float64              `json:"monthly_revenue"`
	SalesByDay     []reports.DailySales `json:"sales_by_day"`
	Stock          reports.StockSummary `json:"stock"`
	LowStockCount  int                  `json:"low_stock_count"`
	UnreadAlerts   int                  `json:"unread_alerts"`
}

// invalidateDashboard drops the cached summary after a mutation so the next
// dashboard read recomputes from fresh data.
func invalidateDashboard() {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(dashboardCacheKey); err != nil {
		log.Printf("dashboard cache invalidation failed: %v", err)
	}
}

// GetDashboardHandler godoc
// @Summary Dashboard aggregates
// @Description Returns counts, monthly revenue, a 7-day sales series, and stock buckets. Cached briefly.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardSummary
// @Router /dashboard [get]
func GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	if cache != nil {
		var cached DashboardSummary
		hit, err := cache.GetJSON(dashboardCacheKey, &cached)
		if err != nil {
			log.Printf("dashboard cache read failed: %v", err)
		}
		if hit {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	products, err := productRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "could not fetch products")
		return
	}
	allSales, err := saleRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "could not fetch sales")
		return
	}
	userCount, err := userRepo.Count()
	if err != nil {
		writeRepoError(w, err, "could not count users")
		return
	}

	unread := 0
	if alerts, err := alertRepo.GetAll(); err == nil {
		for _, a := range alerts {
			if !a.Read {
				unread++
			}
		}
	}

	now := time.Now().UTC()
	summary := DashboardSummary{
		ProductCount:   len(products),
		UserCount:      userCount,
		MonthlyRevenue: reports.MonthlyRevenue(allSales, now),
		SalesByDay:     reports.SalesByDay(allSales, now, 7),
		Stock:          reports.StockBreakdown(products),
		LowStockCount:  len(reports.LowStockProducts(products)),
		UnreadAlerts:   unread,
	}

	if cache != nil {
		if err := cache.SetJSON(dashboardCacheKey, summary, dashboardCacheTTL); err != nil {
			log.Printf("dashboard cache write failed: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, summary)
}
