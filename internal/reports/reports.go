// Package reports computes dashboard aggregates as pure functions over
// loaded snapshots. Data volumes are small, so nothing here is memoized.
package reports

import (
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

// DailySales is one day's bucket in the sales-by-day series.
type DailySales struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// StockSummary buckets products by stock state.
type StockSummary struct {
	Normal   int `json:"normal"`
	Low      int `json:"low"`
	Critical int `json:"critical"`
}

// SalesByDay groups sales into the last `days` calendar days ending at now,
// oldest bucket first. Sales outside the window are ignored.
func SalesByDay(sales []models.Sale, now time.Time, days int) []DailySales {
	buckets := make([]DailySales, 0, days)
	index := make(map[string]int, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		index[date] = len(buckets)
		buckets = append(buckets, DailySales{Date: date})
	}

	for _, sale := range sales {
		createdAt, err := time.Parse(time.RFC3339, sale.CreatedAt)
		if err != nil {
			continue
		}
		if i, ok := index[createdAt.Format("2006-01-02")]; ok {
			buckets[i].Count++
			buckets[i].Amount += sale.Total
		}
	}
	return buckets
}

// MonthlyRevenue sums the totals of sales created in the calendar month of now.
func MonthlyRevenue(sales []models.Sale, now time.Time) float64 {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var revenue float64
	for _, sale := range sales {
		createdAt, err := time.Parse(time.RFC3339, sale.CreatedAt)
		if err != nil {
			continue
		}
		if !createdAt.Before(monthStart) && !createdAt.After(now) {
			revenue += sale.Total
		}
	}
	return revenue
}

// StockBreakdown buckets every product as normal, low, or critical.
func StockBreakdown(products []models.Product) StockSummary {
	var s StockSummary
	for _, p := range products {
		switch {
		case p.CriticalStock():
			s.Critical++
		case p.LowStock():
			s.Low++
		default:
			s.Normal++
		}
	}
	return s
}

// LowStockProducts returns the products at or below their minimum stock.
func LowStockProducts(products []models.Product) []models.Product {
	var low []models.Product
	for _, p := range products {
		if p.CriticalStock() {
			low = append(low, p)
		}
	}
	return low
}
