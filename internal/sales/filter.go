package sales

import (
	"strings"
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

// Filter narrows a sales list. Zero values mean "no restriction".
type Filter struct {
	Customer  string     // case-insensitive substring of customer name
	ProductID int        // sale must contain this product
	From      *time.Time // inclusive lower bound on creation time
	To        *time.Time // inclusive upper bound on creation time
}

// Apply returns the sales matching every set criterion, preserving order.
// It is a pure function over the loaded snapshot.
func (f Filter) Apply(sales []models.Sale) []models.Sale {
	var matched []models.Sale
	for _, sale := range sales {
		if f.Customer != "" &&
			!strings.Contains(strings.ToLower(sale.CustomerName), strings.ToLower(f.Customer)) {
			continue
		}
		if f.ProductID != 0 && !containsProduct(sale.Items, f.ProductID) {
			continue
		}
		if f.From != nil || f.To != nil {
			createdAt, err := time.Parse(time.RFC3339, sale.CreatedAt)
			if err != nil {
				continue
			}
			if f.From != nil && createdAt.Before(*f.From) {
				continue
			}
			if f.To != nil && createdAt.After(*f.To) {
				continue
			}
		}
		matched = append(matched, sale)
	}
	return matched
}

func containsProduct(items []models.SaleItem, productID int) bool {
	for _, item := range items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
