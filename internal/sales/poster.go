// Package sales implements sale posting: document numbering, stock
// validation, sale recording, and stock decrement.
package sales

import (
	"errors"
	"fmt"
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
	"github.com/donlucho/ferreteria-api/internal/repo"
)

// Poster runs the posting sequence for a sale: allocate a document number,
// validate stock against a catalog snapshot, record the sale, then decrement
// stock line by line. Each step runs only after the previous one succeeded.
type Poster struct {
	products  repo.ProductRepository
	sales     repo.SaleRepository
	movements repo.MovementRepository
	alerts    repo.AlertRepository
	now       func() time.Time
}

func NewPoster(products repo.ProductRepository, sales repo.SaleRepository, movements repo.MovementRepository, alerts repo.AlertRepository) *Poster {
	return &Poster{
		products:  products,
		sales:     sales,
		movements: movements,
		alerts:    alerts,
		now:       time.Now,
	}
}

// Post records a sale and applies its inventory effects.
//
// On a validation failure nothing is written. On a recording failure nothing
// is written and stock is untouched. After the sale row exists, each line's
// decrement is an independent conditional update; if one is refused the sale
// row stays and a *PartialAdjustmentError describes exactly which lines were
// applied. Stock never goes negative: the decrement carries its own
// stock >= quantity condition at the storage layer.
func (p *Poster) Post(customerName, documentType string, items []models.SaleItem, userID int) (models.Sale, error) {
	catalog, err := p.products.GetAll()
	if err != nil {
		return models.Sale{}, fmt.Errorf("loading catalog: %w", err)
	}

	if err := ValidateItems(items, catalog); err != nil {
		return models.Sale{}, err
	}

	lastNumber := ""
	last, err := p.sales.GetLatest()
	switch {
	case err == nil:
		lastNumber = last.SaleNumber
	case errors.Is(err, repo.ErrSaleNotFound):
		// first sale ever; sequence starts at 001
	default:
		return models.Sale{}, fmt.Errorf("reading last sale: %w", err)
	}

	now := p.now()
	sale := models.Sale{
		SaleNumber:   NextDocumentNumber(now, lastNumber),
		CustomerName: customerName,
		DocumentType: documentType,
		Items:        items,
		Total:        Total(items, catalog),
		UserID:       userID,
		CreatedAt:    now.UTC().Format(time.RFC3339),
	}

	created, err := p.sales.Create(sale)
	if err != nil {
		return models.Sale{}, fmt.Errorf("recording sale: %w", err)
	}

	// The sale row is durable from here on. Decrement stock per line; a
	// refused line leaves earlier lines applied and later lines untouched.
	applied := make([]models.SaleItem, 0, len(items))
	for i, item := range items {
		product, err := p.products.AdjustStock(item.ProductID, -item.Quantity)
		if err != nil {
			return created, &PartialAdjustmentError{
				SaleNumber: created.SaleNumber,
				Applied:    applied,
				Failed:     item,
				Remaining:  items[i+1:],
				Cause:      err,
			}
		}
		applied = append(applied, item)

		_ = p.movements.Log(item.ProductID, models.MovementSale, -item.Quantity)
		p.maybeRaiseLowStockAlert(product)
	}

	return created, nil
}

// EditMetadata updates a posted sale's customer name and document type. The
// total is recomputed from the frozen items against the current catalog;
// stock is never touched.
func (p *Poster) EditMetadata(saleID int, customerName, documentType string) (models.Sale, error) {
	sale, err := p.sales.GetByID(saleID)
	if err != nil {
		return models.Sale{}, err
	}

	catalog, err := p.products.GetAll()
	if err != nil {
		return models.Sale{}, fmt.Errorf("loading catalog: %w", err)
	}

	return p.sales.UpdateMetadata(saleID, customerName, documentType, Total(sale.Items, catalog))
}

// Delete removes a posted sale. Deletion is an administrative correction: it
// does not restore the decremented stock and the document number is never
// reused.
func (p *Poster) Delete(saleID int) error {
	return p.sales.Delete(saleID)
}

func (p *Poster) maybeRaiseLowStockAlert(product models.Product) {
	if p.alerts == nil || !product.CriticalStock() {
		return
	}
	// Best effort; a failed alert write must not fail the sale.
	_, _ = p.alerts.Create(models.Alert{
		AlertType: models.AlertLowStock,
		Title:     "Stock bajo",
		Message: fmt.Sprintf("%s quedó con %d unidades (mínimo %d)",
			product.Name, product.Stock, product.MinStock),
		CreatedAt: p.now().UTC().Format(time.RFC3339),
	})
}
