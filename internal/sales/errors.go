package sales

import (
	"errors"
	"fmt"

	"github.com/donlucho/ferreteria-api/internal/models"
)

// ErrNoItems is returned when a sale is posted without line items.
var ErrNoItems = errors.New("sale must have at least one item")

// UnknownProductError reports a line item referencing a product that is not
// in the catalog snapshot.
type UnknownProductError struct {
	ProductID int
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %d", e.ProductID)
}

// InvalidQuantityError reports a line item with a non-positive quantity.
type InvalidQuantityError struct {
	ProductID int
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %d", e.Quantity, e.ProductID)
}

// InsufficientStockError reports a line item exceeding the available stock of
// a product, identified by name so the message can be shown to the user.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

// PartialAdjustmentError reports that the sale record was written but stock
// decrements stopped partway: items in Applied were decremented, Failed was
// refused, and Remaining were never attempted. The catalog is inconsistent
// with the recorded sale until corrected.
type PartialAdjustmentError struct {
	SaleNumber string
	Applied    []models.SaleItem
	Failed     models.SaleItem
	Remaining  []models.SaleItem
	Cause      error
}

func (e *PartialAdjustmentError) Error() string {
	return fmt.Sprintf("sale %s: stock adjustment stopped at product %d after %d of %d lines: %v",
		e.SaleNumber, e.Failed.ProductID, len(e.Applied), len(e.Applied)+1+len(e.Remaining), e.Cause)
}

func (e *PartialAdjustmentError) Unwrap() error { return e.Cause }
