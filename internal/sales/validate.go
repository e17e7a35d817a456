package sales

import "github.com/donlucho/ferreteria-api/internal/models"

// ValidateItems checks every line of a proposed sale against a catalog
// snapshot: the product must exist, the quantity must be positive, and stock
// must cover the quantity. The snapshot is unlocked, so a pass here is
// advisory; the conditional decrement at apply time is the hard guarantee.
func ValidateItems(items []models.SaleItem, catalog []models.Product) error {
	if len(items) == 0 {
		return ErrNoItems
	}

	byID := make(map[int]models.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return &UnknownProductError{ProductID: item.ProductID}
		}
		if item.Quantity <= 0 {
			return &InvalidQuantityError{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		if product.Stock < item.Quantity {
			return &InsufficientStockError{
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.Stock,
			}
		}
	}
	return nil
}

// Total computes the sale total from the same catalog snapshot used for
// validation, freezing prices at posting time. Unknown products contribute
// nothing; ValidateItems rejects them before this runs.
func Total(items []models.SaleItem, catalog []models.Product) float64 {
	byID := make(map[int]models.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	var total float64
	for _, item := range items {
		if product, ok := byID[item.ProductID]; ok {
			total += product.Price * float64(item.Quantity)
		}
	}
	return total
}
