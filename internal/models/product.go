package models

// Product represents a catalog item in the store's inventory.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"min_stock"`
	SupplierID  *int    `json:"supplier_id,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// CriticalStock reports whether the product is at or below its minimum.
func (p Product) CriticalStock() bool {
	return p.Stock <= p.MinStock
}

// LowStock reports whether the product is above critical but within twice its minimum.
func (p Product) LowStock() bool {
	return p.Stock > p.MinStock && p.Stock <= p.MinStock*2
}
