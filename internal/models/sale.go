package models

// Document types accepted on a sale.
const (
	DocumentBoleta  = "boleta"
	DocumentFactura = "factura"
	DocumentOtro    = "otro"
)

// SaleItem is one line of a sale: a product and a positive quantity.
type SaleItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Sale is a posted sale. Items and Total are frozen at posting time; only
// CustomerName and DocumentType may change afterwards.
type Sale struct {
	ID           int        `json:"id"`
	SaleNumber   string     `json:"sale_number"`
	CustomerName string     `json:"customer_name"`
	DocumentType string     `json:"document_type"`
	Items        []SaleItem `json:"items"`
	Total        float64    `json:"total"`
	UserID       int        `json:"user_id"`
	CreatedAt    string     `json:"created_at,omitempty"`
}

// ValidDocumentType reports whether dt is one of the accepted document types.
func ValidDocumentType(dt string) bool {
	return dt == DocumentBoleta || dt == DocumentFactura || dt == DocumentOtro
}
