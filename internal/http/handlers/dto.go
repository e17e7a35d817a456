package handlers

import "github.com/donlucho/ferreteria-api/internal/models"

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"min_stock"`
	SupplierID  *int    `json:"supplier_id,omitempty"`
}

type ProductResponse struct {
	Id            int     `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	SKU           string  `json:"sku,omitempty"`
	Price         float64 `json:"price"`
	Cost          float64 `json:"cost"`
	Stock         int     `json:"stock"`
	MinStock      int     `json:"min_stock"`
	SupplierID    *int    `json:"supplier_id,omitempty"`
	LowStock      bool    `json:"low_stock,omitempty"`
	CriticalStock bool    `json:"critical_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type SaleRequest struct {
	CustomerName string            `json:"customer_name"`
	DocumentType string            `json:"document_type"`
	Items        []models.SaleItem `json:"items"`
}

type SaleUpdateRequest struct {
	CustomerName string `json:"customer_name"`
	DocumentType string `json:"document_type"`
}

type StockEntryRequest struct {
	Quantity int `json:"quantity"` // must be positive
}

type MovementResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Kind      string `json:"kind"`
	Delta     int    `json:"delta"`
	CreatedAt string `json:"created_at"`
}

type MovementsSearchResult struct {
	Data []MovementResponse `json:"data"`
	Meta Meta               `json:"meta,omitempty"`
}

type SupplierRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type AccountingRecordRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	RecordType  string  `json:"record_type"`
	Category    string  `json:"category,omitempty"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
