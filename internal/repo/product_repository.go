package repo

import "github.com/donlucho/ferreteria-api/internal/models"

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	// Search matches the term against name and SKU, case-insensitively.
	Search(term string) ([]models.Product, error)
	// AdjustStock applies delta as a single conditional update that refuses
	// to take stock below zero, returning ErrInsufficientStock in that case.
	AdjustStock(productID, delta int) (models.Product, error)
}
