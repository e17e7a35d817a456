package repo

import "github.com/donlucho/ferreteria-api/internal/models"

// SaleRepository defines the interface for sale data operations. Items and
// total are written once at posting time; UpdateMetadata is the only mutation
// allowed afterwards.
type SaleRepository interface {
	Create(sale models.Sale) (models.Sale, error)
	GetAll() ([]models.Sale, error)
	GetByID(id int) (models.Sale, error)
	// GetLatest returns the most recently created sale, or ErrSaleNotFound
	// when no sales exist. The document number allocator reads it.
	GetLatest() (models.Sale, error)
	UpdateMetadata(id int, customerName, documentType string, total float64) (models.Sale, error)
	Delete(id int) error
}
