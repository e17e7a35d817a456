package repo

import "github.com/donlucho/ferreteria-api/internal/models"

type SupplierRepository interface {
	Create(supplier models.Supplier) (models.Supplier, error)
	GetAll() ([]models.Supplier, error)
	GetByID(id int) (models.Supplier, error)
	Update(supplier models.Supplier) (models.Supplier, error)
	Delete(id int) error
}
