package repo

import "github.com/donlucho/ferreteria-api/internal/models"

type AccountingRepository interface {
	Create(record models.AccountingRecord) (models.AccountingRecord, error)
	GetAll() ([]models.AccountingRecord, error)
	Delete(id int) error
}
