package repo

import "github.com/donlucho/ferreteria-api/internal/models"

type InMemoryAccountingRepository struct {
	records []models.AccountingRecord
	nextID  int
}

func NewInMemoryAccountingRepository() *InMemoryAccountingRepository {
	return &InMemoryAccountingRepository{
		records: []models.AccountingRecord{},
		nextID:  1,
	}
}

func (r *InMemoryAccountingRepository) Create(rec models.AccountingRecord) (models.AccountingRecord, error) {
	rec.ID = r.nextID
	r.nextID++
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *InMemoryAccountingRepository) GetAll() ([]models.AccountingRecord, error) {
	out := make([]models.AccountingRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *InMemoryAccountingRepository) Delete(id int) error {
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return ErrRecordNotFound
}

// Clear removes all records. Test helper.
func (r *InMemoryAccountingRepository) Clear() {
	r.records = []models.AccountingRecord{}
	r.nextID = 1
}
