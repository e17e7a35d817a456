package repo

import "github.com/donlucho/ferreteria-api/internal/models"

type InMemorySupplierRepository struct {
	suppliers []models.Supplier
	nextID    int
}

func NewInMemorySupplierRepository() *InMemorySupplierRepository {
	return &InMemorySupplierRepository{
		suppliers: []models.Supplier{},
		nextID:    1,
	}
}

func (r *InMemorySupplierRepository) Create(s models.Supplier) (models.Supplier, error) {
	s.ID = r.nextID
	r.nextID++
	r.suppliers = append(r.suppliers, s)
	return s, nil
}

func (r *InMemorySupplierRepository) GetAll() ([]models.Supplier, error) {
	out := make([]models.Supplier, len(r.suppliers))
	copy(out, r.suppliers)
	return out, nil
}

func (r *InMemorySupplierRepository) GetByID(id int) (models.Supplier, error) {
	for _, s := range r.suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *InMemorySupplierRepository) Update(s models.Supplier) (models.Supplier, error) {
	for i, existing := range r.suppliers {
		if existing.ID == s.ID {
			r.suppliers[i] = s
			return s, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *InMemorySupplierRepository) Delete(id int) error {
	for i, s := range r.suppliers {
		if s.ID == id {
			r.suppliers = append(r.suppliers[:i], r.suppliers[i+1:]...)
			return nil
		}
	}
	return ErrSupplierNotFound
}

// Clear removes all suppliers. Test helper.
func (r *InMemorySupplierRepository) Clear() {
	r.suppliers = []models.Supplier{}
	r.nextID = 1
}
