package repo

import "github.com/donlucho/ferreteria-api/internal/models"

// InMemorySaleRepository is an in-memory implementation of SaleRepository,
// used by tests. Sales are kept in insertion order, which doubles as
// creation order.
type InMemorySaleRepository struct {
	sales  []models.Sale
	nextID int
}

func NewInMemorySaleRepository() *InMemorySaleRepository {
	return &InMemorySaleRepository{
		sales:  []models.Sale{},
		nextID: 1,
	}
}

func (r *InMemorySaleRepository) Create(s models.Sale) (models.Sale, error) {
	for _, existing := range r.sales {
		if existing.SaleNumber == s.SaleNumber {
			return models.Sale{}, ErrDuplicatedValueUnique
		}
	}
	s.ID = r.nextID
	r.nextID++
	items := make([]models.SaleItem, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	r.sales = append(r.sales, s)
	return s, nil
}

func (r *InMemorySaleRepository) GetAll() ([]models.Sale, error) {
	out := make([]models.Sale, len(r.sales))
	copy(out, r.sales)
	return out, nil
}

func (r *InMemorySaleRepository) GetByID(id int) (models.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) GetLatest() (models.Sale, error) {
	if len(r.sales) == 0 {
		return models.Sale{}, ErrSaleNotFound
	}
	return r.sales[len(r.sales)-1], nil
}

func (r *InMemorySaleRepository) UpdateMetadata(id int, customerName, documentType string, total float64) (models.Sale, error) {
	for i, s := range r.sales {
		if s.ID == id {
			r.sales[i].CustomerName = customerName
			r.sales[i].DocumentType = documentType
			r.sales[i].Total = total
			return r.sales[i], nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) Delete(id int) error {
	for i, s := range r.sales {
		if s.ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return ErrSaleNotFound
}

// Clear removes all sales. Test helper.
func (r *InMemorySaleRepository) Clear() {
	r.sales = []models.Sale{}
	r.nextID = 1
}
