package repo

import (
	"strings"

	"github.com/donlucho/ferreteria-api/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository,
// used by tests.
type InMemoryProductRepository struct {
	products []models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

func (r *InMemoryProductRepository) Create(p models.Product) (models.Product, error) {
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Update(p models.Product) (models.Product, error) {
	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(id int) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Search(term string) ([]models.Product, error) {
	term = strings.ToLower(term)
	var matched []models.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.SKU), term) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *InMemoryProductRepository) AdjustStock(productID, delta int) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == productID {
			if p.Stock+delta < 0 {
				return models.Product{}, ErrInsufficientStock
			}
			r.products[i].Stock += delta
			return r.products[i], nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Clear removes all products. Test helper.
func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
	r.nextID = 1
}
