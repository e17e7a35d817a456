package repo

import "github.com/donlucho/ferreteria-api/internal/models"

type InMemoryAlertRepository struct {
	alerts []models.Alert
	nextID int
}

func NewInMemoryAlertRepository() *InMemoryAlertRepository {
	return &InMemoryAlertRepository{
		alerts: []models.Alert{},
		nextID: 1,
	}
}

func (r *InMemoryAlertRepository) Create(a models.Alert) (models.Alert, error) {
	a.ID = r.nextID
	r.nextID++
	r.alerts = append(r.alerts, a)
	return a, nil
}

func (r *InMemoryAlertRepository) GetAll() ([]models.Alert, error) {
	out := make([]models.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out, nil
}

func (r *InMemoryAlertRepository) MarkRead(id int) error {
	for i, a := range r.alerts {
		if a.ID == id {
			r.alerts[i].Read = true
			return nil
		}
	}
	return ErrAlertNotFound
}

func (r *InMemoryAlertRepository) Delete(id int) error {
	for i, a := range r.alerts {
		if a.ID == id {
			r.alerts = append(r.alerts[:i], r.alerts[i+1:]...)
			return nil
		}
	}
	return ErrAlertNotFound
}

// Clear removes all alerts. Test helper.
func (r *InMemoryAlertRepository) Clear() {
	r.alerts = []models.Alert{}
	r.nextID = 1
}
