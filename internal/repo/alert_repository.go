package repo

import "github.com/donlucho/ferreteria-api/internal/models"

// AlertRepository stores system alerts. Alerts are created when stock drops
// to or below a product's minimum; the UI only reads, marks, and deletes them.
type AlertRepository interface {
	Create(alert models.Alert) (models.Alert, error)
	GetAll() ([]models.Alert, error)
	MarkRead(id int) error
	Delete(id int) error
}
