package repo

import "github.com/donlucho/ferreteria-api/internal/models"

// ActionLogRepository is the append-only audit trail. Entries are never
// updated or deleted.
type ActionLogRepository interface {
	Log(entry models.ActionLog) error
	GetAll() ([]models.ActionLog, error)
}
