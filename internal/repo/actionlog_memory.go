package repo

import (
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

type InMemoryActionLogRepository struct {
	logs []models.ActionLog
}

func NewInMemoryActionLogRepository() *InMemoryActionLogRepository {
	return &InMemoryActionLogRepository{
		logs: []models.ActionLog{},
	}
}

func (r *InMemoryActionLogRepository) Log(entry models.ActionLog) error {
	entry.ID = len(r.logs) + 1
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	r.logs = append(r.logs, entry)
	return nil
}

func (r *InMemoryActionLogRepository) GetAll() ([]models.ActionLog, error) {
	out := make([]models.ActionLog, len(r.logs))
	copy(out, r.logs)
	return out, nil
}

// Clear removes all entries. Test helper.
func (r *InMemoryActionLogRepository) Clear() {
	r.logs = []models.ActionLog{}
}
