package repo

import (
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

type InMemoryMovementRepository struct {
	movements []models.Movement
}

func NewInMemoryMovementRepository() *InMemoryMovementRepository {
	return &InMemoryMovementRepository{
		movements: []models.Movement{},
	}
}

func (r *InMemoryMovementRepository) Log(productID int, kind string, delta int) error {
	movement := models.Movement{
		ID:        len(r.movements) + 1,
		ProductID: productID,
		Kind:      kind,
		Delta:     delta,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	r.movements = append(r.movements, movement)
	return nil
}

func (r *InMemoryMovementRepository) GetByProductID(productID int, mf MovementFilter) ([]models.Movement, int, error) {
	// Newest first, matching the Postgres ordering.
	var filtered []models.Movement
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if m.ProductID != productID {
			continue
		}
		if (mf.Since != nil && m.CreatedAt < mf.Since.UTC().Format(time.RFC3339)) ||
			(mf.Until != nil && m.CreatedAt > mf.Until.UTC().Format(time.RFC3339)) {
			continue
		}
		filtered = append(filtered, m)
	}

	start := 0
	if mf.Offset != nil {
		start = clamp(*mf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if mf.Limit != nil && *mf.Limit >= 0 {
		end = clamp(start+*mf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

// All returns every logged movement. Test helper.
func (r *InMemoryMovementRepository) All() []models.Movement {
	out := make([]models.Movement, len(r.movements))
	copy(out, r.movements)
	return out
}

// Clear removes all movements. Test helper.
func (r *InMemoryMovementRepository) Clear() {
	r.movements = []models.Movement{}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
