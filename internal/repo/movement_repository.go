package repo

import (
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

type MovementFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

type MovementRepository interface {
	Log(productID int, kind string, delta int) error
	GetByProductID(productID int, mf MovementFilter) ([]models.Movement, int, error)
}
