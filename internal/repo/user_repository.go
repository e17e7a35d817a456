package repo

import "github.com/donlucho/ferreteria-api/internal/models"

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	CreateUser(u models.User) (models.User, error)
	GetAll() ([]models.User, error)
	Count() (int, error)
}
