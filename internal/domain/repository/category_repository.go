package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Delete(name string) error
}
