package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementFilter acota un listado de movimientos. Type vacío = todos.
type MovementFilter struct {
	Type      string
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
// El libro es append-only: no hay Update, y Delete existe únicamente para la
// política de borrado en cascada del catálogo.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// List devuelve movimientos del más reciente al más antiguo (date DESC,
	// id DESC como desempate para que el orden sea total y repetible).
	List(filter MovementFilter) ([]*entity.Movement, error)
	CountByProduct(productID string) (int, error)
	DeleteByProduct(productID string) error
}
