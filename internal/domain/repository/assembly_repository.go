package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// AssemblyRepository define el puerto de persistencia para recetas de ensamble.
// Create inserta cabecera y componentes; para que sean atómicos debe invocarse
// con un repositorio atado a una transacción (ver ledger.TxRunner).
type AssemblyRepository interface {
	Create(assembly *entity.Assembly) error
	GetByID(id string) (*entity.Assembly, error)
	List() ([]*entity.Assembly, error)
	Delete(id string) error
	// CountByProduct cuenta recetas que referencian al producto como salida o
	// como componente (para la política de borrado "block").
	CountByProduct(productID string) (int, error)
	// DeleteByProduct elimina las recetas que referencian al producto, con sus
	// componentes (política "cascade").
	DeleteByProduct(productID string) error
}
