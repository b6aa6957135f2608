package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// movimientos: o se confirman todas las escrituras del callback o ninguna.
// Los fallos transitorios del almacén (serialización, deadlock) se reintentan
// un número acotado de veces re-ejecutando el callback desde su lectura.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		assemblyRepo repository.AssemblyRepository,
	) error) error
}
