package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

const (
	txMaxAttempts = 3
	txRetryDelay  = 50 * time.Millisecond
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// reintento acotado ante fallos de serialización o deadlock. El callback se
// re-ejecuta completo desde su lectura; los errores permanentes (validación,
// no encontrado) salen sin reintentar.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Si el almacén reporta un conflicto transitorio, reintenta
// hasta txMaxAttempts veces; agotados los intentos devuelve ErrTransient.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	assemblyRepo repository.AssemblyRepository,
) error) error {
	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(txRetryDelay):
		}
	}
	return fmt.Errorf("%w: transacción no confirmada tras %d intentos: %v", domain.ErrTransient, txMaxAttempts, err)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	assemblyRepo repository.AssemblyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	productRepo := NewProductRepository(tx)
	assemblyRepo := NewAssemblyRepository(tx)

	if err := fn(movRepo, productRepo, assemblyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
