package assembly

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Produce ejecuta una corrida de producción: produce quantity unidades de la
// receta, acreditando el producto de salida (un IN) y debitando cada
// componente escalado por la cantidad (un OUT por línea, en el orden de la
// receta). Toda la corrida va en una sola transacción: si cualquier paso falla
// (por ejemplo un componente borrado después de crear la receta), ningún
// movimiento queda visible. La producción nunca toca el stock directamente;
// cada cambio pasa por el motor del libro, así el rastro es uniforme con los
// movimientos manuales y la política de stock aplica igual.
func (uc *UseCase) Produce(ctx context.Context, assemblyID string, quantity decimal.Decimal) (*dto.ProduceResponse, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	a, err := uc.assemblies.GetByID(assemblyID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var created []*entity.Movement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		_ repository.AssemblyRepository,
	) error {
		created = created[:0] // el callback puede reintentarse completo

		in, err := uc.engine.Apply(movRepo, productRepo, ledger.MovementInput{
			ProductID: a.ProductID,
			Type:      entity.MovementTypeIN,
			Quantity:  quantity,
			Notes:     fmt.Sprintf("Producción de ensamble: %s", a.Name),
		}, now)
		if err != nil {
			return err
		}
		created = append(created, in)

		for _, c := range a.Components {
			out, err := uc.engine.Apply(movRepo, productRepo, ledger.MovementInput{
				ProductID: c.ComponentID,
				Type:      entity.MovementTypeOUT,
				Quantity:  c.Quantity.Mul(quantity),
				Notes:     fmt.Sprintf("Componente para ensamble: %s", a.Name),
			}, now)
			if err != nil {
				return err
			}
			created = append(created, out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache := make(map[string]*entity.Product, len(created))
	movements := make([]dto.MovementResponse, 0, len(created))
	for _, m := range created {
		movements = append(movements, ledger.ResolveMovement(uc.products, m, cache))
	}
	return &dto.ProduceResponse{Movements: movements}, nil
}
