package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Marcadores para movimientos cuyo producto fue borrado después (política
// "tolerate"): el lector ve la referencia colgante como caso esperado.
const (
	DeletedProductName = "Producto Eliminado"
	DeletedProductSKU  = "---"
)

// UseCase registra y lista movimientos del libro de inventario.
// El registro es transaccional: inserción del movimiento + escritura del stock
// recalculado bajo bloqueo de fila, vía TxRunner.
type UseCase struct {
	txRunner  TxRunner
	engine    *Engine
	movements repository.MovementRepository
	products  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	engine *Engine,
	movements repository.MovementRepository,
	products repository.ProductRepository,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		engine:    engine,
		movements: movements,
		products:  products,
	}
}

// RegisterMovement valida la entrada y aplica el movimiento en una transacción.
// Si el producto no existe falla con ErrNotFound y no queda fila insertada.
func (uc *UseCase) RegisterMovement(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	var movement *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		_ repository.AssemblyRepository,
	) error {
		m, err := uc.engine.Apply(movRepo, productRepo, in, now)
		if err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := ResolveMovement(uc.products, movement, nil)
	return &out, nil
}

// ListMovements lista movimientos del más reciente al más antiguo, con filtro
// opcional por tipo. Dos llamadas sin escrituras intermedias devuelven la
// misma secuencia (orden total por fecha e id).
func (uc *UseCase) ListMovements(filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	list, err := uc.movements.List(filter)
	if err != nil {
		return nil, err
	}

	cache := make(map[string]*entity.Product, len(list))
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ResolveMovement(uc.products, m, cache))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// ResolveMovement proyecta un movimiento con nombre/SKU del producto resueltos
// vía lectura no bloqueante (getProduct). cache puede ser nil; si no lo es,
// evita repetir lecturas en listados.
func ResolveMovement(
	products repository.ProductRepository,
	m *entity.Movement,
	cache map[string]*entity.Product,
) dto.MovementResponse {
	product, ok := cache[m.ProductID]
	if !ok {
		// Error de lectura o producto borrado: ambos degradan al marcador.
		product, _ = products.GetByID(m.ProductID)
		if cache != nil {
			cache[m.ProductID] = product
		}
	}

	out := dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: DeletedProductName,
		ProductSKU:  DeletedProductSKU,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Date:        m.Date,
		Notes:       m.Notes,
	}
	if product != nil {
		out.ProductName = product.Name
		out.ProductSKU = product.SKU
	}
	return out
}
