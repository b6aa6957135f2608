package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// StockPolicy decide qué pasa cuando una salida dejaría el stock negativo.
type StockPolicy string

const (
	// StockPolicyPermissive permite stock negativo y solo deja constancia en el
	// log (comportamiento por defecto).
	StockPolicyPermissive StockPolicy = "permissive"
	// StockPolicyStrict rechaza la salida con ErrInsufficientStock.
	StockPolicyStrict StockPolicy = "strict"
)

// ParseStockPolicy valida el valor de configuración STOCK_POLICY.
func ParseStockPolicy(s string) (StockPolicy, error) {
	switch StockPolicy(s) {
	case StockPolicyPermissive, StockPolicyStrict:
		return StockPolicy(s), nil
	case "":
		return StockPolicyPermissive, nil
	}
	return "", fmt.Errorf("política de stock desconocida %q: %w", s, domain.ErrInvalidInput)
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ProductID string
	Type      string // IN u OUT
	Quantity  decimal.Decimal
	Notes     string
}

// Validate aplica las reglas locales: tipo conocido, cantidad positiva y
// referencia de producto presente. Son errores permanentes, nunca se reintentan.
func (in MovementInput) Validate() error {
	if in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Engine es la primitiva de mutación de stock: el único escritor de
// Product.Stock en todo el sistema. Tanto los movimientos manuales como la
// producción de ensambles pasan por aquí, así que cada cambio de stock queda
// con su entrada en el libro.
type Engine struct {
	policy StockPolicy
	log    *logger.Logger
}

// NewEngine construye el motor con la política de stock configurada.
func NewEngine(policy StockPolicy, log *logger.Logger) *Engine {
	return &Engine{policy: policy, log: log}
}

// Policy devuelve la política de stock activa.
func (e *Engine) Policy() StockPolicy { return e.policy }

// Apply ejecuta un movimiento dentro de una transacción ya abierta: bloquea la
// fila del producto (SELECT FOR UPDATE), recalcula el stock, inserta el
// movimiento inmutable con fecha del servidor y escribe el stock nuevo.
// Las dos escrituras quedan en la misma tx del llamador: o ambas o ninguna.
func (e *Engine) Apply(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	in MovementInput,
	now time.Time,
) (*entity.Movement, error) {
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var newStock decimal.Decimal
	switch in.Type {
	case entity.MovementTypeIN:
		newStock = product.Stock.Add(in.Quantity)
	case entity.MovementTypeOUT:
		newStock = product.Stock.Sub(in.Quantity)
		if newStock.IsNegative() {
			if e.policy == StockPolicyStrict {
				return nil, domain.ErrInsufficientStock
			}
			e.log.Warn().
				Str("product_id", product.ID).
				Str("sku", product.SKU).
				Str("stock", newStock.String()).
				Msg("salida deja el stock en negativo")
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	movement := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Date:      now,
		Notes:     in.Notes,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	return movement, nil
}
