// Package storetest provee un almacén en memoria que implementa los puertos
// de repositorio, más un TxRunner con snapshot/rollback. Lo usan los tests de
// los casos de uso para verificar semántica transaccional (todo o nada) sin
// PostgreSQL.
package storetest

import (
	"context"
	"sync"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Store estado compartido de los repositorios fake.
type Store struct {
	mu         sync.Mutex
	products   map[string]*entity.Product
	categories map[string]*entity.Category
	movements  []*entity.Movement
	assemblies map[string]*entity.Assembly

	// FailMovementCreate fuerza el error dado en el próximo Create de
	// movimiento número N (1-based). Para probar rollbacks a mitad de corrida.
	FailMovementCreate int
	FailWith           error
	movementCreates    int
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
		assemblies: make(map[string]*entity.Assembly),
	}
}

// ProductRepo devuelve la vista ProductRepository del almacén.
func (s *Store) ProductRepo() repository.ProductRepository { return &productRepo{s} }

// CategoryRepo devuelve la vista CategoryRepository del almacén.
func (s *Store) CategoryRepo() repository.CategoryRepository { return &categoryRepo{s} }

// MovementRepo devuelve la vista MovementRepository del almacén.
func (s *Store) MovementRepo() repository.MovementRepository { return &movementRepo{s} }

// AssemblyRepo devuelve la vista AssemblyRepository del almacén.
func (s *Store) AssemblyRepo() repository.AssemblyRepository { return &assemblyRepo{s} }

// TxRunner devuelve un runner que toma snapshot del estado antes del callback
// y lo restaura si el callback falla: semántica todo-o-nada observable.
func (s *Store) TxRunner() ledger.TxRunner { return &txRunner{s} }

// MovementCount devuelve cuántos movimientos hay en el libro.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// Product devuelve el producto almacenado (o nil) para aserciones directas.
func (s *Store) Product(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

type snapshot struct {
	products   map[string]*entity.Product
	categories map[string]*entity.Category
	movements  []*entity.Movement
	assemblies map[string]*entity.Assembly
}

func (s *Store) take() snapshot {
	snap := snapshot{
		products:   make(map[string]*entity.Product, len(s.products)),
		categories: make(map[string]*entity.Category, len(s.categories)),
		movements:  make([]*entity.Movement, len(s.movements)),
		assemblies: make(map[string]*entity.Assembly, len(s.assemblies)),
	}
	for k, v := range s.products {
		cp := *v
		snap.products[k] = &cp
	}
	for k, v := range s.categories {
		cp := *v
		snap.categories[k] = &cp
	}
	for i, v := range s.movements {
		cp := *v
		snap.movements[i] = &cp
	}
	for k, v := range s.assemblies {
		cp := *v
		cp.Components = append([]entity.AssemblyComponent(nil), v.Components...)
		snap.assemblies[k] = &cp
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.categories = snap.categories
	s.movements = snap.movements
	s.assemblies = snap.assemblies
}

type txRunner struct{ s *Store }

func (r *txRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	assemblyRepo repository.AssemblyRepository,
) error) error {
	r.s.mu.Lock()
	snap := r.s.take()
	r.s.mu.Unlock()

	err := fn(r.s.MovementRepo(), r.s.ProductRepo(), r.s.AssemblyRepo())
	if err != nil {
		r.s.mu.Lock()
		r.s.restore(snap)
		r.s.mu.Unlock()
		return err
	}
	return nil
}
