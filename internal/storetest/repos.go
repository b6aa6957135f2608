package storetest

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ── ProductRepository ────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.products {
		if other.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Stock = stored.Stock // el stock solo lo escribe UpdateStock
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, limit, offset), nil
}

func (r *productRepo) CountByCategory(category string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.products {
		if p.Category == category {
			n++
		}
	}
	return n, nil
}

func (r *productRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

// ── CategoryRepository ───────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.Name]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	r.s.categories[c.Name] = &cp
	return nil
}

func (r *categoryRepo) GetByName(name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[name]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *categoryRepo) List() ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Category
	for _, c := range r.s.categories {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *categoryRepo) Delete(name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, name)
	return nil
}

// ── MovementRepository ───────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movementCreates++
	if r.s.FailMovementCreate > 0 && r.s.movementCreates == r.s.FailMovementCreate {
		return r.s.FailWith
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	type indexed struct {
		m   *entity.Movement
		seq int
	}
	var matched []indexed
	for i, m := range r.s.movements {
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.From != nil && m.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Date.After(*filter.To) {
			continue
		}
		matched = append(matched, indexed{m, i})
	}
	// Recientes primero; a fecha igual, el insertado más tarde va primero
	// (equivalente al desempate por id del repo real).
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].m.Date.Equal(matched[j].m.Date) {
			return matched[i].m.Date.After(matched[j].m.Date)
		}
		return matched[i].seq > matched[j].seq
	})

	var list []*entity.Movement
	for _, x := range matched {
		cp := *x.m
		list = append(list, &cp)
	}
	return paginate(list, filter.Limit, filter.Offset), nil
}

func (r *movementRepo) CountByProduct(productID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *movementRepo) DeleteByProduct(productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

// ── AssemblyRepository ───────────────────────────────────────────────────────

type assemblyRepo struct{ s *Store }

func (r *assemblyRepo) Create(a *entity.Assembly) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	cp.Components = append([]entity.AssemblyComponent(nil), a.Components...)
	r.s.assemblies[a.ID] = &cp
	return nil
}

func (r *assemblyRepo) GetByID(id string) (*entity.Assembly, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.assemblies[id]; ok {
		cp := *a
		cp.Components = append([]entity.AssemblyComponent(nil), a.Components...)
		return &cp, nil
	}
	return nil, nil
}

func (r *assemblyRepo) List() ([]*entity.Assembly, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Assembly
	for _, a := range r.s.assemblies {
		cp := *a
		cp.Components = append([]entity.AssemblyComponent(nil), a.Components...)
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *assemblyRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.assemblies, id)
	return nil
}

func (r *assemblyRepo) CountByProduct(productID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, a := range r.s.assemblies {
		if referencesProduct(a, productID) {
			n++
		}
	}
	return n, nil
}

func (r *assemblyRepo) DeleteByProduct(productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.assemblies {
		if referencesProduct(a, productID) {
			delete(r.s.assemblies, id)
		}
	}
	return nil
}

func referencesProduct(a *entity.Assembly, productID string) bool {
	if a.ProductID == productID {
		return true
	}
	for _, c := range a.Components {
		if c.ComponentID == productID {
			return true
		}
	}
	return false
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
