package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AssemblyRepository = (*AssemblyRepo)(nil)

// AssemblyRepo implementación de AssemblyRepository sobre PostgreSQL
// (usable con pool o tx).
type AssemblyRepo struct {
	q Querier
}

// NewAssemblyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssemblyRepository(q Querier) *AssemblyRepo {
	return &AssemblyRepo{q: q}
}

// Create inserta la cabecera y las líneas de componentes. Para que sean
// atómicos, el Querier debe ser una tx (ver TxRunner); con pool las
// inserciones quedarían sueltas.
func (r *AssemblyRepo) Create(assembly *entity.Assembly) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO assemblies (id, name, product_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		assembly.ID, assembly.Name, assembly.ProductID, assembly.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assembly: %w", err)
	}
	for i, c := range assembly.Components {
		_, err := r.q.Exec(ctx, `
			INSERT INTO assembly_components (assembly_id, position, component_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			assembly.ID, i, c.ComponentID, c.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert assembly component: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una receta con sus componentes en orden de definición.
// (nil, nil) si no existe.
func (r *AssemblyRepo) GetByID(id string) (*entity.Assembly, error) {
	ctx := context.Background()
	var a entity.Assembly
	err := r.q.QueryRow(ctx, `
		SELECT id, name, product_id, created_at
		FROM assemblies WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.ProductID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assembly: %w", err)
	}

	components, err := r.componentsOf(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Components = components
	return &a, nil
}

// List lista todas las recetas con componentes, ordenadas por nombre.
func (r *AssemblyRepo) List() ([]*entity.Assembly, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT id, name, product_id, created_at
		FROM assemblies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list assemblies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Assembly
	for rows.Next() {
		var a entity.Assembly
		if err := rows.Scan(&a.ID, &a.Name, &a.ProductID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assembly: %w", err)
		}
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, a := range list {
		components, err := r.componentsOf(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		a.Components = components
	}
	return list, nil
}

func (r *AssemblyRepo) componentsOf(ctx context.Context, assemblyID string) ([]entity.AssemblyComponent, error) {
	rows, err := r.q.Query(ctx, `
		SELECT component_id, quantity
		FROM assembly_components WHERE assembly_id = $1 ORDER BY position`, assemblyID)
	if err != nil {
		return nil, fmt.Errorf("list assembly components: %w", err)
	}
	defer rows.Close()
	var components []entity.AssemblyComponent
	for rows.Next() {
		var c entity.AssemblyComponent
		if err := rows.Scan(&c.ComponentID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan assembly component: %w", err)
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

// Delete elimina una receta; las líneas caen por ON DELETE CASCADE.
func (r *AssemblyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM assemblies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assembly: %w", err)
	}
	return nil
}

// CountByProduct cuenta recetas que usan al producto como salida o componente.
func (r *AssemblyRepo) CountByProduct(productID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(DISTINCT a.id)
		FROM assemblies a
		LEFT JOIN assembly_components ac ON ac.assembly_id = a.id
		WHERE a.product_id = $1 OR ac.component_id = $1`, productID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count assemblies by product: %w", err)
	}
	return n, nil
}

// DeleteByProduct elimina las recetas que referencian al producto (salida o
// componente). Usado por la política de borrado en cascada.
func (r *AssemblyRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `
		DELETE FROM assemblies a
		WHERE a.product_id = $1
		   OR EXISTS (
			SELECT 1 FROM assembly_components ac
			WHERE ac.assembly_id = a.id AND ac.component_id = $1
		   )`, productID)
	if err != nil {
		return fmt.Errorf("delete assemblies by product: %w", err)
	}
	return nil
}
