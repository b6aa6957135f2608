package catalog

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// DeletePolicy decide qué pasa al borrar un producto que todavía es
// referenciado por movimientos o recetas. El origen del dato no resuelve esta
// pregunta (tolera la referencia colgante y muestra un marcador al leer), así
// que la decisión queda en configuración explícita.
type DeletePolicy string

const (
	// DeletePolicyTolerate borra el producto y deja las referencias colgantes;
	// los lectores muestran un marcador (por defecto).
	DeletePolicyTolerate DeletePolicy = "tolerate"
	// DeletePolicyBlock rechaza el borrado con ErrConflict mientras existan
	// movimientos o recetas que referencien al producto.
	DeletePolicyBlock DeletePolicy = "block"
	// DeletePolicyCascade borra en la misma transacción los movimientos y las
	// recetas que referencien al producto.
	DeletePolicyCascade DeletePolicy = "cascade"
)

// ParseDeletePolicy valida el valor de configuración CATALOG_DELETE_POLICY.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(s) {
	case DeletePolicyTolerate, DeletePolicyBlock, DeletePolicyCascade:
		return DeletePolicy(s), nil
	case "":
		return DeletePolicyTolerate, nil
	}
	return "", fmt.Errorf("política de borrado desconocida %q: %w", s, domain.ErrInvalidInput)
}
