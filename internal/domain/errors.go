package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los errores tipados de abajo coinciden con estos centinelas vía errors.Is.
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrHasDependents = errors.New("el recurso tiene dependientes")
	ErrStore         = errors.New("fallo de almacenamiento")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
)

// Dependencias que pueden bloquear una eliminación.
const (
	DependencyProducts      = "products"
	DependencySubcategories = "sub_categories"
	DependencyOrders        = "orders"
)

// ValidationError entrada faltante o mal formada, detectada antes de tocar el store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s inválido", e.Field)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// DuplicateNameError violación de unicidad. Entity es el nombre de la tabla afectada.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	switch e.Entity {
	case "categories":
		return "la categoría ya existe"
	case "sub_categories":
		return "ya existe una subcategoría con ese nombre en esta categoría"
	case "shipping_options":
		return "la ciudad ya existe"
	case "admins":
		return "ya existe un administrador con este email"
	default:
		return fmt.Sprintf("%s: %q duplicado", e.Entity, e.Name)
	}
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicate }

// HasDependentsError eliminación bloqueada por filas que referencian al registro.
type HasDependentsError struct {
	Entity     string
	ID         int64
	Dependency string
	Count      int64
}

func (e *HasDependentsError) Error() string {
	switch {
	case e.Entity == "categories" && e.Dependency == DependencyProducts:
		return "no se puede eliminar una categoría con productos asociados"
	case e.Entity == "categories" && e.Dependency == DependencySubcategories:
		return "no se puede eliminar una categoría con subcategorías"
	case e.Entity == "sub_categories" && e.Dependency == DependencyProducts:
		return "no se puede eliminar una subcategoría con productos asociados"
	case e.Entity == "shipping_options" && e.Dependency == DependencyOrders:
		return "no se puede eliminar una opción de envío usada en pedidos"
	default:
		return fmt.Sprintf("%s %d tiene registros dependientes", e.Entity, e.ID)
	}
}

func (e *HasDependentsError) Is(target error) bool { return target == ErrHasDependents }

// NotFoundError el id referenciado no existe.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ForbiddenError regla de negocio que prohíbe la acción al actor (p. ej. autoeliminarse).
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// StoreError fallo de persistencia no clasificado (conectividad, constraint desconocido...).
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// AsStoreError envuelve err como StoreError salvo que ya sea un error de dominio tipado.
func AsStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsDomainError informa si err ya pertenece a la taxonomía de dominio.
func IsDomainError(err error) bool {
	for _, target := range []error{ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrHasDependents, ErrStore, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
