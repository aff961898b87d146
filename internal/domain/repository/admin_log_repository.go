package repository

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// AdminLogRepository almacenamiento append-only del registro de acciones.
type AdminLogRepository interface {
	Insert(ctx context.Context, entry *entity.AdminLogEntry) error
	// List más recientes primero; devuelve también el total.
	List(ctx context.Context, limit, offset int) ([]*entity.AdminLogEntry, int64, error)
}
