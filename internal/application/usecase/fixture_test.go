package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/application/audit"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository/mocks"
)

// fixture store en memoria con un audit.Logger real. flush cierra el logger para que las
// entradas pendientes queden escritas antes de revisarlas.
type fixture struct {
	store  *mocks.Store
	audit  *audit.Logger
	actor  entity.Actor
	iconID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := mocks.NewStore()
	f := &fixture{
		store:  store,
		audit:  audit.NewLogger(store.AdminLogs(), zerolog.Nop(), audit.Config{QueueSize: 64}),
		actor:  entity.Actor{ID: 1, Name: "Root", Role: entity.RoleSuperAdmin},
		iconID: store.SeedIcon("tecnologia", "fa-laptop"),
	}
	t.Cleanup(func() { f.flush(t) })
	return f
}

func (f *fixture) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.audit.Close(ctx))
}

// logs entradas escritas; cierra el logger.
func (f *fixture) logs(t *testing.T) []entity.AdminLogEntry {
	t.Helper()
	f.flush(t)
	return f.store.Logs()
}
