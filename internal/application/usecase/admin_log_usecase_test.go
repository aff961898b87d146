package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/application/audit"
	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

type fakeReport struct{ got []*entity.AdminLogEntry }

func (r *fakeReport) GenerateAdminLogReport(entries []*entity.AdminLogEntry) ([]byte, error) {
	r.got = entries
	return []byte("%PDF-fake"), nil
}

func TestAdminLog_ListYReporte(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 3; i++ {
		f.audit.Record(audit.Entry(f.actor, entity.ActionCreate, entity.TableCategories, int64(i), "x"))
	}
	f.flush(t)

	report := &fakeReport{}
	uc := NewAdminLogUseCase(f.store.AdminLogs(), report)
	ctx := context.Background()

	page, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Page.Total)
	assert.Equal(t, int64(3), *page.Items[0].RecordID, "más recientes primero")

	pdf, err := uc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Len(t, report.got, 3)
}
