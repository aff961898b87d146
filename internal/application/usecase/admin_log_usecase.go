package usecase

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// reportMaxEntries entradas incluidas en el reporte PDF.
const reportMaxEntries = 500

// AdminLogReportGenerator genera el PDF del registro de acciones.
type AdminLogReportGenerator interface {
	GenerateAdminLogReport(entries []*entity.AdminLogEntry) ([]byte, error)
}

// AdminLogUseCase consulta del registro de auditoría (solo lectura).
type AdminLogUseCase struct {
	repo   repository.AdminLogRepository
	report AdminLogReportGenerator
}

// NewAdminLogUseCase construye el caso de uso.
func NewAdminLogUseCase(repo repository.AdminLogRepository, report AdminLogReportGenerator) *AdminLogUseCase {
	return &AdminLogUseCase{repo: repo, report: report}
}

// List entradas más recientes primero.
func (uc *AdminLogUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.AdminLogListResponse, error) {
	page.DefaultPage()
	entries, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.AsStoreError("listar registro de acciones", err)
	}
	out := &dto.AdminLogListResponse{
		Items: make([]dto.AdminLogResponse, 0, len(entries)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, e := range entries {
		out.Items = append(out.Items, dto.AdminLogResponse{
			ID:        e.ID,
			AdminID:   e.AdminID,
			AdminName: e.AdminName,
			Action:    e.Action,
			TableName: e.TableName,
			RecordID:  e.RecordID,
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

// Report PDF con las últimas entradas del registro.
func (uc *AdminLogUseCase) Report(ctx context.Context) ([]byte, error) {
	entries, _, err := uc.repo.List(ctx, reportMaxEntries, 0)
	if err != nil {
		return nil, domain.AsStoreError("listar registro de acciones", err)
	}
	return uc.report.GenerateAdminLogReport(entries)
}
