// Package pdf genera el reporte PDF del registro de acciones administrativas.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda          │  Generado: fecha / N° filas │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Administrador | Acción | Tabla | Registro | Mensaje  │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                                     │
//	└──────────────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/tienda-admin/internal/application/usecase"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

var _ usecase.AdminLogReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// Etiquetas de acción para el reporte.
var actionLabels = map[string]string{
	entity.ActionCreate:     "Creación",
	entity.ActionUpdate:     "Edición",
	entity.ActionDelete:     "Eliminación",
	entity.ActionDeactivate: "Desactivación",
	entity.ActionReactivate: "Reactivación",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa usecase.AdminLogReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	storeName string
	now       func() time.Time
}

// NewMarotoReportGenerator construye el generador; storeName aparece en el encabezado.
func NewMarotoReportGenerator(storeName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{storeName: storeName, now: time.Now}
}

// GenerateAdminLogReport genera el PDF con las entradas dadas (en el orden recibido).
func (g *MarotoReportGenerator) GenerateAdminLogReport(entries []*entity.AdminLogEntry) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Registro de acciones administrativas", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, g.now(), len(entries)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(entries) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay acciones registradas.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	for i, e := range entries {
		m.AddRows(entryRow(e, i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Reporte generado automáticamente desde el panel de administración.", props.Text{
			Size: 6.5, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(storeName string, now time.Time, count int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(storeName, "Tienda"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Registro de acciones administrativas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d registros", count), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2),
		h("Administrador", 2),
		h("Acción", 1),
		h("Tabla", 2),
		h("Registro", 1),
		h("Mensaje", 4),
	)
}

func entryRow(e *entity.AdminLogEntry, striped bool) core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Top: 1.5, Left: 1}))
	}
	r := row.New(7).Add(
		cell(e.CreatedAt.Format("02/01/2006 15:04"), 2),
		cell(e.AdminName, 2),
		cell(actionLabel(e.Action), 1),
		cell(e.TableName, 2),
		cell(recordID(e.RecordID), 1),
		cell(truncate(e.Message, 90), 4),
	)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

func actionLabel(action string) string {
	if l, ok := actionLabels[action]; ok {
		return l
	}
	return action
}

func recordID(id *int64) string {
	if id == nil {
		return "—"
	}
	return strconv.FormatInt(*id, 10)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// truncate corta s a n runas agregando "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
