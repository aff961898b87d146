package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/usecase"
)

// AdminLogHandler consulta del registro de acciones.
type AdminLogHandler struct {
	uc *usecase.AdminLogUseCase
}

func NewAdminLogHandler(uc *usecase.AdminLogUseCase) *AdminLogHandler {
	return &AdminLogHandler{uc: uc}
}

// List godoc
// @Summary      Registro de acciones administrativas (más recientes primero)
// @Tags         admin-logs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.AdminLogListResponse
// @Router       /api/admin-logs [get]
func (h *AdminLogHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Exportar el registro de acciones en PDF
// @Tags         admin-logs
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/admin-logs/report.pdf [get]
func (h *AdminLogHandler) Report(c *fiber.Ctx) error {
	doc, err := h.uc.Report(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="registro-acciones-%s.pdf"`, time.Now().Format("20060102")))
	return c.Send(doc)
}
