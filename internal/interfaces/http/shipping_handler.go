package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/usecase"
)

// ShippingHandler rutas de opciones de envío (ciudades).
type ShippingHandler struct {
	uc *usecase.ShippingUseCase
}

func NewShippingHandler(uc *usecase.ShippingUseCase) *ShippingHandler {
	return &ShippingHandler{uc: uc}
}

// List godoc
// @Summary      Listar opciones de envío
// @Tags         shipping
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ShippingOptionResponse
// @Router       /api/shipping [get]
func (h *ShippingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear opción de envío
// @Tags         shipping
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShippingOptionRequest  true  "Ciudad y precio"
// @Success      201   {object}  dto.IDResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipping [post]
func (h *ShippingHandler) Create(c *fiber.Ctx) error {
	var in dto.ShippingOptionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// Update godoc
// @Summary      Editar opción de envío
// @Tags         shipping
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.ShippingOptionRequest  true  "Ciudad y precio"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/shipping/{id} [put]
func (h *ShippingHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ShippingOptionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Update(c.UserContext(), GetActor(c), id, in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Opción de envío actualizada correctamente"})
}

// Delete godoc
// @Summary      Eliminar opción de envío (bloqueado si hay pedidos)
// @Tags         shipping
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipping/{id} [delete]
func (h *ShippingHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
