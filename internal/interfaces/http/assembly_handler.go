package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/assembly"
	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// AssemblyHandler maneja las peticiones HTTP para recetas de ensamble y
// corridas de producción.
type AssemblyHandler struct {
	uc *assembly.UseCase
}

// NewAssemblyHandler construye el handler.
func NewAssemblyHandler(uc *assembly.UseCase) *AssemblyHandler {
	return &AssemblyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear receta de ensamble (cabecera + componentes, atómico)
// @Tags         assemblies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssemblyRequest  true  "Receta"
// @Success      201   {object}  dto.AssemblyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assemblies [post]
func (h *AssemblyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssemblyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener receta por ID
// @Tags         assemblies
// @Produce      json
// @Param        id  path  string  true  "ID de la receta"
// @Success      200  {object}  dto.AssemblyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assemblies/{id} [get]
func (h *AssemblyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recetas con componentes resueltos
// @Tags         assemblies
// @Produce      json
// @Success      200  {array}  dto.AssemblyResponse
// @Router       /api/assemblies [get]
func (h *AssemblyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar receta
// @Tags         assemblies
// @Param        id  path  string  true  "ID de la receta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assemblies/{id} [delete]
func (h *AssemblyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Produce godoc
// @Summary      Producir N unidades de una receta (todo o nada)
// @Tags         assemblies
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la receta"
// @Param        body  body  dto.ProduceRequest  true  "Cantidad a producir"
// @Success      201   {object}  dto.ProduceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/assemblies/{id}/produce [post]
func (h *AssemblyHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProduceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Produce(c.Context(), c.Params("id"), in.Quantity)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
