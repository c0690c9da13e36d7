package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Deme-api/internal/application/catalog"
	"github.com/jhoicas/Deme-api/internal/application/dto"
)

// StockLocationHandler maneja las peticiones HTTP para StockLocation (protegido).
type StockLocationHandler struct {
	uc      *catalog.StockLocationsUseCase
	queries *catalog.StockQueriesUseCase
}

// NewStockLocationHandler construye el handler.
func NewStockLocationHandler(uc *catalog.StockLocationsUseCase, queries *catalog.StockQueriesUseCase) *StockLocationHandler {
	return &StockLocationHandler{uc: uc, queries: queries}
}

// Create godoc
// @Summary      Crear ubicación de stock
// @Tags         stock-locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockLocationRequest  true  "Datos de la ubicación"
// @Success      201   {object}  entity.StockLocation
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-locations [post]
func (h *StockLocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ubicación por ID
// @Tags         stock-locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  entity.StockLocation
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-locations/{id} [get]
func (h *StockLocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ubicaciones de stock
// @Tags         stock-locations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.StockLocation
// @Router       /api/stock-locations [get]
func (h *StockLocationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar ubicación
// @Tags         stock-locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la ubicación"
// @Param        body  body  dto.CreateStockLocationRequest  true  "Nuevo nombre"
// @Success      200   {object}  entity.StockLocation
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-locations/{id} [put]
func (h *StockLocationHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateStockLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ubicación (soft delete)
// @Tags         stock-locations
// @Security     Bearer
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-locations/{id} [delete]
func (h *StockLocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListStock godoc
// @Summary      Saldos de stock de una ubicación
// @Tags         stock-locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {array}  dto.StockCellResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-locations/{id}/stock [get]
func (h *StockLocationHandler) ListStock(c *fiber.Ctx) error {
	out, err := h.queries.ListByLocation(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCell godoc
// @Summary      Saldo de un producto en una ubicación
// @Tags         stock-locations
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID de la ubicación"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockCellResponse
// @Router       /api/stock-locations/{id}/stock/{productId} [get]
func (h *StockLocationHandler) GetCell(c *fiber.Ctx) error {
	out, err := h.queries.GetCell(c.Context(), c.Params("productId"), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
