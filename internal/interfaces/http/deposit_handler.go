package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Deme-api/internal/application/dto"
	"github.com/jhoicas/Deme-api/internal/application/notes"
)

// DepositHandler maneja las peticiones HTTP para StockDepositNote (protegido).
type DepositHandler struct {
	uc *notes.StockDepositNotesUseCase
}

// NewDepositHandler construye el handler.
func NewDepositHandler(uc *notes.StockDepositNotesUseCase) *DepositHandler {
	return &DepositHandler{uc: uc}
}

// Create godoc
// @Summary      Crear nota de depósito (DRAFT)
// @Tags         deposits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockDepositNoteRequest  true  "Datos de la nota"
// @Success      201   {object}  entity.StockDepositNote
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-deposits [post]
func (h *DepositHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockDepositNoteRequest
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
// @Summary      Obtener nota de depósito por ID
// @Tags         deposits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  entity.StockDepositNote
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-deposits/{id} [get]
func (h *DepositHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar notas de depósito
// @Tags         deposits
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.StockDepositNote
// @Router       /api/stock-deposits [get]
func (h *DepositHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar nota de depósito (solo DRAFT)
// @Tags         deposits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la nota"
// @Param        body  body  dto.CreateStockDepositNoteRequest  true  "Datos a actualizar"
// @Success      200   {object}  entity.StockDepositNote
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-deposits/{id} [put]
func (h *DepositHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateStockDepositNoteRequest
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
// @Summary      Eliminar nota de depósito (solo DRAFT, soft delete)
// @Tags         deposits
// @Security     Bearer
// @Param        id  path  string  true  "ID de la nota"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-deposits/{id} [delete]
func (h *DepositHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Confirm godoc
// @Summary      Confirmar nota de depósito (DRAFT -> CONFIRMED)
// @Tags         deposits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  entity.StockDepositNote
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-deposits/{id}/confirm [post]
func (h *DepositHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
