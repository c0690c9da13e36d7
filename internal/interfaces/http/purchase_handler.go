package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Deme-api/internal/application/dto"
	"github.com/jhoicas/Deme-api/internal/application/notes"
)

// PurchaseHandler maneja las peticiones HTTP para PurchaseNote (protegido).
type PurchaseHandler struct {
	uc *notes.PurchaseNotesUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *notes.PurchaseNotesUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear nota de compra (DRAFT)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseNoteRequest  true  "Datos de la nota"
// @Success      201   {object}  entity.PurchaseNote
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseNoteRequest
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
// @Summary      Obtener nota de compra por ID
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  entity.PurchaseNote
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar notas de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.PurchaseNote
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar nota de compra (solo DRAFT)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la nota"
// @Param        body  body  dto.UpdatePurchaseNoteRequest  true  "Datos a actualizar"
// @Success      200   {object}  entity.PurchaseNote
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseNoteRequest
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
// @Summary      Eliminar nota de compra (solo DRAFT, soft delete)
// @Tags         purchases
// @Security     Bearer
// @Param        id  path  string  true  "ID de la nota"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListLines godoc
// @Summary      Listar líneas de la nota
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {array}  entity.PurchaseLine
// @Router       /api/purchases/{id}/lines [get]
func (h *PurchaseHandler) ListLines(c *fiber.Ctx) error {
	out, err := h.uc.ListLines(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea (solo DRAFT, recalcula el total)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la nota"
// @Param        body  body  dto.LineRequest  true  "Datos de la línea"
// @Success      201   {object}  entity.PurchaseLine
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/lines [post]
func (h *PurchaseHandler) AddLine(c *fiber.Ctx) error {
	var in dto.LineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddLine(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLine godoc
// @Summary      Actualizar línea (solo DRAFT, recalcula el total)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la nota"
// @Param        lineId  path  string  true  "ID de la línea"
// @Param        body    body  dto.LineRequest  true  "Datos de la línea"
// @Success      200     {object}  entity.PurchaseLine
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/lines/{lineId} [put]
func (h *PurchaseHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.LineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateLine(c.Context(), c.Params("id"), c.Params("lineId"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteLine godoc
// @Summary      Eliminar línea (solo DRAFT, recalcula el total)
// @Tags         purchases
// @Security     Bearer
// @Param        id      path  string  true  "ID de la nota"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/lines/{lineId} [delete]
func (h *PurchaseHandler) DeleteLine(c *fiber.Ctx) error {
	if err := h.uc.DeleteLine(c.Context(), c.Params("id"), c.Params("lineId"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Confirm godoc
// @Summary      Confirmar nota de compra (DRAFT -> CONFIRMED)
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  entity.PurchaseNote
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/confirm [post]
func (h *PurchaseHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
