package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Deme-api/internal/application/catalog"
	"github.com/jhoicas/Deme-api/internal/application/dto"
)

// CashAccountHandler maneja las peticiones HTTP para CashAccount (protegido).
type CashAccountHandler struct {
	uc *catalog.CashAccountsUseCase
}

// NewCashAccountHandler construye el handler.
func NewCashAccountHandler(uc *catalog.CashAccountsUseCase) *CashAccountHandler {
	return &CashAccountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cuenta de efectivo
// @Tags         cash-accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCashAccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  entity.CashAccount
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-accounts [post]
func (h *CashAccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCashAccountRequest
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
// @Summary      Obtener cuenta por ID
// @Tags         cash-accounts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {object}  entity.CashAccount
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-accounts/{id} [get]
func (h *CashAccountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cuentas de efectivo
// @Tags         cash-accounts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.CashAccount
// @Router       /api/cash-accounts [get]
func (h *CashAccountHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar cuenta
// @Tags         cash-accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.CreateCashAccountRequest  true  "Nuevo nombre"
// @Success      200   {object}  entity.CashAccount
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash-accounts/{id} [put]
func (h *CashAccountHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateCashAccountRequest
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
// @Summary      Eliminar cuenta (soft delete)
// @Tags         cash-accounts
// @Security     Bearer
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash-accounts/{id} [delete]
func (h *CashAccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
