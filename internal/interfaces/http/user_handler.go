package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/agendapos/internal/application/dto"
	"github.com/tu-usuario/agendapos/internal/application/usecase"
	"github.com/tu-usuario/agendapos/internal/domain"
)

// UserHandler administración de usuarios y permisos (formulario administrativo).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Param        pos_id  query  int  false  "filtrar por sucursal"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	var posID *int
	if v := c.QueryInt("pos_id", 0); v > 0 {
		posID = &v
	}
	users, err := h.uc.List(c.Context(), posID, page)
	if err != nil {
		return connectivityError(c)
	}
	return c.JSON(users)
}

// GetByUsername godoc
// @Summary      Obtener un usuario
// @Tags         users
// @Produce      json
// @Param        username  path  string  true  "username"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{username} [get]
func (h *UserHandler) GetByUsername(c *fiber.Ctx) error {
	user, err := h.uc.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return connectivityError(c)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
	}
	return c.JSON(user)
}

// Save godoc
// @Summary      Crear o editar un usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveUserRequest  true  "datos del usuario; password vacío en edición = sin cambios"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.SaveUser(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username, nombre y rol son requeridos"})
		case errors.Is(err, domain.ErrPasswordRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PASSWORD_REQUIRED", Message: domain.ErrPasswordRequired.Error()})
		case errors.Is(err, domain.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USERNAME_EXISTS", Message: domain.ErrUsernameTaken.Error()})
		}
		return connectivityError(c)
	}
	return c.JSON(user)
}

// TogglePermission godoc
// @Summary      Invertir un permiso granular de un usuario
// @Tags         users
// @Produce      json
// @Param        username    path  string  true  "username"
// @Param        capability  path  string  true  "nombre de la capacidad"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{username}/permissions/{capability} [patch]
func (h *UserHandler) TogglePermission(c *fiber.Ctx) error {
	user, err := h.uc.TogglePermission(c.Context(), c.Params("username"), c.Params("capability"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "capacidad requerida"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
		}
		return connectivityError(c)
	}
	return c.JSON(user)
}

// Delete godoc
// @Summary      Eliminar un usuario
// @Tags         users
// @Produce      json
// @Param        username  path  string  true  "username"
// @Success      200  {object}  map[string]bool
// @Router       /api/users/{username} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("username")); err != nil {
		return connectivityError(c)
	}
	return c.JSON(fiber.Map{"ok": true})
}
