package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/agendapos/internal/application/dto"
	"github.com/tu-usuario/agendapos/internal/application/resolver"
	"github.com/tu-usuario/agendapos/internal/domain"
)

// TenantHandler expone el directorio de sucursales y el cambio de sucursal activa.
type TenantHandler struct {
	resolver *resolver.Resolver
}

// NewTenantHandler construye el handler de sucursales.
func NewTenantHandler(res *resolver.Resolver) *TenantHandler {
	return &TenantHandler{resolver: res}
}

// List godoc
// @Summary      Directorio de sucursales
// @Tags         pos
// @Produce      json
// @Success      200  {array}  dto.PosResponse
// @Router       /api/pos [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	list, err := h.resolver.Directory(c.Context())
	if err != nil {
		return connectivityError(c)
	}
	out := make([]dto.PosResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PosResponse{
			ID:       p.ID,
			Name:     p.Name,
			Address:  p.Address,
			Plan:     p.Plan,
			IsActive: p.IsActive,
		})
	}
	return c.JSON(out)
}

// Switch godoc
// @Summary      Cambiar la sucursal activa (solo superadmin)
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SwitchPosRequest  true  "pos_id"
// @Success      200   {object}  dto.SessionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/pos/switch [post]
func (h *TenantHandler) Switch(c *fiber.Ctx) error {
	var in dto.SwitchPosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PosID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pos_id es requerido"})
	}

	res, err := h.resolver.SwitchPos(c.Context(), GetSessionID(c), in.PosID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no encontrada"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo superadmin puede cambiar de sucursal"})
		}
		return connectivityError(c)
	}
	return c.JSON(toSessionResponse(res))
}
