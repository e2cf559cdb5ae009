package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/agendapos/internal/application/dto"
	"github.com/tu-usuario/agendapos/internal/application/nav"
	"github.com/tu-usuario/agendapos/internal/application/session"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
	"github.com/tu-usuario/agendapos/internal/domain/repository"
)

// NavHandler calcula el menú visible para la sesión actual: rol del principal
// más plan de la sucursal activa.
type NavHandler struct {
	store session.Store
	pos   repository.PosRepository
}

// NewNavHandler construye el handler de navegación.
func NewNavHandler(store session.Store, pos repository.PosRepository) *NavHandler {
	return &NavHandler{store: store, pos: pos}
}

// Navigation godoc
// @Summary      Menú de navegación visible para la sesión actual
// @Tags         nav
// @Produce      json
// @Success      200  {object}  map[string][]nav.Group
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/navigation [get]
func (h *NavHandler) Navigation(c *fiber.Ctx) error {
	rec, err := h.store.Restore(c.Context(), GetSessionID(c))
	if err != nil {
		return connectivityError(c)
	}
	if rec == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no encontrada"})
	}

	role := entity.NormalizeRole(rec.Identity.Role)

	// El plan que regula la visibilidad es el de la sucursal activa; sin
	// sucursal activa no aplica ninguna restricción de plan.
	plan := ""
	if rec.ActivePosID != nil {
		pos, err := h.pos.GetByID(c.Context(), *rec.ActivePosID)
		if err != nil {
			return connectivityError(c)
		}
		if pos != nil {
			plan = pos.Plan
		}
	}

	clienteConSucursal := role == entity.RoleCliente && rec.ActivePosID != nil
	groups := nav.Visible(role, plan, clienteConSucursal)
	return c.JSON(fiber.Map{"groups": groups})
}
