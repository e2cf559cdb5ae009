package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tu-usuario/agendapos/internal/application/auth"
	"github.com/tu-usuario/agendapos/internal/application/dto"
	"github.com/tu-usuario/agendapos/internal/application/registration"
	"github.com/tu-usuario/agendapos/internal/application/resolver"
	"github.com/tu-usuario/agendapos/internal/application/session"
	"github.com/tu-usuario/agendapos/internal/domain"
	pkgjwt "github.com/tu-usuario/agendapos/pkg/jwt"
)

// JWTSettings parámetros de emisión de tokens para el handler de auth.
type JWTSettings struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthHandler maneja login (general y master), registro, restauración y logout.
type AuthHandler struct {
	gateway  *auth.Gateway
	resolver *resolver.Resolver
	reg      *registration.UseCase
	jwtCfg   JWTSettings
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(gateway *auth.Gateway, res *resolver.Resolver, reg *registration.UseCase, jwtCfg JWTSettings) *AuthHandler {
	return &AuthHandler{gateway: gateway, resolver: res, reg: reg, jwtCfg: jwtCfg}
}

// Login godoc
// @Summary      Iniciar sesión (general o master)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "mode, username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	if in.Mode == "" {
		in.Mode = auth.ModeGeneral
	}

	user, err := h.gateway.Login(c.Context(), in.Mode, in.Username, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoPasswordSet):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SIN_PASSWORD", Message: "esta cuenta no tiene contraseña asignada; pide a tu administrador que te asigne una"})
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrWrongPassword), errors.Is(err, domain.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "CREDENCIALES", Message: "usuario o contraseña incorrectos"})
		}
		return connectivityError(c)
	}

	sessionID := uuid.New().String()
	res, err := h.resolver.ResolveLogin(c.Context(), sessionID, user)
	if err != nil {
		if errors.Is(err, domain.ErrTenantRequired) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SIN_SUCURSAL", Message: domain.ErrTenantRequired.Error()})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol no reconocido"})
		}
		return connectivityError(c)
	}

	token, err := pkgjwt.Generate(h.jwtCfg.Secret, sessionID, res.Identity.Username, res.Identity.Role, res.ActivePosID, h.jwtCfg.Issuer, h.jwtCfg.ExpMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.JSON(dto.LoginResponse{Token: token, Session: toSessionResponse(res)})
}

// Session godoc
// @Summary      Restaurar la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	res, err := h.resolver.RestoreSession(c.Context(), GetSessionID(c))
	if err != nil {
		if errors.Is(err, domain.ErrTenantRequired) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SIN_SUCURSAL", Message: domain.ErrTenantRequired.Error()})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sesión inválida"})
		}
		return connectivityError(c)
	}
	return c.JSON(toSessionResponse(res))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.resolver.Logout(c.Context(), GetSessionID(c)); err != nil {
		return connectivityError(c)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Register godoc
// @Summary      Auto-registro de cliente (con o sin referido)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password, name, referral_pos_id opcional"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	out, err := h.reg.Register(c.Context(), session.NewGuestContext(), registration.Input{
		Username:      in.Username,
		Password:      in.Password,
		Name:          in.Name,
		Phone:         in.Phone,
		ReferralPosID: in.ReferralPosID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username, password y nombre son requeridos"})
		case errors.Is(err, domain.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USERNAME_EXISTS", Message: domain.ErrUsernameTaken.Error()})
		}
		return connectivityError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{Username: out.Username, PosID: out.PosID})
}

// Referral godoc
// @Summary      Resolver la sucursal de un enlace de referido
// @Tags         auth
// @Produce      json
// @Param        ref  query  int  true  "id de sucursal del enlace"
// @Success      200  {object}  dto.ReferralResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/referral [get]
func (h *AuthHandler) Referral(c *fiber.Ctx) error {
	ref := c.QueryInt("ref", 0)
	if ref <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro ref inválido"})
	}
	pos, err := h.reg.ResolveReferral(c.Context(), ref)
	if err != nil {
		return connectivityError(c)
	}
	if pos == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "POS_NOT_FOUND", Message: "la sucursal del enlace no existe"})
	}
	return c.JSON(dto.ReferralResponse{PosID: pos.ID, PosName: pos.Name})
}

// toSessionResponse mapea la resolución interna al DTO de presentación.
func toSessionResponse(res *resolver.Resolution) dto.SessionResponse {
	out := dto.SessionResponse{
		Authenticated: res.State == resolver.StateBound || res.State == resolver.StateClientUnbound,
		State:         res.State,
		View:          res.View,
		ActivePosID:   res.ActivePosID,
		PosName:       res.PosName,
		CanSwitchPos:  res.CanSwitchPos,
	}
	if res.Identity != nil {
		out.Identity = &dto.IdentityResponse{
			Username: res.Identity.Username,
			Role:     res.Identity.Role,
			Name:     res.Identity.Name,
			PosID:    res.Identity.PosID,
			LoginAt:  res.Identity.LoginAt,
		}
	}
	return out
}

// connectivityError respuesta genérica ante fallos de colaboradores: el
// frontend muestra el banner de "revisa tu conexión".
func connectivityError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code:    "CONNECTIVITY",
		Message: "no se pudo contactar el backend, revisa tu conexión e intenta de nuevo",
	})
}
