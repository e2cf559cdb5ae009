package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/agendapos/internal/application/auth"
	"github.com/tu-usuario/agendapos/internal/application/registration"
	"github.com/tu-usuario/agendapos/internal/application/resolver"
	"github.com/tu-usuario/agendapos/internal/application/session"
	"github.com/tu-usuario/agendapos/internal/application/usecase"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
	"github.com/tu-usuario/agendapos/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Gateway      *auth.Gateway
	Resolver     *resolver.Resolver
	Registration *registration.UseCase
	UserUC       *usecase.UserUseCase
	SessionStore session.Store
	PosRepo      repository.PosRepository
	JWT          JWTSettings
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login, registro y referidos son públicos; sesión y logout
	// requieren token.
	authHandler := NewAuthHandler(deps.Gateway, deps.Resolver, deps.Registration, deps.JWT)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Get("/referral", authHandler.Referral)
	authGroup.Get("/session", AuthMiddleware(deps.JWT.Secret), authHandler.Session)
	authGroup.Post("/logout", AuthMiddleware(deps.JWT.Secret), authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret))

	// Directorio y cambio de sucursal
	tenantHandler := NewTenantHandler(deps.Resolver)
	pos := protected.Group("/pos")
	pos.Get("/", tenantHandler.List)
	pos.Post("/switch", RequireRole(entity.RoleSuperadmin), tenantHandler.Switch)

	// Navegación
	navHandler := NewNavHandler(deps.SessionStore, deps.PosRepo)
	protected.Get("/navigation", navHandler.Navigation)

	// Usuarios y permisos (solo administración)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin, entity.RoleSuperadmin, entity.RolePlatformOwner))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Save)
	users.Get("/:username", userHandler.GetByUsername)
	users.Delete("/:username", userHandler.Delete)
	users.Patch("/:username/permissions/:capability", userHandler.TogglePermission)
}
