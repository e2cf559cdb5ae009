package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/agendapos/internal/application/auth"
	"github.com/tu-usuario/agendapos/internal/application/registration"
	"github.com/tu-usuario/agendapos/internal/application/resolver"
	appsession "github.com/tu-usuario/agendapos/internal/application/session"
	"github.com/tu-usuario/agendapos/internal/application/usecase"
	"github.com/tu-usuario/agendapos/internal/infrastructure/masterauth"
	"github.com/tu-usuario/agendapos/internal/infrastructure/postgres"
	"github.com/tu-usuario/agendapos/internal/infrastructure/redisstore"
	httpRouter "github.com/tu-usuario/agendapos/internal/interfaces/http"
	"github.com/tu-usuario/agendapos/pkg/config"
	"github.com/tu-usuario/agendapos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Almacén de sesiones: Redis en despliegues; en memoria si no hay Redis
	// configurado (desarrollo local).
	var sessionStore appsession.Store
	if cfg.Redis.Addr != "" {
		store, err := redisstore.New(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		sessionStore = store
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: usando almacén de sesiones en memoria")
		sessionStore = appsession.NewMemoryStore()
	}

	userRepo := postgres.NewUserRepository(pool)
	posRepo := postgres.NewPosRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)

	masterClient := masterauth.New(cfg.Master.AuthURL, cfg.Master.Timeout)
	gateway := auth.NewGateway(userRepo, masterClient, auditRepo, log)
	sessionResolver := resolver.New(posRepo, sessionStore, log)
	registrationUC := registration.New(userRepo, clientRepo, posRepo, notifRepo, cfg.Registration.DefaultPosID, log)
	userUC := usecase.NewUserUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgendaPOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Gateway:      gateway,
		Resolver:     sessionResolver,
		Registration: registrationUC,
		UserUC:       userUC,
		SessionStore: sessionStore,
		PosRepo:      posRepo,
		JWT: httpRouter.JWTSettings{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
