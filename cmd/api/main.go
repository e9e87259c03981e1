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

	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/application/pos"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/infrastructure/cache"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/infrastructure/client"
	httpRouter "github.com/fabrica-abstracta/gestion-uno-web-sub001/internal/interfaces/http"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/pkg/config"
	"github.com/fabrica-abstracta/gestion-uno-web-sub001/pkg/logger"
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

	// Clientes REST hacia el backend de catálogo/pedidos/transacciones.
	base := client.New(cfg.Backend.BaseURL, cfg.Backend.APIToken, cfg.Backend.Timeout())
	var catalogSvc pos.CatalogService = client.NewCatalogClient(base)
	orderSvc := client.NewOrderClient(base)
	txSvc := client.NewTransactionClient(base)

	// Caché opcional de listados de catálogo (Redis). Sin REDIS_ADDR queda
	// desactivada.
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCatalogCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, caché de catálogo desactivada")
		} else {
			catalogSvc = cache.NewCachedCatalogService(catalogSvc, redisCache, cfg.Redis.TTL())
			defer redisCache.Close()
		}
		cancel()
	}

	sessions := pos.NewSessionManager(pos.SessionDeps{
		Catalog:      catalogSvc,
		Transactions: txSvc,
		PerPage:      cfg.Session.CatalogPerPage,
		Log:          log,
	}, cfg.Session.TTL())
	defer sessions.Close()

	orders := pos.NewOrderCartRegistry(orderSvc, txSvc, log, 0)

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
		Title:    "Gestión Uno POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  cfg.App.Name,
			"sessions": sessions.Count(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:  sessions,
		Orders:    orders,
		JWTSecret: cfg.JWT.Secret,
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
