package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/mypos-admin/internal/infrastructure/memory"
	"github.com/jhoicas/mypos-admin/internal/interfaces/mockapi"
	"github.com/jhoicas/mypos-admin/pkg/config"
	"github.com/jhoicas/mypos-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Production: cfg.Production, Level: "info"})
	log.Info().Str("addr", cfg.Mock.Addr()).Msg("iniciando mockapi")

	db := memory.NewDB()
	if err := memory.Seed(db); err != nil {
		log.Fatal().Err(err).Msg("seed de datos de desarrollo")
	}

	app := fiber.New(fiber.Config{
		AppName:      "mypos-mockapi",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "mypos-mockapi"})
	})

	mockapi.Router(app, mockapi.RouterDeps{
		Users:    memory.NewUserRepo(db),
		Tenants:  memory.NewTenantRepo(db),
		Stores:   memory.NewStoreRepo(db),
		Staff:    memory.NewStaffRepo(db),
		Catalog:  memory.NewCatalogRepo(db),
		Settings: memory.NewSettingRepo(db),
		Tokens: mockapi.TokenConfig{
			Secret:     cfg.Mock.JWTSecret,
			Issuer:     cfg.Mock.JWTIssuer,
			AccessTTL:  cfg.Mock.AccessTTL,
			RefreshTTL: cfg.Mock.RefreshTTL,
		},
		LoginRL: mockapi.NewRateLimiter(cfg.Mock.LoginRatePerMin, cfg.Mock.LoginBurst),
	})

	go func() {
		if err := app.Listen(cfg.Mock.Addr()); err != nil {
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

	log.Info().Msg("mockapi detenido")
}
