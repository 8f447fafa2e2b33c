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
	"github.com/tu-usuario/stock-ledger/internal/application/auth"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stock-ledger/internal/interfaces/http"
	"github.com/tu-usuario/stock-ledger/pkg/config"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	resRepo := postgres.NewReservationRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, invRepo, movRepo)
	queryUC := inventory.NewQueryUseCase(invRepo)
	importUC := inventory.NewImportUseCase(invRepo, productRepo, storeRepo)
	reservationUC := inventory.NewReservationUseCase(txRunner, resRepo, cfg.Inventory.ReservationTTL)
	transferUC := inventory.NewTransferUseCase(txRunner, productRepo, storeRepo, transferRepo)
	alertUC := inventory.NewAlertUseCase(invRepo, log)

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
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		StoreUC:       storeUC,
		LedgerUC:      ledgerUC,
		QueryUC:       queryUC,
		ImportUC:      importUC,
		ReservationUC: reservationUC,
		TransferUC:    transferUC,
		AlertUC:       alertUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	// Sondeo periódico de alertas de stock (registro estructurado).
	go alertUC.Poll(ctx, cfg.Inventory.AlertPollInterval)

	// Barrido de reservas vencidas: complementa la expiración perezosa
	// que aplican las consultas de disponibilidad.
	go func() {
		ticker := time.NewTicker(cfg.Inventory.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := reservationUC.ExpireDue(ctx)
				if err != nil {
					log.Error().Err(err).Msg("barrido de reservas vencidas")
					continue
				}
				if n > 0 {
					log.Info().Int64("expiradas", n).Msg("reservas marcadas como EXPIRED")
				}
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
