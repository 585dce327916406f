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
	"github.com/tu-usuario/farmacia-pos/internal/application/auth"
	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/application/reports"
	"github.com/tu-usuario/farmacia-pos/internal/application/sales"
	"github.com/tu-usuario/farmacia-pos/internal/application/usecase"
	infrapdf "github.com/tu-usuario/farmacia-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/farmacia-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/farmacia-pos/internal/interfaces/http"
	"github.com/tu-usuario/farmacia-pos/pkg/config"
	"github.com/tu-usuario/farmacia-pos/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	drugRepo := postgres.NewDrugRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	applyMovementUC := inventory.NewApplyMovementUseCase(txRunner, drugRepo)
	listMovementsUC := inventory.NewListMovementsUseCase(drugRepo, movementRepo)
	drugUC := usecase.NewDrugUseCase(drugRepo, applyMovementUC)
	patientUC := usecase.NewPatientUseCase(patientRepo)

	createSaleUC := sales.NewCreateSaleUseCase(txRunner, applyMovementUC, drugRepo, patientRepo)
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	saleQueryUC := sales.NewSaleQueryUseCase(saleRepo, patientRepo, receiptGen)
	createPurchaseUC := sales.NewCreatePurchaseUseCase(txRunner, applyMovementUC, drugRepo, purchaseRepo)
	quotationUC := sales.NewQuotationUseCase(quotationRepo, drugRepo, createSaleUC)

	lowStockUC := reports.NewLowStockUseCase(drugRepo, movementRepo)
	expiryUC := reports.NewExpiryUseCase(drugRepo)
	dashboardUC := reports.NewDashboardUseCase(drugRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Farmacia POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		DrugUC:         drugUC,
		PatientUC:      patientUC,
		ApplyMovement:  applyMovementUC,
		ListMovements:  listMovementsUC,
		CreateSale:     createSaleUC,
		SaleQuery:      saleQueryUC,
		CreatePurchase: createPurchaseUC,
		QuotationUC:    quotationUC,
		LowStockUC:     lowStockUC,
		ExpiryUC:       expiryUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	httpLog := log.Named("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
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
