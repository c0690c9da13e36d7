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
	"github.com/jhoicas/Deme-api/internal/application/auth"
	"github.com/jhoicas/Deme-api/internal/application/bootstrap"
	"github.com/jhoicas/Deme-api/internal/application/catalog"
	"github.com/jhoicas/Deme-api/internal/application/movements"
	"github.com/jhoicas/Deme-api/internal/application/notes"
	"github.com/jhoicas/Deme-api/internal/application/partners"
	"github.com/jhoicas/Deme-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Deme-api/internal/interfaces/http"
	"github.com/jhoicas/Deme-api/pkg/config"
	"github.com/jhoicas/Deme-api/pkg/logger"
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
	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewStockLocationRepository(pool)
	cellRepo := postgres.NewStockCellRepository(pool)
	accountRepo := postgres.NewCashAccountRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseRepo := postgres.NewPurchaseNoteRepository(pool)
	purchaseLineRepo := postgres.NewPurchaseLineRepository(pool)
	salesRepo := postgres.NewSalesNoteRepository(pool)
	salesLineRepo := postgres.NewSalesLineRepository(pool)
	depositRepo := postgres.NewStockDepositNoteRepository(pool)
	transferRepo := postgres.NewCashTransferNoteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Datos mínimos: ubicación y cuenta canónicas + usuario admin
	seeder := bootstrap.NewSeeder(userRepo, locationRepo, accountRepo, cfg.Company, cfg.Admin, log)
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("siembra de datos iniciales")
	}

	companyNames := movements.CompanyNames{
		CashAccountName:         cfg.Company.CashAccountName,
		StockLocationName:       cfg.Company.StockLocationName,
		CustomerLocationPattern: cfg.Company.CustomerLocationPattern,
		SupplierAccountPattern:  cfg.Company.SupplierAccountPattern,
	}
	stockEngine := movements.NewStockEngine(companyNames)
	cashEngine := movements.NewCashEngine(companyNames)

	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	productsUC := catalog.NewProductsUseCase(productRepo, cellRepo, purchaseLineRepo, salesLineRepo)
	locationsUC := catalog.NewStockLocationsUseCase(locationRepo, cellRepo, cfg.Company)
	accountsUC := catalog.NewCashAccountsUseCase(accountRepo, cfg.Company)
	stockQueriesUC := catalog.NewStockQueriesUseCase(cellRepo, locationRepo)
	customersUC := partners.NewCustomersUseCase(txRunner, customerRepo, cfg.Company)
	suppliersUC := partners.NewSuppliersUseCase(txRunner, supplierRepo, cfg.Company)
	purchasesUC := notes.NewPurchaseNotesUseCase(txRunner, purchaseRepo, purchaseLineRepo, supplierRepo, stockEngine, cashEngine)
	salesUC := notes.NewSalesNotesUseCase(txRunner, salesRepo, salesLineRepo, customerRepo, stockEngine, cashEngine)
	depositsUC := notes.NewStockDepositNotesUseCase(txRunner, depositRepo, productRepo, locationRepo, stockEngine)
	transfersUC := notes.NewCashTransferNotesUseCase(txRunner, transferRepo, accountRepo, cashEngine)

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
		Title:    "DEME API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductsUC:     productsUC,
		LocationsUC:    locationsUC,
		AccountsUC:     accountsUC,
		StockQueriesUC: stockQueriesUC,
		CustomersUC:    customersUC,
		SuppliersUC:    suppliersUC,
		PurchasesUC:    purchasesUC,
		SalesUC:        salesUC,
		DepositsUC:     depositsUC,
		TransfersUC:    transfersUC,
		JWTSecret:      cfg.JWT.Secret,
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
