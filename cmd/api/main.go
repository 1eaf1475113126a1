package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/billing"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/clientes"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/labels"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/application/ventas"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/stock"
	"github.com/jhoicas/tienda-api/internal/infrastructure/messaging"
	"github.com/jhoicas/tienda-api/internal/infrastructure/payments"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/tienda-api/internal/infrastructure/redis"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sheets"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	for _, m := range applied {
		log.Info().Str("migration", m).Msg("migración aplicada")
	}

	schema, err := stock.SchemaFor(cfg.Sheets.SchemaVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("esquema de la hoja de stock")
	}
	rowStore := newRowStore(ctx, cfg, log)
	cache := newCache(ctx, cfg, log)
	notifier := newNotifier(cfg, log)

	userRepo := postgres.NewUserRepository(pool)
	counterRepo := postgres.NewCounterRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reconcileUC := inventory.NewReconcileUseCase(rowStore, schema, inventory.NewKeyedLocker(), cache, notifier,
		inventory.ReconcileConfig{
			Timeout:        cfg.Sheets.Timeout,
			AlertThreshold: cfg.Negocio.StockAlertThreshold,
		}, log)
	catalogUC := catalog.NewUseCase(reconcileUC, cache, cfg.Redis.CatalogTTL,
		cfg.Sheets.SpreadsheetID, cfg.Sheets.CatalogSheet, log)
	counterUC := ventas.NewCounterUseCase(counterRepo, cfg.DB.Timeout, log)
	saleUC := ventas.NewSaleUseCase(reconcileUC, counterUC, saleRepo, customerRepo, txRunner,
		infrapdf.NewTicketGenerator(),
		ventas.SaleConfig{
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			Hoja:          cfg.Sheets.StockSheet,
			CounterPrefix: cfg.Negocio.CounterKey,
			NegocioName:   cfg.Negocio.Name,
		}, log)
	customerUC := clientes.NewCustomerUseCase(customerRepo, paymentRepo, txRunner, log)
	labelsUC := labels.NewUseCase(reconcileUC, infrapdf.NewLabelGenerator(),
		cfg.Sheets.SpreadsheetID, cfg.Sheets.StockSheet, cfg.Negocio.Name, log)

	price, err := decimal.NewFromString(cfg.Subscription.Price)
	if err != nil {
		log.Fatal().Err(err).Str("price", cfg.Subscription.Price).Msg("SUBSCRIPTION_PRICE inválido")
	}
	subscriptionUC := billing.NewSubscriptionUseCase(subscriptionRepo, txRunner,
		payments.NewClient(cfg.Payments.BaseURL, cfg.Payments.AccessToken, cfg.Payments.Timeout),
		notifier,
		billing.PlanConfig{
			Name:            cfg.Subscription.Plan,
			Price:           price,
			PeriodDays:      cfg.Subscription.PeriodDays,
			NotificationURL: cfg.Payments.NotificationURL,
			SuccessURL:      cfg.Payments.SuccessURL,
		}, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Tienda API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ReconcileUC:    reconcileUC,
		SaleUC:         saleUC,
		CatalogUC:      catalogUC,
		CustomerUC:     customerUC,
		SubscriptionUC: subscriptionUC,
		LabelsUC:       labelsUC,
		JWTSecret:      cfg.JWT.Secret,
		ServiceName:    cfg.App.Name,
		SpreadsheetID:  cfg.Sheets.SpreadsheetID,
		StockSheet:     cfg.Sheets.StockSheet,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
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

// newRowStore hoja de cálculo real; en development sin credenciales usa una hoja en memoria.
func newRowStore(ctx context.Context, cfg *config.Config, log *logger.Logger) repository.RowStore {
	if cfg.Sheets.CredentialsFile == "" && cfg.App.Env == "development" {
		log.Warn().Msg("SHEETS_CREDENTIALS_FILE vacío: usando hoja de stock en memoria")
		return sheets.NewMemoryStore()
	}
	store, err := sheets.NewRowStore(ctx, cfg.Sheets.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente de hojas de cálculo")
	}
	return store
}

func newCache(ctx context.Context, cfg *config.Config, log *logger.Logger) ports.Cache {
	if cfg.Redis.URL == "" {
		return infraredis.NopCache{}
	}
	rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		// el catálogo funciona sin caché
		log.Warn().Err(err).Msg("Redis no disponible, catálogo sin caché")
		return infraredis.NopCache{}
	}
	return infraredis.NewCache(rdb, cfg.App.Name+":")
}

func newNotifier(cfg *config.Config, log *logger.Logger) ports.Notifier {
	if cfg.Messaging.BotToken == "" || cfg.Messaging.ChatID == "" {
		log.Info().Msg("avisos por chat desactivados")
		return messaging.NopNotifier{}
	}
	return messaging.NewTelegramNotifier(cfg.Messaging.BaseURL, cfg.Messaging.BotToken, cfg.Messaging.ChatID, cfg.Messaging.Timeout)
}
