package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/billing"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/clientes"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/labels"
	"github.com/jhoicas/tienda-api/internal/application/ventas"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router. Un caso de uso nil deja sus rutas sin registrar.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ReconcileUC    *inventory.ReconcileUseCase
	SaleUC         *ventas.SaleUseCase
	CatalogUC      *catalog.UseCase
	CustomerUC     *clientes.CustomerUseCase
	SubscriptionUC *billing.SubscriptionUseCase
	LabelsUC       *labels.UseCase
	JWTSecret      string
	ServiceName    string
	// valores por defecto para consultas de stock sin spreadsheet_id/hoja
	SpreadsheetID string
	StockSheet    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Públicas
	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)
	}
	if deps.CatalogUC != nil {
		catalogHandler := NewCatalogHandler(deps.CatalogUC)
		api.Get("/catalog", catalogHandler.List)
		api.Get("/catalog/categories", catalogHandler.Categories)
	}
	var subscriptionHandler *SubscriptionHandler
	if deps.SubscriptionUC != nil {
		subscriptionHandler = NewSubscriptionHandler(deps.SubscriptionUC)
		api.Post("/webhooks/payments", subscriptionHandler.Webhook)
	}

	// Rutas protegidas (requieren Bearer Token)
	authn := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	if deps.ReconcileUC != nil {
		stockHandler := NewStockHandler(deps.ReconcileUC, deps.SpreadsheetID, deps.StockSheet)
		stockGroup := api.Group("/stock", authn)
		stockGroup.Post("/sync", adminOnly, stockHandler.Sync)
		stockGroup.Post("/sale", staff, stockHandler.Sale)
		stockGroup.Get("/low", staff, stockHandler.Low)
	}

	if deps.SaleUC != nil {
		saleHandler := NewSaleHandler(deps.SaleUC)
		sales := api.Group("/sales", authn, staff)
		sales.Post("/", saleHandler.Create)
		sales.Get("/next-number", saleHandler.NextNumber)
		sales.Get("/:numero", saleHandler.Get)
		sales.Get("/:numero/ticket", saleHandler.Ticket)
	}

	if deps.CustomerUC != nil {
		customerHandler := NewCustomerHandler(deps.CustomerUC)
		customers := api.Group("/customers", authn, staff)
		customers.Post("/", customerHandler.Create)
		customers.Get("/", customerHandler.List)
		customers.Get("/:id", customerHandler.Get)
		customers.Post("/:id/payments", customerHandler.RegisterPayment)
		customers.Get("/:id/payments", customerHandler.ListPayments)
	}

	if deps.LabelsUC != nil {
		labelHandler := NewLabelHandler(deps.LabelsUC)
		api.Post("/labels", authn, staff, labelHandler.Generate)
	}

	if subscriptionHandler != nil {
		subs := api.Group("/subscriptions", authn, adminOnly)
		subs.Post("/", subscriptionHandler.Create)
		subs.Get("/current", subscriptionHandler.Current)
	}
}

// AppConfig parámetros del servidor HTTP.
type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  string // lista separada por comas; vacío = sin CORS
}

// NewApp crea la aplicación Fiber con el envelope de errores, log de peticiones y recover.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
	})
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + HeaderRequestID,
			AllowMethods: "GET,POST,OPTIONS",
		}))
	}
	return app
}
