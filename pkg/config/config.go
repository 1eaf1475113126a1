package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	HTTP         HTTPConfig
	Sheets       SheetsConfig
	Redis        RedisConfig
	Payments     PaymentsConfig
	Messaging    MessagingConfig
	Negocio      NegocioConfig
	Subscription SubscriptionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	Timeout     time.Duration // tiempo máximo por consulta
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SheetsConfig acceso a la hoja de cálculo de inventario.
type SheetsConfig struct {
	CredentialsFile string // JSON de cuenta de servicio
	SpreadsheetID   string // hoja por defecto para catálogo y ventas
	StockSheet      string
	CatalogSheet    string
	SchemaVersion   int
	Timeout         time.Duration
}

// RedisConfig caché del catálogo público. URL vacía = sin caché.
type RedisConfig struct {
	URL        string
	CatalogTTL time.Duration
}

// PaymentsConfig proveedor de pagos (preferencias de checkout).
type PaymentsConfig struct {
	AccessToken     string
	BaseURL         string
	NotificationURL string
	SuccessURL      string
	Timeout         time.Duration
}

// MessagingConfig bot de chat para avisos al dueño. Token vacío = sin avisos.
type MessagingConfig struct {
	BotToken string
	ChatID   string
	BaseURL  string
	Timeout  time.Duration
}

// NegocioConfig datos del negocio.
type NegocioConfig struct {
	Name                string
	CounterKey          string // prefijo de la clave del contador de ventas
	StockAlertThreshold int
}

// SubscriptionConfig plan de suscripción.
type SubscriptionConfig struct {
	Plan       string
	Price      string // decimal como texto, ej. "15000"
	PeriodDays int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, SHEETS_SPREADSHEET_ID, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "tienda-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "tienda"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			Timeout:     getDuration(v, "DB_TIMEOUT", 5*time.Second),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "tienda-api"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			ReadTimeout:  getDuration(v, "HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration(v, "HTTP_WRITE_TIMEOUT", 30*time.Second),
			CORSOrigins:  getString(v, "HTTP_CORS_ORIGINS", "*"),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getString(v, "SHEETS_CREDENTIALS_FILE", ""),
			SpreadsheetID:   getString(v, "SHEETS_SPREADSHEET_ID", ""),
			StockSheet:      getString(v, "SHEETS_STOCK_SHEET", "Stock"),
			CatalogSheet:    getString(v, "SHEETS_CATALOG_SHEET", "Stock"),
			SchemaVersion:   getInt(v, "SHEETS_SCHEMA_VERSION", 1),
			Timeout:         getDuration(v, "SHEETS_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:        getString(v, "REDIS_URL", ""),
			CatalogTTL: getDuration(v, "CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Payments: PaymentsConfig{
			AccessToken:     getString(v, "PAYMENTS_ACCESS_TOKEN", ""),
			BaseURL:         getString(v, "PAYMENTS_BASE_URL", "https://api.mercadopago.com"),
			NotificationURL: getString(v, "PAYMENTS_NOTIFICATION_URL", ""),
			SuccessURL:      getString(v, "PAYMENTS_SUCCESS_URL", ""),
			Timeout:         getDuration(v, "PAYMENTS_TIMEOUT", 15*time.Second),
		},
		Messaging: MessagingConfig{
			BotToken: getString(v, "MESSAGING_BOT_TOKEN", ""),
			ChatID:   getString(v, "MESSAGING_CHAT_ID", ""),
			BaseURL:  getString(v, "MESSAGING_BASE_URL", "https://api.telegram.org"),
			Timeout:  getDuration(v, "MESSAGING_TIMEOUT", 5*time.Second),
		},
		Negocio: NegocioConfig{
			Name:                getString(v, "NEGOCIO_NAME", "Mi Tienda"),
			CounterKey:          getString(v, "NEGOCIO_COUNTER_KEY", "ventas"),
			StockAlertThreshold: getInt(v, "STOCK_ALERT_THRESHOLD", 2),
		},
		Subscription: SubscriptionConfig{
			Plan:       getString(v, "SUBSCRIPTION_PLAN", "mensual"),
			Price:      getString(v, "SUBSCRIPTION_PRICE", "15000"),
			PeriodDays: getInt(v, "SUBSCRIPTION_PERIOD_DAYS", 30),
		},
	}

	if cfg.App.Env == "production" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET es obligatorio en production")
	}
	if cfg.Sheets.Timeout <= 0 {
		return nil, fmt.Errorf("SHEETS_TIMEOUT debe ser positivo")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getDuration acepta "10s", "5m" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
