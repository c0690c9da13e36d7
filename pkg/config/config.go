package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Company CompanyConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Admin   AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// CompanyConfig nombres canónicos de las entidades singleton de DEME.
// Las ubicaciones de cliente y las cuentas de proveedor se derivan por patrón
// desde el ID; los movement engines las buscan por nombre exacto.
type CompanyConfig struct {
	CashAccountName         string // cuenta principal de efectivo (DEME_CASH)
	StockLocationName       string // almacén principal (DEME_STOCK)
	CustomerLocationPattern string // fmt con %s = customer ID
	SupplierAccountPattern  string // fmt con %s = supplier ID
}

// CustomerLocationName devuelve el nombre determinista de la ubicación de un cliente.
func (c CompanyConfig) CustomerLocationName(customerID string) string {
	return fmt.Sprintf(c.CustomerLocationPattern, customerID)
}

// SupplierAccountName devuelve el nombre determinista de la cuenta de un proveedor.
func (c CompanyConfig) SupplierAccountName(supplierID string) string {
	return fmt.Sprintf(c.SupplierAccountPattern, supplierID)
}

// AdminConfig credenciales del usuario administrador sembrado en el arranque.
type AdminConfig struct {
	Username string
	Password string
	Email    string
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
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio de trabajo
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "deme-api")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "deme")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "deme-api")

	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_EMAIL", "admin@deme.local")

	// Nombres canónicos (init_data los asegura en el arranque)
	v.SetDefault("DEME_CASH_ACCOUNT_NAME", "DEME_CASH")
	v.SetDefault("DEME_STOCK_LOCATION_NAME", "DEME_STOCK")
	v.SetDefault("CUSTOMER_STOCK_LOCATION_PATTERN", "customer_%s_stock")
	v.SetDefault("SUPPLIER_CASH_ACCOUNT_PATTERN", "supplier_%s_cash")

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Company: CompanyConfig{
			CashAccountName:         v.GetString("DEME_CASH_ACCOUNT_NAME"),
			StockLocationName:       v.GetString("DEME_STOCK_LOCATION_NAME"),
			CustomerLocationPattern: v.GetString("CUSTOMER_STOCK_LOCATION_PATTERN"),
			SupplierAccountPattern:  v.GetString("SUPPLIER_CASH_ACCOUNT_PATTERN"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Password: v.GetString("ADMIN_PASSWORD"),
			Email:    v.GetString("ADMIN_EMAIL"),
		},
	}

	if cfg.App.Env != "development" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET es obligatorio fuera de development")
	}
	return cfg, nil
}
