package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "storefront"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	StorageDriverPostgres = "postgres"
	StorageDriverFile     = "file"

	EnvAppEnv = "STOREFRONT_APP_ENV"
	EnvDBDSN  = "STOREFRONT_DB_DSN"
	EnvDBHost = "STOREFRONT_DB_HOST"
	EnvDBUser = "STOREFRONT_DB_USER"
	EnvDBName = "STOREFRONT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Chat         ChatConfig
	Stripe       StripeConfig
	Location     LocationConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Driver == StorageDriverPostgres {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver   string `envconfig:"STOREFRONT_STORAGE_DRIVER" default:"file"`
	FilePath string `envconfig:"STOREFRONT_STORAGE_FILE_PATH" default:"data/db.json"`
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverPostgres, StorageDriverFile:
	default:
		return fmt.Errorf("storage driver must be %q or %q, got %q", StorageDriverPostgres, StorageDriverFile, s.Driver)
	}
	if s.Driver == StorageDriverFile && strings.TrimSpace(s.FilePath) == "" {
		return fmt.Errorf("storage file path is required for the file driver")
	}
	return nil
}

type DBConfig struct {
	DSN string `envconfig:"STOREFRONT_DB_DSN"`

	LegacyHost     string `envconfig:"STOREFRONT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFRONT_DB_USER"`
	LegacyPassword string `envconfig:"STOREFRONT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFRONT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint is configured at all. When it is
// not, the cart store falls back to the in-process implementation.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type SessionConfig struct {
	CookieName string        `envconfig:"STOREFRONT_SESSION_COOKIE" default:"storefront_session"`
	CartTTL    time.Duration `envconfig:"STOREFRONT_SESSION_CART_TTL" default:"168h"`
}

type ChatConfig struct {
	OpenAIAPIKey string        `envconfig:"STOREFRONT_OPENAI_API_KEY"`
	Model        string        `envconfig:"STOREFRONT_CHAT_MODEL" default:"gpt-4o-mini"`
	SystemPrompt string        `envconfig:"STOREFRONT_CHAT_SYSTEM_PROMPT" default:"You are a helpful sales and support assistant for a solar and security company."`
	Timeout      time.Duration `envconfig:"STOREFRONT_CHAT_TIMEOUT" default:"30s"`
}

type StripeConfig struct {
	APIKey     string `envconfig:"STOREFRONT_STRIPE_API_KEY"`
	Env        string `envconfig:"STOREFRONT_STRIPE_ENV" default:"test"`
	SuccessURL string `envconfig:"STOREFRONT_STRIPE_SUCCESS_URL" default:"http://localhost:3000/cart?success=1"`
	CancelURL  string `envconfig:"STOREFRONT_STRIPE_CANCEL_URL" default:"http://localhost:3000/cart?canceled=1"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type LocationConfig struct {
	Name    string `envconfig:"STOREFRONT_LOCATION_NAME" default:"JNG Solar & Security"`
	Address string `envconfig:"STOREFRONT_LOCATION_ADDRESS" default:"Maputo, Mozambique"`
	Phone   string `envconfig:"STOREFRONT_LOCATION_PHONE" default:"+258 84 000 0000"`
	Hours   string `envconfig:"STOREFRONT_LOCATION_HOURS" default:"Mon-Fri 08:00 - 17:00"`
	MapURL  string `envconfig:"STOREFRONT_LOCATION_MAP_URL" default:"https://maps.google.com/?q=Maputo%2C%20Mozambique"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
