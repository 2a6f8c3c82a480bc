package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TPP_APP_ENV" required:"true"`
	Port         string `envconfig:"TPP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TPP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TPP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TPP_DB_DSN"`
	Driver string `envconfig:"TPP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TPP_DB_HOST"`
	LegacyPort     int    `envconfig:"TPP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TPP_DB_USER"`
	LegacyPassword string `envconfig:"TPP_DB_PASSWORD"`
	LegacyName     string `envconfig:"TPP_DB_NAME"`
	LegacySSLMode  string `envconfig:"TPP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TPP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TPP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TPP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TPP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TPP_REDIS_URL"`
	Address      string        `envconfig:"TPP_REDIS_ADDR"`
	Password     string        `envconfig:"TPP_REDIS_PASSWORD"`
	DB           int           `envconfig:"TPP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TPP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TPP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TPP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TPP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TPP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig points at the external identity service that owns token
// validation. TPP never mints or parses tokens itself.
type AuthConfig struct {
	BaseURL        string        `envconfig:"TPP_AUTH_BASE_URL" required:"true"`
	Timeout        time.Duration `envconfig:"TPP_AUTH_TIMEOUT" default:"2s"`
	CookieName     string        `envconfig:"TPP_AUTH_COOKIE_NAME" default:"oversound_auth"`
	IdentityTTL    time.Duration `envconfig:"TPP_AUTH_IDENTITY_CACHE_TTL" default:"30s"`
	DisableCaching bool          `envconfig:"TPP_AUTH_DISABLE_CACHE" default:"false"`
}

// CatalogConfig points at the TyA catalog service.
type CatalogConfig struct {
	BaseURL string        `envconfig:"TPP_CATALOG_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"TPP_CATALOG_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TPP_AUTO_MIGRATE" default:"false"`
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
