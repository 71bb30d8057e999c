package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Search        SearchConfig
	SearchLimiter SearchLimiterConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"RHINO_APP_ENV" required:"true"`
	Port         string `envconfig:"RHINO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RHINO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RHINO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RHINO_DB_DSN"`
	Driver string `envconfig:"RHINO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RHINO_DB_HOST"`
	LegacyPort     int    `envconfig:"RHINO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RHINO_DB_USER"`
	LegacyPassword string `envconfig:"RHINO_DB_PASSWORD"`
	LegacyName     string `envconfig:"RHINO_DB_NAME"`
	LegacySSLMode  string `envconfig:"RHINO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RHINO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RHINO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RHINO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RHINO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RHINO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RHINO_REDIS_ADDR"`
	Password     string        `envconfig:"RHINO_REDIS_PASSWORD"`
	DB           int           `envconfig:"RHINO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RHINO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RHINO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RHINO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RHINO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RHINO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig describes how to verify access tokens minted by the external
// authentication service. This application never issues tokens itself.
type JWTConfig struct {
	Secret            string `envconfig:"RHINO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RHINO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RHINO_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"RHINO_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the live-session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

// SearchConfig points at the external product-code search API.
type SearchConfig struct {
	BaseURL      string        `envconfig:"RHINO_SEARCH_BASE_URL" default:"https://rhino-product-code-description.vercel.app/api"`
	Timeout      time.Duration `envconfig:"RHINO_SEARCH_TIMEOUT" default:"10s"`
	DefaultLimit int           `envconfig:"RHINO_SEARCH_DEFAULT_LIMIT" default:"50"`
	MaxLimit     int           `envconfig:"RHINO_SEARCH_MAX_LIMIT" default:"100"`
}

type SearchLimiterConfig struct {
	Window time.Duration `envconfig:"RHINO_SEARCH_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"RHINO_SEARCH_RATE_LIMIT" default:"60"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"RHINO_AUTO_MIGRATE" default:"false"`
	SessionCheck bool `envconfig:"RHINO_SESSION_CHECK" default:"true"`
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
