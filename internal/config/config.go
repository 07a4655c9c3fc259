// Package config собирает конфигурацию сервера из .env, переменных окружения и флагов.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Поддерживаемые драйверы хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Окружения, влияющие на формат логов
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var allowedAlgorithms = []string{"HS256", "HS384", "HS512"}

// Config конфигурация сервера
type Config struct {
	Env         string   `env:"PAUTINKA_ENV" envDefault:"development"`
	LogLevel    string   `env:"PAUTINKA_LOG_LEVEL" envDefault:"info"`
	Addr        string   `env:"PAUTINKA_ADDR" envDefault:":8000"`
	CORSOrigins []string `env:"PAUTINKA_CORS_ORIGINS" envSeparator:"," envDefault:"http://putinka.space,https://pautinka.spase,http://localhost,http://localhost:8080"`
	Database    DatabaseConfig
	Auth        AuthConfig
	Root        RootConfig
	Redis       RedisConfig
	Telemetry   TelemetryConfig
	HTTP        HTTPConfig
}

// AuthConfig параметры токенов и хеширования паролей.
// Имена переменных совпадают с исходным развертыванием.
type AuthConfig struct {
	SecretKey          string `env:"SECRET_KEY"`
	HashAlgorithm      string `env:"HASH_ALGORITHM" envDefault:"HS256"`
	TokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
	BcryptCost         int    `env:"PAUTINKA_BCRYPT_COST" envDefault:"10"`
}

// TokenTTL время жизни access токена
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenExpireMinutes) * time.Minute
}

// RootConfig учетная запись, создаваемая при старте
type RootConfig struct {
	Name     string `env:"ROOT_NAME"`
	Surname  string `env:"ROOT_SURNAME"`
	Password string `env:"ROOT_PASSWORD"`
}

// DatabaseConfig выбор и параметры хранилища.
// Для postgres без DSN строка собирается из PG_* переменных.
type DatabaseConfig struct {
	Driver     string        `env:"PAUTINKA_DB_DRIVER" envDefault:"sqlite"`
	DSN        string        `env:"PAUTINKA_DB_DSN"`
	SQLitePath string        `env:"PAUTINKA_SQLITE_PATH" envDefault:"pautinka.db"`
	PGUser     string        `env:"PG_USER"`
	PGPassword string        `env:"PG_PASSWORD"`
	PGHost     string        `env:"PG_HOST" envDefault:"localhost"`
	PGPort     string        `env:"PG_PORT" envDefault:"5432"`
	PGDatabase string        `env:"PG_DATABASE" envDefault:"postgres_database"`
	MaxConns   int32         `env:"PAUTINKA_PG_MAX_CONNS" envDefault:"10"`
	Timeout    time.Duration `env:"PAUTINKA_DB_CONNECT_TIMEOUT" envDefault:"5s"`
}

// PostgresDSN возвращает DSN или собирает его из PG_* переменных
func (c DatabaseConfig) PostgresDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PGUser, c.PGPassword),
		Host:   net.JoinHostPort(c.PGHost, c.PGPort),
		Path:   "/" + c.PGDatabase,
	}
	return u.String()
}

// SQLiteDSN путь к файлу SQLite. DSN имеет приоритет.
func (c DatabaseConfig) SQLiteDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return c.SQLitePath
}

// RedisConfig кеш поиска. Пустой адрес отключает кеш.
type RedisConfig struct {
	Addr     string        `env:"PAUTINKA_REDIS_ADDR"`
	Password string        `env:"PAUTINKA_REDIS_PASSWORD"`
	DB       int           `env:"PAUTINKA_REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"PAUTINKA_SEARCH_CACHE_TTL" envDefault:"1m"`
}

// TelemetryConfig трассировка. Пустой endpoint отключает экспорт.
type TelemetryConfig struct {
	OTLPEndpoint string  `env:"PAUTINKA_OTLP_ENDPOINT"`
	ServiceName  string  `env:"PAUTINKA_SERVICE_NAME" envDefault:"pautinka"`
	SampleRatio  float64 `env:"PAUTINKA_TRACE_SAMPLE_RATIO" envDefault:"1"`
	Insecure     bool    `env:"PAUTINKA_OTLP_INSECURE" envDefault:"false"`
}

// HTTPConfig таймауты HTTP сервера
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `env:"PAUTINKA_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"PAUTINKA_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"PAUTINKA_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"PAUTINKA_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"PAUTINKA_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load читает .env (если есть), переменные окружения и флаги из args.
// Флаги имеют наивысший приоритет.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse(flag.NewFlagSet("pautinka", flag.ContinueOnError), args)
}

// Parse собирает Config из окружения процесса и флагов без чтения .env
func Parse(flags *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flags.StringVar(&cfg.Database.Driver, "db-driver", cfg.Database.Driver, "storage driver: sqlite or postgres")
	flags.StringVar(&cfg.Database.DSN, "db-dsn", cfg.Database.DSN, "storage DSN (sqlite path or postgres URL)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&cfg.Env, "env", cfg.Env, "environment: development or production")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Auth.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	if !slices.Contains(allowedAlgorithms, c.Auth.HashAlgorithm) {
		errs = append(errs, fmt.Errorf("HASH_ALGORITHM %q is not supported, use one of %s",
			c.Auth.HashAlgorithm, strings.Join(allowedAlgorithms, ", ")))
	}
	if c.Auth.TokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown db driver %q", c.Database.Driver))
	}

	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("unknown env %q", c.Env))
	}

	if c.Addr == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, errors.New("trace sample ratio must be within [0, 1]"))
	}

	return errors.Join(errs...)
}
