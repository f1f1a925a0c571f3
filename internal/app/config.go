package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/transparency-backend/internal/data/db"
	"github.com/yungbote/transparency-backend/internal/platform/envutil"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

const (
	AIModeHTTP      = "http"
	AIModeHeuristic = "heuristic"
)

type ServerConfig struct {
	Port                   int    `yaml:"port"`
	Environment            string `yaml:"environment"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

type DatabaseConfig struct {
	Driver           string `yaml:"driver"`
	URL              string `yaml:"url"`
	SQLitePath       string `yaml:"sqlite_path"`
	PostgresHost     string `yaml:"postgres_host"`
	PostgresPort     string `yaml:"postgres_port"`
	PostgresUser     string `yaml:"postgres_user"`
	PostgresPassword string `yaml:"postgres_password"`
	PostgresName     string `yaml:"postgres_name"`
	MaxOpenConns     int    `yaml:"max_open_conns"`
	MaxIdleConns     int    `yaml:"max_idle_conns"`
}

type AIConfig struct {
	Mode           string `yaml:"mode"`
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

type RenderConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type HTTPConfig struct {
	CORSOrigins []string `yaml:"cors_origins"`
}

type RedisConfig struct {
	Addr           string `yaml:"addr"`
	LockTTLSeconds int    `yaml:"lock_ttl_seconds"`
}

type StorageConfig struct {
	ReportBucket string `yaml:"report_bucket"`
	CDNDomain    string `yaml:"cdn_domain"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	AI       AIConfig       `yaml:"ai"`
	Render   RenderConfig   `yaml:"render"`
	HTTP     HTTPConfig     `yaml:"http"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Otel     OtelConfig     `yaml:"otel"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Port: 4000, Environment: "development", ShutdownTimeoutSeconds: 10},
		Auth:   AuthConfig{JWTSecret: "dev-secret", TokenTTLHours: 168},
		Database: DatabaseConfig{
			Driver:       db.DriverPostgres,
			SQLitePath:   "transparency.db",
			PostgresHost: "localhost",
			PostgresPort: "5432",
			PostgresUser: "postgres",
			PostgresName: "transparency",
		},
		AI:     AIConfig{Mode: AIModeHTTP, URL: "http://127.0.0.1:8000", TimeoutSeconds: 15, MaxRetries: 2},
		Render: RenderConfig{TimeoutSeconds: 30},
		HTTP:   HTTPConfig{CORSOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"}},
		Redis:  RedisConfig{LockTTLSeconds: 30},
		Otel:   OtelConfig{SampleRatio: 0.1},
	}
}

// LoadConfig layers defaults, the YAML file named by CONFIG_PATH and the
// environment, in that order.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()
	if path := envutil.String("CONFIG_PATH", "", log); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
		log.Info("Loaded config file", "path", path)
	}
	applyEnv(&cfg, log)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Auth.JWTSecret == "dev-secret" && isProduction(cfg.Server.Environment) {
		log.Warn("JWT_SECRET is the development default")
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, log *logger.Logger) {
	cfg.Server.Port = envutil.Int("PORT", cfg.Server.Port, log)
	cfg.Server.Environment = envutil.String("APP_ENV", cfg.Server.Environment, log)
	cfg.Server.ShutdownTimeoutSeconds = envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", cfg.Server.ShutdownTimeoutSeconds, log)

	cfg.Auth.JWTSecret = envutil.String("JWT_SECRET", cfg.Auth.JWTSecret, log)
	cfg.Auth.TokenTTLHours = envutil.Int("TOKEN_TTL_HOURS", cfg.Auth.TokenTTLHours, log)

	d := &cfg.Database
	d.Driver = strings.ToLower(envutil.String("DB_DRIVER", d.Driver, log))
	d.URL = envutil.String("DATABASE_URL", d.URL, log)
	d.SQLitePath = envutil.String("SQLITE_PATH", d.SQLitePath, log)
	d.PostgresHost = envutil.String("POSTGRES_HOST", d.PostgresHost, log)
	d.PostgresPort = envutil.String("POSTGRES_PORT", d.PostgresPort, log)
	d.PostgresUser = envutil.String("POSTGRES_USER", d.PostgresUser, log)
	d.PostgresPassword = envutil.String("POSTGRES_PASSWORD", d.PostgresPassword, nil)
	d.PostgresName = envutil.String("POSTGRES_NAME", d.PostgresName, log)
	d.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", d.MaxOpenConns, log)
	d.MaxIdleConns = envutil.Int("DB_MAX_IDLE_CONNS", d.MaxIdleConns, log)

	cfg.AI.Mode = strings.ToLower(envutil.String("AI_GATEWAY_MODE", cfg.AI.Mode, log))
	cfg.AI.URL = envutil.String("AI_SERVICE_URL", cfg.AI.URL, log)
	cfg.AI.TimeoutSeconds = envutil.Int("AI_TIMEOUT_SECONDS", cfg.AI.TimeoutSeconds, log)
	cfg.AI.MaxRetries = envutil.Int("AI_MAX_RETRIES", cfg.AI.MaxRetries, log)

	cfg.Render.TimeoutSeconds = envutil.Int("RENDER_TIMEOUT_SECONDS", cfg.Render.TimeoutSeconds, log)
	cfg.HTTP.CORSOrigins = envutil.List("CORS_ORIGIN", cfg.HTTP.CORSOrigins, log)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr, log)
	cfg.Redis.LockTTLSeconds = envutil.Int("INGEST_LOCK_TTL_SECONDS", cfg.Redis.LockTTLSeconds, log)

	cfg.Storage.ReportBucket = envutil.String("REPORT_GCS_BUCKET", cfg.Storage.ReportBucket, log)
	cfg.Storage.CDNDomain = envutil.String("REPORT_CDN_DOMAIN", cfg.Storage.CDNDomain, log)

	o := &cfg.Otel
	o.Enabled = envutil.Bool("OTEL_ENABLED", o.Enabled, log)
	o.ServiceName = envutil.String("OTEL_SERVICE_NAME", o.ServiceName, log)
	o.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", o.Endpoint, log)
	o.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", o.Headers, nil)
	o.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", o.Insecure, log)
	o.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", o.SampleRatio, log)
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.AI.Mode {
	case AIModeHTTP:
		if strings.TrimSpace(c.AI.URL) == "" {
			return fmt.Errorf("AI_SERVICE_URL required when AI_GATEWAY_MODE=http")
		}
	case AIModeHeuristic:
	default:
		return fmt.Errorf("unsupported AI_GATEWAY_MODE %q", c.AI.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET required")
	}
	return nil
}

// DatabaseURL prefers an explicit url and otherwise assembles one from the
// discrete postgres settings.
func (c Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	d := c.Database
	return db.PostgresDSN(d.PostgresHost, d.PostgresPort, d.PostgresUser, d.PostgresPassword, d.PostgresName)
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Server.Port) }

func (c Config) TokenTTL() time.Duration { return time.Duration(c.Auth.TokenTTLHours) * time.Hour }

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func isProduction(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return true
	default:
		return false
	}
}
