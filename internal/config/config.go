package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	DB     DatabaseConfig
	App    AppConfig
	Logger LoggerConfig
}

// DatabaseConfig holds configuration for the database.
// A PostgreSQL URL selects PostgreSQL, otherwise a SQLite file is used.
type DatabaseConfig struct {
	URL              string  `mapstructure:"DATABASE_URL"`
	SQLitePath       string  `mapstructure:"SQLITE_PATH" validate:"required_without=URL"`
	MaxOpenConns     int     `mapstructure:"DB_MAX_OPEN_CONNS" validate:"gte=1"`
	MaxIdleConns     int     `mapstructure:"DB_MAX_IDLE_CONNS" validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime  int     `mapstructure:"DB_CONN_MAX_LIFETIME" validate:"gte=0"`  // seconds
	ConnMaxIdleTime  int     `mapstructure:"DB_CONN_MAX_IDLE_TIME" validate:"gte=0"` // seconds
	SlowQuerySeconds float64 `mapstructure:"DB_SLOW_QUERY_SECONDS" validate:"gte=0"`
}

// AppConfig holds configuration for the application servers
type AppConfig struct {
	Env                        string   `mapstructure:"APP_ENV"`
	HTTPPort                   string   `mapstructure:"PORT" validate:"required,numeric"`
	GRPCPort                   string   `mapstructure:"GRPC_PORT" validate:"required,numeric,nefield=HTTPPort"`
	ShutdownTimeoutSeconds     int      `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" validate:"gte=1"`
	HealthCheckIntervalSeconds int      `mapstructure:"HEALTH_CHECK_INTERVAL_SECONDS" validate:"gte=1"`
	CORSAllowedOrigins         []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level          string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	Format         string `mapstructure:"LOG_FORMAT" validate:"oneof=json console"`
	OutputPath     string `mapstructure:"LOG_OUTPUT_PATH"`
	EnableSampling bool   `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName    string `mapstructure:"SERVICE_NAME" validate:"required"`
	ServiceVersion string `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from path/app.env and the environment.
// Environment variables take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.DB.URL = strings.TrimSpace(v.GetString("DATABASE_URL"))
	config.DB.SQLitePath = v.GetString("SQLITE_PATH")
	config.DB.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	config.DB.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")
	config.DB.ConnMaxLifetime = v.GetInt("DB_CONN_MAX_LIFETIME")
	config.DB.ConnMaxIdleTime = v.GetInt("DB_CONN_MAX_IDLE_TIME")
	config.DB.SlowQuerySeconds = v.GetFloat64("DB_SLOW_QUERY_SECONDS")

	config.App.Env = v.GetString("APP_ENV")
	config.App.HTTPPort = v.GetString("PORT")
	config.App.GRPCPort = v.GetString("GRPC_PORT")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")
	config.App.HealthCheckIntervalSeconds = v.GetInt("HEALTH_CHECK_INTERVAL_SECONDS")
	config.App.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	config.Logger.Level = strings.ToLower(v.GetString("LOG_LEVEL"))
	config.Logger.Format = strings.ToLower(v.GetString("LOG_FORMAT"))
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "/tmp/test.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("DB_SLOW_QUERY_SECONDS", 0.2)

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("GRPC_PORT", "50051")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("HEALTH_CHECK_INTERVAL_SECONDS", 15)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// Logger defaults
	_ = v.BindEnv("APP_ENV")
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("SERVICE_NAME", "user-crud-service")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
}

// Validate checks the loaded values before any dependency is built
func (c *Config) Validate() error {
	validate := validator.New()
	for _, section := range []any{c.DB, c.App, c.Logger} {
		if err := validate.Struct(section); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

// UsePostgres reports whether DATABASE_URL selects PostgreSQL
func (c *DatabaseConfig) UsePostgres() bool {
	return c.URL != ""
}

// DSN returns the PostgreSQL connection URL. The postgres:// scheme is
// rewritten to postgresql:// so both spellings are accepted.
func (c *DatabaseConfig) DSN() string {
	if rest, ok := strings.CutPrefix(c.URL, "postgres://"); ok {
		return "postgresql://" + rest
	}
	return c.URL
}

// splitList parses a comma separated setting, dropping blank entries
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
