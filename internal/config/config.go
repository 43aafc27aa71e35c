package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/jwalitptl/clinic-api/pkg/auth"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	Store       string          `mapstructure:"store"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	JWT         JWTConfig       `mapstructure:"jwt"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Log         LogConfig       `mapstructure:"log"`
	CORS        CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	// Expire accepts Go durations and a "d" day suffix.
	Expire string        `mapstructure:"expire"`
	Expiry time.Duration `mapstructure:"-"`
}

type RateLimitConfig struct {
	WindowMS    int `mapstructure:"window_ms"`
	MaxRequests int `mapstructure:"max_requests"`
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMS) * time.Millisecond
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// env is the process environment overlay. Unset variables stay nil and
// leave the file or default value in place.
type env struct {
	Port                 *int     `envconfig:"PORT"`
	NodeEnv              *string  `envconfig:"NODE_ENV"`
	Store                *string  `envconfig:"STORE"`
	JWTSecret            *string  `envconfig:"JWT_SECRET"`
	JWTExpire            *string  `envconfig:"JWT_EXPIRE"`
	RateLimitWindowMS    *int     `envconfig:"RATE_LIMIT_WINDOW_MS"`
	RateLimitMaxRequests *int     `envconfig:"RATE_LIMIT_MAX_REQUESTS"`
	DatabaseURL          *string  `envconfig:"DATABASE_URL"`
	DBHost               *string  `envconfig:"DB_HOST"`
	DBPort               *int     `envconfig:"DB_PORT"`
	DBUser               *string  `envconfig:"DB_USER"`
	DBPassword           *string  `envconfig:"DB_PASSWORD"`
	DBName               *string  `envconfig:"DB_NAME"`
	DBSSLMode            *string  `envconfig:"DB_SSLMODE"`
	RedisURL             *string  `envconfig:"REDIS_URL"`
	LogLevel             *string  `envconfig:"LOG_LEVEL"`
	CORSOrigins          []string `envconfig:"CORS_ORIGINS"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("store", StorePostgres)

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_body_bytes", 10<<20)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "healthcare_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("jwt.expire", "24h")

	v.SetDefault("rate_limit.window_ms", 15*60*1000)
	v.SetDefault("rate_limit.max_requests", 100)

	v.SetDefault("log.level", "info")
}

// LoadConfig reads defaults, then the optional config file, then the process
// environment. path may be empty to search ./config.yml and
// ./config/config.yml.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var overlay env
	if err := envconfig.Process("", &overlay); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	overlay.apply(&config)

	if err := config.finalize(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (e *env) apply(c *Config) {
	setInt(&c.Server.Port, e.Port)
	setString(&c.Environment, e.NodeEnv)
	setString(&c.Store, e.Store)
	setString(&c.JWT.Secret, e.JWTSecret)
	setString(&c.JWT.Expire, e.JWTExpire)
	setInt(&c.RateLimit.WindowMS, e.RateLimitWindowMS)
	setInt(&c.RateLimit.MaxRequests, e.RateLimitMaxRequests)
	setString(&c.Database.URL, e.DatabaseURL)
	setString(&c.Database.Host, e.DBHost)
	setInt(&c.Database.Port, e.DBPort)
	setString(&c.Database.User, e.DBUser)
	setString(&c.Database.Password, e.DBPassword)
	setString(&c.Database.Name, e.DBName)
	setString(&c.Database.SSLMode, e.DBSSLMode)
	setString(&c.Redis.URL, e.RedisURL)
	setString(&c.Log.Level, e.LogLevel)
	if len(e.CORSOrigins) > 0 {
		c.CORS.Origins = e.CORSOrigins
	}
}

func (c *Config) finalize() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	if c.Store != StorePostgres && c.Store != StoreMemory {
		return fmt.Errorf("invalid store %q: must be %q or %q", c.Store, StorePostgres, StoreMemory)
	}

	expiry, err := auth.ParseExpiry(c.JWT.Expire)
	if err != nil {
		return fmt.Errorf("invalid JWT_EXPIRE: %w", err)
	}
	c.JWT.Expiry = expiry

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.RateLimit.WindowMS <= 0 {
		c.RateLimit.WindowMS = 15 * 60 * 1000
	}
	if c.RateLimit.MaxRequests <= 0 {
		c.RateLimit.MaxRequests = 100
	}
	return nil
}

// IsProduction reports whether NODE_ENV selects production behavior.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
