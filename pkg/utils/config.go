package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver         string
	URL            string
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MaxConns       int32
	SQLitePath     string
	ConnectRetries int
	RetryDelay     time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	// Ephemeral is set when Secret was generated for this process only.
	Ephemeral bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type SeedConfig struct {
	CSVPath string
}

// LoadConfig reads an optional .env file, then the process environment.
// It is called once at startup; the result is passed down explicitly.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "restaurant-menu")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("READ_TIMEOUT", 15*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_CONNECT_RETRIES", 5)
	v.SetDefault("DB_RETRY_DELAY", 2*time.Second)
	v.SetDefault("SQLITE_PATH", "fallback.db")
	v.SetDefault("JWT_EXPIRY", 15*time.Minute)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Server: ServerConfig{
			ReadTimeout:     v.GetDuration("READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:            v.GetString("DATABASE_URL"),
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			Name:           v.GetString("DB_NAME"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASS"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			SQLitePath:     v.GetString("SQLITE_PATH"),
			ConnectRetries: v.GetInt("DB_CONNECT_RETRIES"),
			RetryDelay:     v.GetDuration("DB_RETRY_DELAY"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: v.GetDuration("JWT_EXPIRY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Seed: SeedConfig{
			CSVPath: v.GetString("SEED_CSV"),
		},
	}

	config.Database.Driver = resolveDriver(config.Database)
	if config.Database.Driver == DriverSQLite && config.Database.URL != "" {
		// sqlite:///menu.db -> menu.db
		config.Database.SQLitePath = config.Database.URL[len("sqlite:///"):]
	}

	if config.JWT.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		config.JWT.Secret = secret
		config.JWT.Ephemeral = true
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	if c.Database.Driver == DriverSQLite && c.Database.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required when no Postgres database is configured")
	}
	return nil
}

// resolveDriver picks Postgres when DATABASE_URL or DB_HOST is set,
// otherwise the SQLite fallback file.
func resolveDriver(db DatabaseConfig) string {
	url := strings.ToLower(db.URL)
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return DriverSQLite
	case url != "", db.Host != "":
		return DriverPostgres
	default:
		return DriverSQLite
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
