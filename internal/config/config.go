// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Database      DatabaseConfig
	Server        ServerConfig
	Logging       LoggingConfig
	CORS          CORSConfig
	JWT           JWTConfig
	MediaBasePath    string
	FFProbePath      string
	FrontendDistPath string
}

// DatabaseConfig holds persistence backend settings.
// Driver selects the adapter: "postgres" (raw PostgreSQL, Supabase or Xata
// connection strings all work through URL) or "sqlite" (local file at Path).
type DatabaseConfig struct {
	Driver string
	URL    string
	Path   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverPostgres // default driver
	}
	switch driver {
	case DriverPostgres:
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		cfg.Database.URL = dbURL
	case DriverSQLite:
		dbPath := os.Getenv("SQLITE_PATH")
		if dbPath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
		cfg.Database.Path = dbPath
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (expected %q or %q)", driver, DriverPostgres, DriverSQLite)
	}
	cfg.Database.Driver = driver

	// Server configuration
	serverPortStr := os.Getenv("PORT")
	if serverPortStr == "" {
		serverPortStr = "5000" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		// Parse comma-separated origins
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		// If no valid origins found, default to allow all
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	// JWT configuration
	jwtSecret := os.Getenv("SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	cfg.JWT.Secret = jwtSecret

	// Access token expiry (default: 1 hour)
	accessExpiryStr := os.Getenv("JWT_ACCESS_TOKEN_EXPIRY")
	if accessExpiryStr == "" {
		accessExpiryStr = "1h"
	}
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY: %w", err)
	}
	cfg.JWT.AccessTokenExpiry = accessExpiry

	// Media base path (lecture files served from here and scanned by ingestion)
	mediaBasePath := os.Getenv("MEDIA_BASE_PATH")
	if mediaBasePath == "" {
		mediaBasePath = "lectures" // default, relative to the working directory
	}
	cfg.MediaBasePath = mediaBasePath

	// ffprobe binary used by catalog ingestion (optional, resolved via PATH)
	ffprobePath := os.Getenv("FFPROBE_PATH")
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	cfg.FFProbePath = ffprobePath

	// Frontend build directory served at / when set (optional; the SPA can
	// also be hosted separately and talk to the API over CORS)
	cfg.FrontendDistPath = os.Getenv("FRONTEND_DIST_PATH")

	return cfg, nil
}

// MigrationsPath returns the golang-migrate source URL for the configured driver
func (c *Config) MigrationsPath() string {
	return "file://migrations/" + c.Database.Driver
}
