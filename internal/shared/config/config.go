package config

import (
	"fmt"
	"strconv"
	"time"

	"marstiles-server/internal/shared/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Tiles     TilesConfig
	Gemini    GeminiConfig
	Redis     RedisConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Path           string
	MigrationsPath string
}

type TilesConfig struct {
	BaseDir string
	MaxAge  int // seconds, for Cache-Control
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

// Load reads configuration from .env / environment variables into an explicit
// struct. The struct is passed by reference to every component; there is no
// package-level configuration state.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config := &Config{
		Server:    loadServerConfig(),
		Database:  loadDatabaseConfig(),
		Tiles:     loadTilesConfig(),
		Gemini:    loadGeminiConfig(),
		Redis:     loadRedisConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	readTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_READ_TIMEOUT_SECONDS", "15"))
	writeTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_WRITE_TIMEOUT_SECONDS", "60"))
	idleTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_IDLE_TIMEOUT_SECONDS", "60"))

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Path:           utils.GetEnv("DB_PATH", "locations.db"),
		MigrationsPath: utils.GetEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadTilesConfig() TilesConfig {
	maxAge, _ := strconv.Atoi(utils.GetEnv("TILES_MAX_AGE_SECONDS", "86400"))

	return TilesConfig{
		BaseDir: utils.GetEnv("TILES_BASE_DIR", "tiles"),
		MaxAge:  maxAge,
	}
}

func loadGeminiConfig() GeminiConfig {
	timeout, _ := strconv.Atoi(utils.GetEnv("GEMINI_TIMEOUT_SECONDS", "30"))

	return GeminiConfig{
		APIKey:  utils.GetEnv("GEMINI_API_KEY", ""),
		Model:   utils.GetEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		BaseURL: utils.GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		Timeout: time.Duration(timeout) * time.Second,
	}
}

func loadRedisConfig() RedisConfig {
	enabled := utils.GetEnv("REDIS_ENABLED", "false") == "true"
	db, _ := strconv.Atoi(utils.GetEnv("REDIS_DB", "0"))
	cacheTTL, _ := strconv.Atoi(utils.GetEnv("REDIS_CACHE_TTL_SECONDS", "300"))

	return RedisConfig{
		Enabled:  enabled,
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       db,
		CacheTTL: time.Duration(cacheTTL) * time.Second,
	}
}

func loadFrontendConfig() FrontendConfig {
	corsDebug := utils.GetEnv("CORS_DEBUG", "") == "true"

	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: corsDebug,
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	jsonFormat := environment == "production"

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: jsonFormat,
	}
}

func loadRateLimitConfig() RateLimitConfig {
	enabled := utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true"
	requestsPerSecond, _ := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "10"), 64)
	burstSize, _ := strconv.Atoi(utils.GetEnv("RATE_LIMIT_BURST_SIZE", "20"))

	return RateLimitConfig{
		Enabled:           enabled,
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("DB_PATH is required")
	}

	if c.Tiles.BaseDir == "" {
		return fmt.Errorf("TILES_BASE_DIR is required")
	}

	if c.Gemini.APIKey == "" {
		// Tile serving and location CRUD still work without a key; search
		// requests fail with an external error until one is provided.
		fmt.Println("GEMINI_API_KEY not set, search endpoint will be unavailable")
	}

	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
