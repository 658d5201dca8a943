package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration

	APIBaseURL string
	APIToken   string
	Lang       string
	DailySteps int

	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

func WithAPIBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.APIBaseURL = baseURL
	}
}

func WithAPIToken(token string) Option {
	return func(c *Config) {
		c.APIToken = token
	}
}

func WithLang(lang string) Option {
	return func(c *Config) {
		c.Lang = lang
	}
}

// WithDailySteps sets how many forecast days are requested. Non-positive values are ignored.
func WithDailySteps(steps int) Option {
	return func(c *Config) {
		if steps > 0 {
			c.DailySteps = steps
		}
	}
}

func WithBreaker(maxFailures uint32, openTimeout time.Duration) Option {
	return func(c *Config) {
		if maxFailures > 0 {
			c.BreakerMaxFailures = maxFailures
		}
		if openTimeout > 0 {
			c.BreakerOpenTimeout = openTimeout
		}
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:        "production",
		LogLevel:           zerolog.InfoLevel,
		HTTPTimeout:        10 * time.Second,
		APIBaseURL:         "https://api.caiyunapp.com",
		Lang:               "zh_CN",
		DailySteps:         5,
		BreakerMaxFailures: 5,
		BreakerOpenTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables. Values from a
// .env file in the working directory are used when the variable is unset.
func LoadFromEnv() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithAPIBaseURL(getEnvOrDefault("WEATHER_API_BASE_URL", "https://api.caiyunapp.com")),
		WithAPIToken(os.Getenv("WEATHER_API_TOKEN")),
		WithLang(getEnvOrDefault("WEATHER_API_LANG", "zh_CN")),
		WithDailySteps(getEnvInt("WEATHER_DAILY_STEPS", 5)),
		WithBreaker(
			uint32(getEnvInt("BREAKER_MAX_FAILURES", 5)),
			getDurationEnvOrDefault("BREAKER_OPEN_TIMEOUT", 30*time.Second),
		),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil && intVal >= 0 {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}
