package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Steam       SteamConfig
	Marketplace MarketplaceConfig
	Browser     BrowserConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Server      ServerConfig
	Logging     LoggingConfig
}

type SteamConfig struct {
	StoreBaseURL   string
	Country        string
	Language       string
	GamesPerPage   int
	PagePause      time.Duration
	RequestTimeout time.Duration
}

type MarketplaceConfig struct {
	BaseURL        string
	Currency       string
	OfferWait      time.Duration
	LinkWait       time.Duration
	ConsentTimeout time.Duration
	RetryPause     time.Duration
	GamePause      time.Duration
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	QuoteTTL time.Duration
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Steam: SteamConfig{
			StoreBaseURL:   getEnvOrDefault("STEAM_STORE_BASE_URL", "https://store.steampowered.com"),
			Country:        getEnvOrDefault("STEAM_COUNTRY", "fr"),
			Language:       getEnvOrDefault("STEAM_LANGUAGE", "fr"),
			GamesPerPage:   getIntOrDefault("STEAM_GAMES_PER_PAGE", 50),
			PagePause:      getDurationOrDefault("STEAM_PAGE_PAUSE", time.Second),
			RequestTimeout: getDurationOrDefault("STEAM_REQUEST_TIMEOUT", 15*time.Second),
		},
		Marketplace: MarketplaceConfig{
			BaseURL:        getEnvOrDefault("MARKETPLACE_BASE_URL", "https://www.goclecd.fr"),
			Currency:       getEnvOrDefault("MARKETPLACE_CURRENCY", "EUR"),
			OfferWait:      getDurationOrDefault("MARKETPLACE_OFFER_WAIT", 25*time.Second),
			LinkWait:       getDurationOrDefault("MARKETPLACE_LINK_WAIT", 10*time.Second),
			ConsentTimeout: getDurationOrDefault("MARKETPLACE_CONSENT_TIMEOUT", time.Second),
			RetryPause:     getDurationOrDefault("MARKETPLACE_RETRY_PAUSE", time.Second),
			GamePause:      getDurationOrDefault("MARKETPLACE_GAME_PAUSE", 400*time.Millisecond),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "fr-FR,fr;q=0.9,en;q=0.8"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "Europe/Paris"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "fr-FR"),
		},
		Database: DatabaseConfig{
			Enabled:  getBoolOrDefault("DB_ENABLED", false),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getIntOrDefault("DB_PORT", 5432),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", ""),
			DBName:   getEnvOrDefault("DB_NAME", "game_prices"),
		},
		Redis: RedisConfig{
			Enabled:  getBoolOrDefault("REDIS_ENABLED", false),
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntOrDefault("REDIS_DB", 0),
			QuoteTTL: getDurationOrDefault("REDIS_QUOTE_TTL", 6*time.Hour),
		},
		Server: ServerConfig{
			Port:            getIntOrDefault("SERVER_PORT", 8080),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Steam.GamesPerPage < 1 {
		return fmt.Errorf("STEAM_GAMES_PER_PAGE must be at least 1")
	}

	if c.Marketplace.OfferWait <= 0 {
		return fmt.Errorf("MARKETPLACE_OFFER_WAIT must be positive")
	}

	if c.Marketplace.LinkWait <= 0 {
		return fmt.Errorf("MARKETPLACE_LINK_WAIT must be positive")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
