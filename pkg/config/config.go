package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	CORS          CORSConfig
	Log           LogConfig
	Ads           AdsConfig
	Announcements AnnouncementsConfig
	Catalog       CatalogConfig
	Exports       ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Issuer            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AdsConfig carries the settings handed to the front-end ad loader once a route is
// classified as ad eligible.
type AdsConfig struct {
	Enabled          bool
	ClientID         string
	MinContentLength int
	LoadDelay        time.Duration
}

// AnnouncementsConfig tunes the public announcement feed.
type AnnouncementsConfig struct {
	CacheTTL time.Duration
}

// CatalogConfig tunes semester/branch lookups.
type CatalogConfig struct {
	CacheTTL time.Duration
}

// ExportsConfig gates the admin export endpoint.
type ExportsConfig struct {
	Enabled bool
	MaxRows int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("ENABLE_REDIS"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Issuer:            v.GetString("JWT_ISSUER"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	minContent := v.GetInt("ADS_MIN_CONTENT_LENGTH")
	if minContent <= 0 {
		minContent = 500
	}
	cfg.Ads = AdsConfig{
		Enabled:          v.GetBool("ENABLE_ADS"),
		ClientID:         v.GetString("ADS_CLIENT_ID"),
		MinContentLength: minContent,
		LoadDelay:        parseDuration(v.GetString("ADS_LOAD_DELAY"), 2*time.Second),
	}

	cfg.Announcements = AnnouncementsConfig{
		CacheTTL: parseDuration(v.GetString("ANNOUNCEMENTS_CACHE_TTL"), 2*time.Minute),
	}

	cfg.Catalog = CatalogConfig{
		CacheTTL: parseDuration(v.GetString("CATALOG_CACHE_TTL"), time.Hour),
	}

	maxRows := v.GetInt("EXPORTS_MAX_ROWS")
	if maxRows <= 0 {
		maxRows = 1000
	}
	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
		MaxRows: maxRows,
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "gradecalc")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_REDIS", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "gradecalc-api")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_ADS", false)
	v.SetDefault("ADS_CLIENT_ID", "")
	v.SetDefault("ADS_MIN_CONTENT_LENGTH", 500)
	v.SetDefault("ADS_LOAD_DELAY", "2s")

	v.SetDefault("ANNOUNCEMENTS_CACHE_TTL", "2m")
	v.SetDefault("CATALOG_CACHE_TTL", "1h")

	v.SetDefault("ENABLE_EXPORTS", false)
	v.SetDefault("EXPORTS_MAX_ROWS", 1000)
}

// isMissingFile reports whether viper failed because the explicit .env path does not
// exist; SetConfigFile surfaces that as a filesystem error rather than ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "no such file")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
