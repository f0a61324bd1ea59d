package infra

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         int
	CORSOrigins  []string
	CookieSecure bool
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret          string
	TokenTTL           time.Duration
	LoginRatePerMinute int
}

type FirewallConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Disabled   bool
	BlockAlias string
	Timeout    time.Duration
}

type CacheConfig struct {
	StatsTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type SchedulerConfig struct {
	RouterOfflineAfter time.Duration
	LogRetention       time.Duration
}

type Config struct {
	Env                    string
	LogLevel               string
	LogFormat              string
	UnassignedStaffSeesAll bool

	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Firewall  FirewallConfig
	Cache     CacheConfig
	Scheduler SchedulerConfig
}

func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// LoadConfig reads configuration from the environment, after loading an
// optional .env file from the working directory.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env:                    strings.ToLower(v.GetString("APP_ENV")),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LogFormat:              v.GetString("LOG_FORMAT"),
		UnassignedStaffSeesAll: v.GetBool("UNASSIGNED_STAFF_SEES_ALL"),
		Server: ServerConfig{
			Port:         v.GetInt("PORT"),
			CORSOrigins:  splitList(v.GetString("CORS_ORIGINS")),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute,
		},
		Auth: AuthConfig{
			JWTSecret:          v.GetString("JWT_SECRET"),
			TokenTTL:           time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour,
			LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
		},
		Firewall: FirewallConfig{
			Host:       v.GetString("PFSENSE_HOST"),
			Port:       v.GetInt("PFSENSE_PORT"),
			Username:   v.GetString("PFSENSE_USERNAME"),
			Password:   v.GetString("PFSENSE_PASSWORD"),
			Disabled:   v.GetBool("PFSENSE_DISABLED"),
			BlockAlias: v.GetString("PFSENSE_BLOCK_ALIAS"),
			Timeout:    time.Duration(v.GetInt("PFSENSE_TIMEOUT_SECONDS")) * time.Second,
		},
		Cache: CacheConfig{
			StatsTTL:      time.Duration(v.GetInt("STATS_CACHE_TTL_SECONDS")) * time.Second,
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
		},
		Scheduler: SchedulerConfig{
			RouterOfflineAfter: time.Duration(v.GetInt("ROUTER_OFFLINE_AFTER_MINUTES")) * time.Minute,
			LogRetention:       time.Duration(v.GetInt("LOG_RETENTION_DAYS")) * 24 * time.Hour,
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	// An appliance without a host can only run disabled.
	if cfg.Firewall.Host == "" {
		cfg.Firewall.Disabled = true
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("UNASSIGNED_STAFF_SEES_ALL", true)

	v.SetDefault("PORT", 8080)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("COOKIE_SECURE", false)

	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)

	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)

	v.SetDefault("PFSENSE_PORT", 443)
	v.SetDefault("PFSENSE_DISABLED", false)
	v.SetDefault("PFSENSE_BLOCK_ALIAS", "netops_blocked")
	v.SetDefault("PFSENSE_TIMEOUT_SECONDS", 10)

	v.SetDefault("STATS_CACHE_TTL_SECONDS", 30)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ROUTER_OFFLINE_AFTER_MINUTES", 10)
	v.SetDefault("LOG_RETENTION_DAYS", 90)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
