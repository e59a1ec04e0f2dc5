package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dwarvesf/funds-backend/internal/types/environments"
)

type AppConfig struct {
	Environment environments.Environment
	ApiServer   ApiServerConfig
	Postgres    DBConnection
	Auth        AuthConfig
	Funds       FundsConfig
}

type ApiServerConfig struct {
	Port           string
	AllowedOrigins string
}

type DBConnection struct {
	Host string
	Port string
	User string
	Name string
	Pass string

	SSLMode string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type FundsConfig struct {
	// CatalogCacheTTL bounds how long the active platform lists are served from memory.
	CatalogCacheTTL time.Duration
	// BacklogInterval is the cron expression used to refresh the pending backlog gauge.
	BacklogInterval string
	// LockTimeout caps how long a settlement waits on the user's balance row.
	LockTimeout time.Duration
	// UptimeWebhookURL is pinged after every successful backlog refresh. Optional.
	UptimeWebhookURL string
}

func New() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// this will not override env variables if they already exist
	godotenv.Load(".env." + env)

	return &AppConfig{
		Environment: environments.Parse(env),
		ApiServer: ApiServerConfig{
			Port:           envVarOrDefault("PORT", "8080"),
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		},
		Postgres: DBConnection{
			Host:    os.Getenv("DB_HOST"),
			Port:    os.Getenv("DB_PORT"),
			User:    os.Getenv("DB_USER"),
			Name:    os.Getenv("DB_NAME"),
			Pass:    os.Getenv("DB_PASS"),
			SSLMode: envVarOrDefault("DB_SSL_MODE", "disable"),

			MaxOpenConns:    envVarAtoiOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envVarAtoiOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(envVarAtoiOrDefault("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Funds: FundsConfig{
			CatalogCacheTTL:  time.Duration(envVarAtoiOrDefault("FUNDS_CATALOG_CACHE_TTL_SECONDS", 60)) * time.Second,
			BacklogInterval:  envVarOrDefault("FUNDS_BACKLOG_INTERVAL", "@every 1m"),
			LockTimeout:      time.Duration(envVarAtoiOrDefault("FUNDS_LOCK_TIMEOUT_SECONDS", 10)) * time.Second,
			UptimeWebhookURL: os.Getenv("UPTIME_WEBHOOK_URL"),
		},
	}
}

func envVarOrDefault(envName, fallback string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return fallback
}

func envVarAtoiOrDefault(envName string, fallback int) int {
	if os.Getenv(envName) == "" {
		return fallback
	}
	return envVarAtoi(envName)
}

func envVarAtoi(envName string) int {
	valueStr := os.Getenv(envName)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		panic(err)
	}

	return value
}
