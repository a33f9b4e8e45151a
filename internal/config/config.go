package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	RedisAddress           string
	RedisPassword          string
	RedisDB                int
	JWTSecret              string
	TokenTTL               time.Duration
	Discord                DiscordConfig
	FrontendURL            string
	ReferralPercentage     float64
	StartingCredits        float64
	StrictOrderTransitions bool
	Webhooks               WebhookConfig
	BotAPIURL              string
	BotAPISecret           string
	NotifyTimeout          time.Duration
	NotifyWorkers          int
	NotifyQueueSize        int
	ShutdownTimeout        time.Duration
	LogLevel               string
}

// DiscordConfig describes the OAuth application registered with Discord.
type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	APIURL       string
}

// WebhookConfig lists channel webhook endpoints. Empty values disable a channel.
type WebhookConfig struct {
	NewRegistration   string
	OrderConfirmation string
	OrderStatusChange string
	RedeemRequest     string
}

// Args carries command line arguments that should be parsed as config flags.
type Args []string

const (
	defaultRunAddress      = ":8080"
	defaultRedisAddress    = "localhost:6379"
	defaultTokenTTL        = 24 * time.Hour
	defaultDiscordAPIURL   = "https://discord.com/api"
	defaultFrontendURL     = "http://localhost:3000"
	defaultNotifyTimeout   = 5 * time.Second
	defaultNotifyWorkers   = 2
	defaultNotifyQueueSize = 128
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	dotEnvFile             = ".env"
)

// Load reads an optional .env file and parses configuration from flags and environment variables.
func Load(args Args) (*Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}
	return load(args, os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:    getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:   getString(lookup, "DATABASE_URI", ""),
		RedisAddress:  getString(lookup, "REDIS_ADDR", defaultRedisAddress),
		RedisPassword: getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:       getInt(lookup, "REDIS_DB", 0),
		JWTSecret:     getString(lookup, "JWT_SECRET", ""),
		Discord: DiscordConfig{
			ClientID:     getString(lookup, "DISCORD_CLIENT_ID", ""),
			ClientSecret: getString(lookup, "DISCORD_CLIENT_SECRET", ""),
			RedirectURI:  getString(lookup, "DISCORD_REDIRECT_URI", ""),
			APIURL:       getString(lookup, "DISCORD_API_URL", defaultDiscordAPIURL),
		},
		FrontendURL:            strings.TrimRight(getString(lookup, "FRONTEND_URL", defaultFrontendURL), "/"),
		StrictOrderTransitions: getBool(lookup, "ORDER_STRICT_TRANSITIONS", false),
		Webhooks: WebhookConfig{
			NewRegistration:   getString(lookup, "NEW_REG_WEBHOOK_URL", ""),
			OrderConfirmation: getString(lookup, "ORDER_CONFIRMATION_WEBHOOK_URL", ""),
			OrderStatusChange: getString(lookup, "ORDER_STATUS_CHANGE_WEBHOOK_URL", ""),
			RedeemRequest:     getString(lookup, "REDEEM_REQUEST_WEBHOOK_URL", ""),
		},
		BotAPIURL:       getString(lookup, "BOT_API_URL", ""),
		BotAPISecret:    getString(lookup, "BOT_API_SECRET", ""),
		NotifyWorkers:   getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize: getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	var err error
	if cfg.ReferralPercentage, err = getFloat(lookup, "REFERRAL_CREDIT_PERCENTAGE", 0); err != nil {
		return nil, fmt.Errorf("invalid referral percentage: %w", err)
	}
	if cfg.StartingCredits, err = getFloat(lookup, "DEFAULT_STARTING_CREDITS", 0); err != nil {
		return nil, fmt.Errorf("invalid starting credits: %w", err)
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = getString(lookup, "TOKEN_TTL", defaultTokenTTL.String())
		notifyTimeoutStr   = getString(lookup, "NOTIFY_TIMEOUT", defaultNotifyTimeout.String())
		shutdownTimeoutStr = getString(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String())
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "r", cfg.RedisAddress, "Redis address")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&notifyTimeoutStr, "notify-timeout", notifyTimeoutStr, "Timeout of a single outbound notification")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of notification workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.NotifyTimeout, err = time.ParseDuration(notifyTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid notify timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = defaultNotifyTimeout
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.ReferralPercentage < 0 {
		cfg.ReferralPercentage = 0
	}

	if cfg.StartingCredits < 0 {
		cfg.StartingCredits = 0
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) (float64, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}
