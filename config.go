package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// config is the process configuration, read from the environment
// (optionally seeded from .env by godotenv).
type config struct {
	Port           string
	LogLevel       string
	Driver         string // sqlite | postgres | redis
	DatabaseURL    string
	RedisAddr      string
	RedisDB        int
	RedisKey       string
	SessionSecret  string
	SessionCookie  string
	SecureCookies  bool
	ClientOrigin   string
	GameTTL        time.Duration
	SweepInterval  time.Duration
	HandlerTimeout time.Duration
}

func loadConfig() (config, error) {
	cfg := config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Driver:        getEnv("LEADERBOARD_DRIVER", "sqlite"),
		DatabaseURL:   getEnv("DATABASE_URL", "./data/hangman.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisKey:      getEnv("REDIS_KEY", "hangman:scores"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		SessionCookie: getEnv("SESSION_COOKIE", "hangman"),
		SecureCookies: os.Getenv("NODE_ENV") == "production",
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return cfg, err
	}
	if cfg.GameTTL, err = envDuration("GAME_TTL", 0); err != nil {
		return cfg, err
	}
	if cfg.SweepInterval, err = envDuration("GAME_SWEEP_INTERVAL", time.Minute); err != nil {
		return cfg, err
	}
	if cfg.HandlerTimeout, err = envDuration("HANDLER_TIMEOUT", 10*time.Second); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", k, v)
	}
	return d, nil
}
