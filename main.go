package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/internal/database"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/leaderboard"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hangman",
		Short:         "Hangman game server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := words.Init(); err != nil {
				return fmt.Errorf("load phrases: %w", err)
			}
			return nil
		},
	}
	serve := serveCmd()
	root.AddCommand(serve, playCmd())
	// Running the bare binary serves, like the old single-purpose server.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
				zerolog.SetGlobalLevel(lvl)
			}
			if addr == "" {
				addr = ":" + cfg.Port
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := serve(ctx, cfg, addr); err != nil {
				log.Error().Err(err).Msg("server exited")
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default \":$PORT\")")
	return cmd
}

func serve(ctx context.Context, cfg config, addr string) error {
	scores, closeScores, err := openLeaderboard(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeScores()

	games := store.NewMemoryStore(store.WithTTL(cfg.GameTTL))
	go games.Run(ctx, cfg.SweepInterval)

	srv, err := httpserver.New(games, scores, httpserver.Config{
		ClientOrigin:   cfg.ClientOrigin,
		SessionSecret:  cfg.SessionSecret,
		SessionCookie:  cfg.SessionCookie,
		SecureCookies:  cfg.SecureCookies,
		HandlerTimeout: cfg.HandlerTimeout,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("addr", addr).
		Str("leaderboard", cfg.Driver).
		Dur("gameTTL", cfg.GameTTL).
		Int("phrases", words.Count()).
		Msg("starting hangman server")
	return srv.Run(ctx, addr)
}

// openLeaderboard connects the configured leaderboard backend.
func openLeaderboard(ctx context.Context, cfg config) (leaderboard.Store, func(), error) {
	if cfg.Driver == "redis" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis at %s: %w", cfg.RedisAddr, err)
		}
		return leaderboard.NewRedisStore(rdb, cfg.RedisKey), func() { _ = rdb.Close() }, nil
	}

	d, err := database.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(ctx, d, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", d, err)
	}
	if err := database.Migrate(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return leaderboard.NewSQLStore(db, d), func() { _ = db.Close() }, nil
}
