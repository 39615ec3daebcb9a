package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartquiz-service/internal/app"
	"smartquiz-service/internal/auth"
	"smartquiz-service/internal/config"
	"smartquiz-service/internal/generator"
	"smartquiz-service/internal/infra/memory"
	pgstore "smartquiz-service/internal/infra/postgres"
	rediscache "smartquiz-service/internal/infra/redis"
	"smartquiz-service/internal/lib/slogcolor"
	transport "smartquiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	logger := slog.New(slogcolor.New(os.Stdout, slog.LevelInfo))

	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "5000"
	}

	var topics app.TopicRepository
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		topics = pgstore.NewTopicRepository(pool)
	} else {
		logger.Warn("no postgres url configured, topics are held in memory")
		topics = memory.NewTopicRepository()
	}

	var safe app.SafeTopicSource
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
		safe = rediscache.NewSafeTopicCache(client, topics, ttl)
	}

	gen := generator.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if !gen.Configured() {
		logger.Warn("OPENAI_API_KEY not set, quiz generation will be rejected")
	}

	service := app.NewTopicService(topics, safe, gen, logger)
	handler := transport.NewTopicHandler(service, logger)
	router := transport.NewRouter(handler, auth.NewVerifier(jwtSecret(cfg, logger)))

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation calls can be slow
	}

	go func() {
		logger.Info("starting smartquiz service", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server...")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadConfig reads the YAML config, falling back to env-only defaults when
// the file is absent so dev setups can run with nothing but env vars.
func loadConfig(path string, logger *slog.Logger) (config.Config, error) {
	cfg, err := config.Load(path)
	if os.IsNotExist(err) {
		logger.Warn("config file not found, using environment defaults", "path", path)
		return config.Default(), nil
	}
	return cfg, err
}

func jwtSecret(cfg config.Config, logger *slog.Logger) string {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret
	}
	logger.Warn("JWT_SECRET not set, using insecure development secret")
	return "dev-secret"
}
