package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/dice-roller/internal/catalog"
	"github.com/KirkDiggler/dice-roller/internal/config"
	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/roller"
	"github.com/KirkDiggler/dice-roller/internal/pkg/clock"
	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
	"github.com/KirkDiggler/dice-roller/internal/pkg/rng"
	"github.com/KirkDiggler/dice-roller/internal/redis"
	rollhistory "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history"
)

var (
	grpcPort       int
	logLevel       string
	historyBackend string
	redisAddr      string
	redisTLS       bool
	sqlitePath     string
	rollSeed       int64
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the dice roller gRPC server. Settings come from DICEROLLER_* environment
variables; flags override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serverCmd.Flags().StringVar(&historyBackend, "history", config.HistoryMemory, "Roll history backend (memory, redis, sqlite)")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address for the redis history backend")
	serverCmd.Flags().BoolVar(&redisTLS, "redis-tls", false, "Connect to Redis over TLS")
	serverCmd.Flags().StringVar(&sqlitePath, "sqlite-path", "dice_rolls.db", "Database file for the sqlite history backend")
	serverCmd.Flags().Int64Var(&rollSeed, "seed", 0, "Seed for reproducible rolls (0 uses real randomness)")
}

// loadConfig reads the environment and applies explicitly set flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("history") {
		cfg.HistoryBackend = historyBackend
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr = redisAddr
	}
	if flags.Changed("redis-tls") {
		cfg.RedisTLS = redisTLS
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = sqlitePath
	}
	if flags.Changed("seed") {
		cfg.RollSeed = rollSeed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	historyRepo, closeHistory, err := buildHistory(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create roll history: %w", err)
	}
	defer func() {
		if err := closeHistory.Close(); err != nil {
			slog.Warn("Failed to close roll history", "error", err)
		}
	}()

	eventBus := events.NewBus()
	catalog.LogChanges(eventBus, logger)

	diceCatalog, err := catalog.NewManager(&catalog.Config{
		Roller:   rng.New(cfg.RollSeed),
		EventBus: eventBus,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create dice catalog: %w", err)
	}

	diceService, err := roller.NewOrchestrator(&roller.Config{
		Catalog:     diceCatalog,
		HistoryRepo: historyRepo,
	})
	if err != nil {
		return fmt.Errorf("failed to create dice service: %w", err)
	}

	diceHandler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{
		DiceService: diceService,
	})
	if err != nil {
		return fmt.Errorf("failed to create dice handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterDiceServiceServer(srv, diceHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting",
			"port", cfg.GRPCPort,
			"history", cfg.HistoryBackend,
			"seeded", cfg.RollSeed != 0)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// buildHistory creates the configured roll history and whatever must be closed with it
func buildHistory(ctx context.Context, cfg *config.Config) (rollhistory.Repository, io.Closer, error) {
	clk := clock.New()
	ids := idgen.NewUUID("roll")

	switch cfg.HistoryBackend {
	case config.HistoryRedis:
		client, err := redis.NewClient(cfg.RedisAddr, redisOptions(cfg))
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}

		repo, err := rollhistory.NewRedis(&rollhistory.RedisConfig{
			Client:      client,
			Clock:       clk,
			IDGenerator: ids,
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, client, nil

	case config.HistorySQLite:
		db, err := rollhistory.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		repo, err := rollhistory.NewSQLite(ctx, &rollhistory.SQLiteConfig{
			DB:          db,
			Clock:       clk,
			IDGenerator: ids,
		})
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, db, nil

	default:
		repo, err := rollhistory.NewMemory(&rollhistory.MemoryConfig{
			Clock:       clk,
			IDGenerator: ids,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, closerFunc(func() error { return nil }), nil
	}
}

// redisOptions builds the client options for the redis history backend
func redisOptions(cfg *config.Config) *redis.Options {
	return &redis.Options{
		PoolSize:        10,
		MinIdleConns:    2,
		ConnMaxIdleTime: 5 * time.Minute,
		MaxRetries:      3,
		UseTLS:          cfg.RedisTLS,
	}
}

// interceptorLogger adapts slog to the go-grpc-middleware logger
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
