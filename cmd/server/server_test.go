package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"

	"github.com/KirkDiggler/dice-roller/internal/config"
	rollhistory "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history"
)

func newTestServerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "server"}
	cmd.Flags().AddFlagSet(serverCmd.Flags())
	return cmd
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("DICEROLLER_GRPC_PORT", "6000")
	t.Setenv("DICEROLLER_HISTORY_BACKEND", "redis")

	cmd := newTestServerCmd()
	require.NoError(t, cmd.Flags().Set("history", "sqlite"))
	t.Cleanup(func() {
		historyBackend = config.HistoryMemory
		cmd.Flags().Lookup("history").Changed = false
	})

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.Equal(t, config.HistorySQLite, cfg.HistoryBackend)
}

func TestRedisOptions_TLS(t *testing.T) {
	assert.False(t, redisOptions(&config.Config{}).UseTLS)
	assert.True(t, redisOptions(&config.Config{RedisTLS: true}).UseTLS)
}

func TestBuildHistory_Memory(t *testing.T) {
	ctx := context.Background()

	repo, closer, err := buildHistory(ctx, &config.Config{HistoryBackend: config.HistoryMemory})
	require.NoError(t, err)
	defer func() { assert.NoError(t, closer.Close()) }()

	out, err := repo.Create(ctx, rollhistory.CreateInput{Roll: 2, DieType: "d4"})
	require.NoError(t, err)
	assert.Contains(t, out.Record.ID, "roll")
}

func TestBuildHistory_SQLite(t *testing.T) {
	ctx := context.Background()

	repo, closer, err := buildHistory(ctx, &config.Config{
		HistoryBackend: config.HistorySQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "rolls.db"),
	})
	require.NoError(t, err)
	defer func() { assert.NoError(t, closer.Close()) }()

	_, err = repo.Create(ctx, rollhistory.CreateInput{Roll: 5, DieType: "d8"})
	require.NoError(t, err)

	list, err := repo.List(ctx, rollhistory.ListInput{})
	require.NoError(t, err)
	assert.Len(t, list.Records, 1)
}

func TestInterceptorLogger_MapsLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	l := interceptorLogger(logger)
	l.Log(context.Background(), grpc_logging.LevelInfo, "started call", "grpc.method", "ListDice")
	l.Log(context.Background(), grpc_logging.LevelError, "finished call", "grpc.code", "Internal")

	assert.NotContains(t, buf.String(), "started call")
	assert.Contains(t, buf.String(), "finished call")
	assert.Contains(t, buf.String(), "grpc.code=Internal")
}
