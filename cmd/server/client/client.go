// Package client provides commands that call a running dice roller server
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the dice roller",
	Long:  `Client commands manage the dice catalog, roll dice and read roll history over gRPC.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Catalog commands
	ClientCmd.AddCommand(listDiceCmd)
	ClientCmd.AddCommand(selectCmd)
	ClientCmd.AddCommand(addDieCmd)
	ClientCmd.AddCommand(removeDieCmd)

	// Roll commands
	ClientCmd.AddCommand(rollCmd)
	ClientCmd.AddCommand(rollManyCmd)

	// History commands
	ClientCmd.AddCommand(historyCmd)
	ClientCmd.AddCommand(deleteRollCmd)
	ClientCmd.AddCommand(clearHistoryCmd)
}

// createDiceClient dials the server and returns a client plus its cleanup
func createDiceClient() (*v1alpha1.DiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewDiceClient(conn), cleanup, nil
}

func formatDie(d v1alpha1.Die) string {
	return fmt.Sprintf("%s (%d sides)", d.Acronym, d.Sides)
}
