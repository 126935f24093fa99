// Package main is the entry point for the dice roller server and client
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-roller/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "dice-roller",
	Short: "Dice roller gRPC server and client",
	Long:  `Dice roller keeps a catalog of standard and custom dice, rolls the selected die and records roll history.`,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
