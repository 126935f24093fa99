package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded rolls, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var deleteRollCmd = &cobra.Command{
	Use:   "delete-roll [id]",
	Short: "Delete one recorded roll",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteRoll,
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear-history",
	Short: "Delete every recorded roll",
	Args:  cobra.NoArgs,
	RunE:  runClearHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of rolls to show (0 shows all)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.ListHistory(ctx, &v1alpha1.ListHistoryRequest{Limit: historyLimit})
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(resp.Records) == 0 {
		fmt.Fprintln(out, "No rolls recorded")
		return nil
	}

	for _, r := range resp.Records {
		fmt.Fprintf(out, "%s  %-6s %4d  %s\n", r.ID, r.DieType, r.Roll,
			time.UnixMilli(r.TimestampMs).Format(time.RFC3339))
	}

	return nil
}

func runDeleteRoll(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := client.DeleteHistoryEntry(ctx, &v1alpha1.DeleteHistoryEntryRequest{ID: args[0]}); err != nil {
		return fmt.Errorf("failed to delete roll: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runClearHistory(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.ClearHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d rolls\n", resp.Deleted)
	return nil
}
