package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
)

var listDiceCmd = &cobra.Command{
	Use:   "list-dice",
	Short: "List the dice catalog",
	Long:  `List standard and custom dice in catalog order and mark the selected one.`,
	Args:  cobra.NoArgs,
	RunE:  runListDice,
}

var selectCmd = &cobra.Command{
	Use:   "select [acronym]",
	Short: "Select the die to roll",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelect,
}

var addDieCmd = &cobra.Command{
	Use:   "add-die [acronym] [sides]",
	Short: "Add a custom die",
	Long: `Add a custom die to the catalog. Examples:

  add-die d3 3
  add-die coin 2`,
	Args: cobra.ExactArgs(2),
	RunE: runAddDie,
}

var removeDieCmd = &cobra.Command{
	Use:   "remove-die [acronym]",
	Short: "Remove a custom die",
	Long:  `Remove a custom die. Standard dice cannot be removed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoveDie,
}

func runListDice(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.ListDice(ctx)
	if err != nil {
		return fmt.Errorf("failed to list dice: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, d := range resp.Dice {
		marker := " "
		if d.Acronym == resp.Selected.Acronym && d.Sides == resp.Selected.Sides {
			marker = "*"
		}
		kind := "custom"
		if d.Standard {
			kind = "standard"
		}
		fmt.Fprintf(out, "%s %-8s %4d sides  %s\n", marker, d.Acronym, d.Sides, kind)
	}

	return nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.SelectDie(ctx, &v1alpha1.SelectDieRequest{Acronym: args[0]})
	if err != nil {
		return fmt.Errorf("failed to select die: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Selected %s\n", formatDie(resp.Selected))
	return nil
}

func runAddDie(cmd *cobra.Command, args []string) error {
	sides, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("sides must be a number: %w", err)
	}

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.AddCustomDie(ctx, &v1alpha1.AddCustomDieRequest{
		Acronym: args[0],
		Sides:   sides,
	})
	if err != nil {
		return fmt.Errorf("failed to add die: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatDie(resp.Die))
	return nil
}

func runRemoveDie(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.RemoveDie(ctx, &v1alpha1.RemoveDieRequest{Acronym: args[0]})
	if err != nil {
		return fmt.Errorf("failed to remove die: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Removed %s\n", formatDie(resp.Removed))
	fmt.Fprintf(out, "Selected %s\n", formatDie(resp.Selected))
	return nil
}
