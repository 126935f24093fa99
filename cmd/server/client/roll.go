package client

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/dice-roller/internal/pkg/rng"
)

var (
	recordRoll  bool
	showShuffle bool
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll the selected die",
	Long: `Roll the selected die. Examples:

  roll
  roll --record
  roll --shuffle --record`,
	Args: cobra.NoArgs,
	RunE: runRoll,
}

var rollManyCmd = &cobra.Command{
	Use:   "roll-many [acronym=count]...",
	Short: "Roll several dice types at once",
	Long: `Roll any number of catalog dice in one request. Examples:

  roll-many d6=2
  roll-many d20=1 d6=3 d3=2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRollMany,
}

func init() {
	rollCmd.Flags().BoolVar(&recordRoll, "record", false, "Store the roll in history")
	rollCmd.Flags().BoolVar(&showShuffle, "shuffle", false, "Play the shuffle animation before showing the result")
}

func runRoll(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.RollSelected(ctx, &v1alpha1.RollSelectedRequest{Record: recordRoll})
	if err != nil {
		return fmt.Errorf("failed to roll: %w", err)
	}

	out := cmd.OutOrStdout()
	if showShuffle {
		s := &Shuffle{Roller: rng.New(0), Interval: 50 * time.Millisecond, Duration: 500 * time.Millisecond}
		if err := s.Play(cmd.Context(), out, resp.Die.Sides); err != nil {
			// the roll is already stored server side
			fmt.Fprintln(out)
			return err
		}
	}

	fmt.Fprintf(out, "\r🎲 %s rolled %d\n", resp.Die.Acronym, resp.Value)
	if resp.Record != nil {
		fmt.Fprintf(out, "Recorded as %s at %s\n", resp.Record.ID,
			time.UnixMilli(resp.Record.TimestampMs).Format(time.RFC3339))
	}
	if resp.HistoryError != "" {
		fmt.Fprintf(out, "Warning: roll was not recorded: %s\n", resp.HistoryError)
	}

	return nil
}

func runRollMany(cmd *cobra.Command, args []string) error {
	quantities, err := parseQuantities(args)
	if err != nil {
		return err
	}

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.RollMany(ctx, &v1alpha1.RollManyRequest{Quantities: quantities})
	if err != nil {
		return fmt.Errorf("failed to roll dice: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, r := range resp.Results {
		fmt.Fprintf(out, "%dx%s: %v = %d\n", len(r.Values), r.Die.Acronym, r.Values, r.Subtotal)
	}
	fmt.Fprintf(out, "Total: %d\n", resp.Total)

	return nil
}

// parseQuantities turns ["d6=2", "d20=1"] into a quantity map
func parseQuantities(args []string) (map[string]int, error) {
	quantities := make(map[string]int, len(args))
	for _, arg := range args {
		acronym, count, ok := strings.Cut(arg, "=")
		acronym = strings.TrimSpace(acronym)
		if !ok || acronym == "" {
			return nil, fmt.Errorf("expected acronym=count, got %q", arg)
		}

		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return nil, fmt.Errorf("invalid count in %q: %w", arg, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("count in %q cannot be negative", arg)
		}
		quantities[acronym] += n
	}
	return quantities, nil
}

// Shuffle draws random interim faces before a result is shown
type Shuffle struct {
	Roller   dice.Roller
	Interval time.Duration
	Duration time.Duration
}

// Frames is how many interim faces Play draws
func (s *Shuffle) Frames() int {
	if s.Interval <= 0 {
		return 0
	}
	return int(s.Duration / s.Interval)
}

// Play writes one interim face per interval until Duration elapses.
// Cancelling ctx drops the remaining frames and returns ctx.Err().
func (s *Shuffle) Play(ctx context.Context, out io.Writer, sides int) error {
	frames := s.Frames()
	if frames == 0 || sides <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for i := 0; i < frames; i++ {
		face, err := s.Roller.Roll(sides)
		if err != nil {
			return fmt.Errorf("failed to draw shuffle frame: %w", err)
		}
		fmt.Fprintf(out, "\r🎲 %d ", face)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

