// Package roller implements the roller orchestrator: catalog commands,
// rolling and the roll history log
package roller

//go:generate mockgen -destination=mock/mock_service.go -package=rollermock github.com/KirkDiggler/dice-roller/internal/orchestrators/roller Service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/KirkDiggler/dice-roller/internal/catalog"
	"github.com/KirkDiggler/dice-roller/internal/entities"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	rollhistory "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history"
)

// Service defines the interface for dice roller operations
type Service interface {
	// Catalog management
	ListDice(ctx context.Context, input *ListDiceInput) (*ListDiceOutput, error)
	SelectDie(ctx context.Context, input *SelectDieInput) (*SelectDieOutput, error)
	AddCustomDie(ctx context.Context, input *AddCustomDieInput) (*AddCustomDieOutput, error)
	RemoveDie(ctx context.Context, input *RemoveDieInput) (*RemoveDieOutput, error)

	// Rolling
	RollSelected(ctx context.Context, input *RollSelectedInput) (*RollSelectedOutput, error)
	RollMany(ctx context.Context, input *RollManyInput) (*RollManyOutput, error)

	// History
	ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error)
	DeleteHistoryEntry(ctx context.Context, input *DeleteHistoryEntryInput) (*DeleteHistoryEntryOutput, error)
	ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error)
}

// Config holds the dependencies for the roller orchestrator
type Config struct {
	Catalog     *catalog.Manager
	HistoryRepo rollhistory.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	// mu serializes every catalog call; the manager itself is unsynchronized
	mu          sync.Mutex
	catalog     *catalog.Manager
	historyRepo rollhistory.Repository
}

// NewOrchestrator creates a new roller orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		catalog:     cfg.Catalog,
		historyRepo: cfg.HistoryRepo,
	}, nil
}

// ListDice returns the catalog and the current selection
func (o *orchestrator) ListDice(_ context.Context, _ *ListDiceInput) (*ListDiceOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	all := o.catalog.Dice()
	dice := make([]CatalogDie, 0, len(all))
	for _, d := range all {
		dice = append(dice, CatalogDie{Die: d, Standard: o.catalog.IsStandard(d)})
	}

	return &ListDiceOutput{
		Dice:     dice,
		Selected: o.catalog.Selected(),
	}, nil
}

// SelectDie selects a catalog die by acronym
func (o *orchestrator) SelectDie(_ context.Context, input *SelectDieInput) (*SelectDieOutput, error) {
	if input == nil || strings.TrimSpace(input.Acronym) == "" {
		return nil, errors.InvalidArgument("acronym is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	die, ok := o.catalog.Lookup(input.Acronym)
	if !ok {
		return nil, errors.NotFoundf("die %s not found", input.Acronym)
	}
	if !o.catalog.SelectDie(die) {
		return nil, errors.Internal("catalog rejected selection of a known die")
	}

	return &SelectDieOutput{Selected: o.catalog.Selected()}, nil
}

// AddCustomDie adds a user-defined die to the catalog
func (o *orchestrator) AddCustomDie(_ context.Context, input *AddCustomDieInput) (*AddCustomDieOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	die, err := entities.NewDie(input.Sides, input.Acronym)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if existing, ok := o.catalog.Lookup(die.Acronym); ok {
		return nil, errors.AlreadyExistsf("die %s already exists", existing.Acronym)
	}
	if !o.catalog.AddCustomDie(die.Sides, die.Acronym) {
		return nil, errors.Internal("catalog rejected a valid custom die")
	}

	slog.Info("Custom die added", "acronym", die.Acronym, "sides", die.Sides)

	return &AddCustomDieOutput{Die: die}, nil
}

// RemoveDie removes a custom die; standard dice cannot be removed
func (o *orchestrator) RemoveDie(_ context.Context, input *RemoveDieInput) (*RemoveDieOutput, error) {
	if input == nil || strings.TrimSpace(input.Acronym) == "" {
		return nil, errors.InvalidArgument("acronym is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	die, ok := o.catalog.Lookup(input.Acronym)
	if !ok {
		return nil, errors.NotFoundf("die %s not found", input.Acronym)
	}
	if o.catalog.IsStandard(die) {
		return nil, errors.FailedPreconditionf("cannot remove standard die %s", die.Acronym)
	}
	if !o.catalog.RemoveDie(die) {
		return nil, errors.Internal("catalog rejected removal of a custom die")
	}

	slog.Info("Custom die removed", "acronym", die.Acronym)

	return &RemoveDieOutput{
		Removed:  die,
		Selected: o.catalog.Selected(),
	}, nil
}

// RollSelected rolls the selected die and optionally records it
func (o *orchestrator) RollSelected(ctx context.Context, input *RollSelectedInput) (*RollSelectedOutput, error) {
	if input == nil {
		input = &RollSelectedInput{}
	}

	o.mu.Lock()
	die := o.catalog.Selected()
	value := o.catalog.RollSelected()
	o.mu.Unlock()

	output := &RollSelectedOutput{
		Die:   die,
		Value: value,
	}

	if input.Record {
		created, err := o.historyRepo.Create(ctx, rollhistory.CreateInput{
			Roll:    value,
			DieType: die.Acronym,
		})
		if err != nil {
			// the roll is already committed; report the history failure alongside it
			slog.Error("Failed to record roll", "acronym", die.Acronym, "value", value, "error", err)
			output.HistoryError = errors.GetMessage(err)
		} else {
			output.Record = created.Record
		}
	}

	slog.Info("Die rolled",
		"acronym", die.Acronym,
		"value", value,
		"recorded", output.Record != nil,
	)

	return output, nil
}

// Limits on a single multi-roll
const (
	// MaxRollQuantity caps how many of one die type a request may roll
	MaxRollQuantity = 1000

	// MaxRollTotal caps how many dice a request may roll across all types
	MaxRollTotal = 5000
)

// RollMany rolls several dice types at once and totals them
func (o *orchestrator) RollMany(_ context.Context, input *RollManyInput) (*RollManyOutput, error) {
	if input == nil || len(input.Quantities) == 0 {
		return nil, errors.InvalidArgument("at least one die quantity is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	wanted := make(map[entities.Die]int, len(input.Quantities))
	count := 0
	for acronym, qty := range input.Quantities {
		if qty > MaxRollQuantity {
			return nil, errors.InvalidArgumentf("cannot roll more than %d of %s, got %d", MaxRollQuantity, acronym, qty)
		}
		die, ok := o.catalog.Lookup(acronym)
		if !ok {
			return nil, errors.NotFoundf("die %s not found", acronym)
		}
		if qty <= 0 {
			continue
		}

		// qty is bounded above, so neither sum can overflow
		wanted[die] += qty
		count += qty
		if wanted[die] > MaxRollQuantity {
			return nil, errors.InvalidArgumentf("cannot roll more than %d of %s, got %d", MaxRollQuantity, die.Acronym, wanted[die])
		}
		if count > MaxRollTotal {
			return nil, errors.InvalidArgumentf("cannot roll more than %d dice at once", MaxRollTotal)
		}
	}
	if len(wanted) == 0 {
		return nil, errors.InvalidArgument("nothing to roll: all quantities are zero")
	}

	output := &RollManyOutput{}
	for _, die := range o.catalog.Dice() {
		qty, ok := wanted[die]
		if !ok {
			continue
		}

		values, err := o.catalog.RollDie(die, qty)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %s", die.Acronym)
		}

		subtotal := 0
		for _, v := range values {
			subtotal += v
		}

		output.Results = append(output.Results, DieRolls{
			Die:      die,
			Values:   values,
			Subtotal: subtotal,
		})
		output.Total += subtotal
	}

	slog.Info("Dice rolled together",
		"dice_types", len(output.Results),
		"total", output.Total,
	)

	return output, nil
}

// ListHistory returns recorded rolls newest first
func (o *orchestrator) ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error) {
	if input == nil {
		input = &ListHistoryInput{}
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgumentf("limit must not be negative, got %d", input.Limit)
	}

	listOutput, err := o.historyRepo.List(ctx, rollhistory.ListInput{Limit: input.Limit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roll history")
	}

	return &ListHistoryOutput{Records: listOutput.Records}, nil
}

// DeleteHistoryEntry removes one recorded roll
func (o *orchestrator) DeleteHistoryEntry(ctx context.Context, input *DeleteHistoryEntryInput) (*DeleteHistoryEntryOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("roll ID is required")
	}

	if _, err := o.historyRepo.Delete(ctx, rollhistory.DeleteInput{ID: input.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete roll")
	}

	slog.Info("Roll deleted from history", "roll_id", input.ID)

	return &DeleteHistoryEntryOutput{}, nil
}

// ClearHistory removes every recorded roll
func (o *orchestrator) ClearHistory(ctx context.Context, _ *ClearHistoryInput) (*ClearHistoryOutput, error) {
	clearOutput, err := o.historyRepo.Clear(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear roll history")
	}

	slog.Info("Roll history cleared", "rolls_deleted", clearOutput.Deleted)

	return &ClearHistoryOutput{Deleted: clearOutput.Deleted}, nil
}
