// Package catalog owns the known dice, the current selection and single rolls.
//
// A Manager is not safe for concurrent use. It expects one mutator context;
// callers that serve concurrent requests serialize access themselves.
package catalog

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dice-roller/internal/entities"
	"github.com/KirkDiggler/dice-roller/internal/errors"
)

// Catalog change events published on the event bus. The event source is the
// die that was added, removed or selected.
const (
	EventDieAdded         = "catalog.die_added"
	EventDieRemoved       = "catalog.die_removed"
	EventSelectionChanged = "catalog.selection_changed"
)

// ContextKeySnapshot holds the Snapshot taken right after the change
const ContextKeySnapshot = "snapshot"

// Snapshot is the catalog state attached to every change event
type Snapshot struct {
	Dice     []entities.Die
	Selected entities.Die
}

// Config holds the dependencies for a Manager
type Config struct {
	Roller   dice.Roller
	EventBus events.EventBus
	Logger   *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

// Manager holds the standard and custom dice and which one is selected
type Manager struct {
	roller   dice.Roller
	bus      events.EventBus
	log      *slog.Logger
	standard []entities.Die
	custom   []entities.Die
	selected entities.Die
}

// NewManager creates a manager seeded with the standard dice, d6 selected
func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		roller:   cfg.Roller,
		bus:      cfg.EventBus,
		log:      logger.With("component", "dice_catalog"),
		standard: entities.Standard(),
	}
	m.selected = m.defaultSelection()

	return m, nil
}

// Dice returns the full catalog, standard dice first
func (m *Manager) Dice() []entities.Die {
	all := make([]entities.Die, 0, len(m.standard)+len(m.custom))
	all = append(all, m.standard...)
	return append(all, m.custom...)
}

// StandardDice returns the fixed standard dice
func (m *Manager) StandardDice() []entities.Die {
	return append([]entities.Die(nil), m.standard...)
}

// CustomDice returns the user-added dice in insertion order
func (m *Manager) CustomDice() []entities.Die {
	return append([]entities.Die(nil), m.custom...)
}

// Selected returns the die that RollSelected will roll
func (m *Manager) Selected() entities.Die {
	return m.selected
}

// IsStandard reports whether die is one of the protected standard dice
func (m *Manager) IsStandard(die entities.Die) bool {
	return indexOf(m.standard, die) >= 0
}

// Lookup finds a catalog die by acronym, ignoring case
func (m *Manager) Lookup(acronym string) (entities.Die, bool) {
	for _, d := range m.Dice() {
		if entities.SameAcronym(d.Acronym, acronym) {
			return d, true
		}
	}
	return entities.Die{}, false
}

// SelectDie makes die the roll target. Dice outside the catalog are ignored
// and false is returned.
func (m *Manager) SelectDie(die entities.Die) bool {
	if !m.contains(die) {
		m.log.Warn("Ignoring selection of die not in catalog", "acronym", die.Acronym, "sides", die.Sides)
		return false
	}

	if m.selected == die {
		return true
	}

	m.selected = die
	m.log.Debug("Selected die", "acronym", die.Acronym)
	m.publish(EventSelectionChanged, die)
	return true
}

// RollSelected rolls the selected die, returning a value in [1, sides]
func (m *Manager) RollSelected() int {
	sides := m.selected.Sides
	if sides <= 0 {
		return 1
	}

	value, err := m.roller.Roll(sides)
	if err != nil || value < 1 || value > sides {
		m.log.Error("Roller failed, falling back to 1", "acronym", m.selected.Acronym, "value", value, "error", err)
		return 1
	}

	return value
}

// RollDie rolls a catalog die count times
func (m *Manager) RollDie(die entities.Die, count int) ([]int, error) {
	if count <= 0 {
		return nil, errors.InvalidArgumentf("roll count must be positive, got %d", count)
	}
	if !m.contains(die) {
		return nil, errors.NotFoundf("die %s is not in the catalog", die.Acronym)
	}

	results, err := m.roller.RollN(count, die.Sides)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %d%s", count, die.Acronym)
	}

	return results, nil
}

// AddCustomDie appends a new die to the custom set. It returns false for
// non-positive sides, a blank acronym, or an acronym already in the catalog.
func (m *Manager) AddCustomDie(sides int, acronym string) bool {
	die, err := entities.NewDie(sides, acronym)
	if err != nil {
		m.log.Warn("Invalid custom die parameters", "sides", sides, "acronym", acronym, "error", err)
		return false
	}

	if _, exists := m.Lookup(die.Acronym); exists {
		m.log.Warn("Custom die acronym already exists", "acronym", die.Acronym)
		return false
	}

	m.custom = append(m.custom, die)
	m.log.Info("Added custom die", "acronym", die.Acronym, "sides", die.Sides, "custom_count", len(m.custom))
	m.publish(EventDieAdded, die)
	return true
}

// RemoveDie drops a custom die. Standard dice are never removed. When the
// selected die goes away the selection falls back to the default.
func (m *Manager) RemoveDie(die entities.Die) bool {
	if m.IsStandard(die) {
		m.log.Warn("Cannot remove standard die", "acronym", die.Acronym)
		return false
	}

	idx := indexOf(m.custom, die)
	if idx < 0 {
		m.log.Warn("Die to remove not found", "acronym", die.Acronym, "sides", die.Sides)
		return false
	}

	m.custom = append(m.custom[:idx:idx], m.custom[idx+1:]...)
	reselected := m.selected == die
	if reselected {
		m.selected = m.defaultSelection()
	}

	m.log.Info("Removed custom die", "acronym", die.Acronym, "custom_count", len(m.custom))
	m.publish(EventDieRemoved, die)
	if reselected {
		m.publish(EventSelectionChanged, m.selected)
	}
	return true
}

// Snapshot returns the current catalog and selection
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Dice:     m.Dice(),
		Selected: m.selected,
	}
}

// publish announces a committed change. Handler failures are logged; the
// change itself stands.
func (m *Manager) publish(eventType string, die entities.Die) {
	event := events.NewGameEvent(eventType, die, nil)
	event.Context().Set(ContextKeySnapshot, m.Snapshot())

	if err := m.bus.Publish(context.Background(), event); err != nil {
		m.log.Warn("Catalog event handler failed", "event", eventType, "acronym", die.Acronym, "error", err)
	}
}

// LogChanges subscribes a handler that logs every catalog change and returns
// the subscription ids
func LogChanges(bus events.EventBus, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	handler := func(ctx context.Context, event events.Event) error {
		attrs := []any{"event", event.Type(), "acronym", event.Source().GetID()}
		if raw, ok := event.Context().Get(ContextKeySnapshot); ok {
			if snap, ok := raw.(Snapshot); ok {
				attrs = append(attrs, "dice", len(snap.Dice), "selected", snap.Selected.Acronym)
			}
		}
		logger.InfoContext(ctx, "Catalog changed", attrs...)
		return nil
	}

	ids := make([]string, 0, 3)
	for _, eventType := range []string{EventDieAdded, EventDieRemoved, EventSelectionChanged} {
		ids = append(ids, bus.SubscribeFunc(eventType, 100, handler))
	}
	return ids
}

// defaultSelection prefers d6, else the first catalog entry
func (m *Manager) defaultSelection() entities.Die {
	all := m.Dice()
	for _, d := range all {
		if d.Acronym == entities.DefaultAcronym {
			return d
		}
	}
	if len(all) > 0 {
		return all[0]
	}
	return entities.Die{}
}

func (m *Manager) contains(die entities.Die) bool {
	return indexOf(m.standard, die) >= 0 || indexOf(m.custom, die) >= 0
}

func indexOf(list []entities.Die, die entities.Die) int {
	for i, d := range list {
		if d == die {
			return i
		}
	}
	return -1
}
