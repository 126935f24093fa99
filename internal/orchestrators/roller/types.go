package roller

import (
	"github.com/KirkDiggler/dice-roller/internal/entities"
	rollhistory "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history"
)

// CatalogDie is a catalog entry as seen by callers
type CatalogDie struct {
	Die      entities.Die
	Standard bool
}

// ListDiceInput defines the request for listing the catalog
type ListDiceInput struct{}

// ListDiceOutput defines the response for listing the catalog
type ListDiceOutput struct {
	Dice     []CatalogDie
	Selected entities.Die
}

// SelectDieInput defines the request for changing the selection
type SelectDieInput struct {
	Acronym string
}

// SelectDieOutput defines the response for changing the selection
type SelectDieOutput struct {
	Selected entities.Die
}

// AddCustomDieInput defines the request for adding a custom die
type AddCustomDieInput struct {
	Sides   int
	Acronym string
}

// AddCustomDieOutput defines the response for adding a custom die
type AddCustomDieOutput struct {
	Die entities.Die
}

// RemoveDieInput defines the request for removing a custom die
type RemoveDieInput struct {
	Acronym string
}

// RemoveDieOutput defines the response for removing a custom die
type RemoveDieOutput struct {
	Removed  entities.Die
	Selected entities.Die
}

// RollSelectedInput defines the request for rolling the selected die
type RollSelectedInput struct {
	// Record appends the roll to the history log
	Record bool
}

// RollSelectedOutput defines the response for rolling the selected die
type RollSelectedOutput struct {
	Die   entities.Die
	Value int

	// Record is set when the roll was stored
	Record *rollhistory.RollRecord

	// HistoryError describes why recording failed; the roll still stands
	HistoryError string
}

// RollManyInput defines the request for rolling several dice at once
type RollManyInput struct {
	// Quantities maps die acronym to how many of it to roll
	Quantities map[string]int
}

// DieRolls holds the results for one die type in a multi-roll
type DieRolls struct {
	Die      entities.Die
	Values   []int
	Subtotal int
}

// RollManyOutput defines the response for a multi-roll
type RollManyOutput struct {
	// Results are in catalog order
	Results []DieRolls
	Total   int
}

// ListHistoryInput defines the request for reading the history log
type ListHistoryInput struct {
	Limit int
}

// ListHistoryOutput defines the response for reading the history log
type ListHistoryOutput struct {
	Records []*rollhistory.RollRecord
}

// DeleteHistoryEntryInput defines the request for deleting a history entry
type DeleteHistoryEntryInput struct {
	ID string
}

// DeleteHistoryEntryOutput defines the response for deleting a history entry
type DeleteHistoryEntryOutput struct{}

// ClearHistoryInput defines the request for clearing the history log
type ClearHistoryInput struct{}

// ClearHistoryOutput defines the response for clearing the history log
type ClearHistoryOutput struct {
	Deleted int
}
