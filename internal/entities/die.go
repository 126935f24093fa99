// Package entities provides core data structures for dice-roller.
package entities

import (
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/dice-roller/internal/errors"
)

const (
	// DefaultAcronym is the die a fresh selection lands on
	DefaultAcronym = "d6"

	// EntityTypeDie is the core.Entity type reported by Die
	EntityTypeDie = "die"
)

// Die is a die definition: how many sides it has and the short name it goes by.
// Two dice are equal when both fields match.
type Die struct {
	Sides   int    `json:"sides"`
	Acronym string `json:"acronym"`
}

// NewDie builds a die, rejecting non-positive sides and blank acronyms
func NewDie(sides int, acronym string) (Die, error) {
	if sides < 1 {
		return Die{}, errors.InvalidArgumentf("a die must have at least 1 side, got %d", sides)
	}
	acronym = strings.TrimSpace(acronym)
	if acronym == "" {
		return Die{}, errors.InvalidArgument("die acronym is required")
	}
	return Die{Sides: sides, Acronym: acronym}, nil
}

// Standard returns the fixed d4..d20 set in display order
func Standard() []Die {
	return []Die{
		{Sides: 4, Acronym: "d4"},
		{Sides: 6, Acronym: "d6"},
		{Sides: 8, Acronym: "d8"},
		{Sides: 10, Acronym: "d10"},
		{Sides: 12, Acronym: "d12"},
		{Sides: 20, Acronym: "d20"},
	}
}

// SameAcronym compares acronyms ignoring case and surrounding space
func SameAcronym(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// String returns the acronym
func (d Die) String() string {
	return d.Acronym
}

// GetID returns the acronym, which is unique within a catalog
func (d Die) GetID() string {
	return d.Acronym
}

// GetType returns the entity type
func (d Die) GetType() string {
	return EntityTypeDie
}

var _ core.Entity = Die{}
