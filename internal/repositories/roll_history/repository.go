// Package rollhistory stores the shared log of committed rolls
package rollhistory

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/dice-roller/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollhistorymock github.com/KirkDiggler/dice-roller/internal/repositories/roll_history Repository

const (
	errRollTooSmall = "roll must be at least 1"
	errDieTypeEmpty = "die type cannot be empty"
	errIDEmpty      = "roll ID cannot be empty"
)

// RollRecord is one committed roll in the history log
type RollRecord struct {
	// Unique identifier of the record
	ID string `json:"id"`

	// The value that was rolled
	Roll int `json:"roll"`

	// Acronym of the die that produced it (e.g., "d6")
	DieType string `json:"die_type"`

	// When the roll was recorded
	Timestamp time.Time `json:"timestamp"`
}

// CreateInput contains parameters for recording a roll
type CreateInput struct {
	Roll    int
	DieType string
}

// CreateOutput contains the stored record
type CreateOutput struct {
	Record *RollRecord
}

// ListInput contains parameters for listing history
type ListInput struct {
	// Maximum number of records, newest first. Zero or less returns all.
	Limit int
}

// ListOutput contains history records, newest first
type ListOutput struct {
	Records []*RollRecord
}

// DeleteInput identifies the record to delete
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty on success
type DeleteOutput struct{}

// ClearOutput reports how many records were removed
type ClearOutput struct {
	Deleted int
}

// Repository defines the storage operations for roll history
type Repository interface {
	// Create records a new roll
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// List returns records newest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a single record, NotFound when it does not exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Clear removes every record
	Clear(ctx context.Context) (*ClearOutput, error)
}

func validateCreate(input CreateInput) error {
	if input.Roll < 1 {
		return errors.InvalidArgument(errRollTooSmall)
	}
	if strings.TrimSpace(input.DieType) == "" {
		return errors.InvalidArgument(errDieTypeEmpty)
	}
	return nil
}

func validateDelete(input DeleteInput) error {
	if input.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	return nil
}
