package rollhistory

import (
	"context"
	"sync"

	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/pkg/clock"
	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
)

// MemoryConfig holds the configuration for the in-memory repository
type MemoryConfig struct {
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *MemoryConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// MemoryRepository keeps roll history in process memory
type MemoryRepository struct {
	mu      sync.RWMutex
	clock   clock.Clock
	idGen   idgen.Generator
	records []RollRecord
}

// NewMemory creates an in-memory roll history
func NewMemory(cfg *MemoryConfig) (*MemoryRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &MemoryRepository{
		clock: cfg.Clock,
		idGen: cfg.IDGenerator,
	}, nil
}

var _ Repository = (*MemoryRepository)(nil)

// Create appends a record
func (r *MemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	record := RollRecord{
		ID:        r.idGen.Generate(),
		Roll:      input.Roll,
		DieType:   input.DieType,
		Timestamp: r.clock.Now(),
	}

	r.mu.Lock()
	r.records = append(r.records, record)
	r.mu.Unlock()

	return &CreateOutput{Record: &record}, nil
}

// List returns copies of the records, newest first
func (r *MemoryRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*RollRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		if input.Limit > 0 && len(records) == input.Limit {
			break
		}
		record := r.records[i]
		records = append(records, &record)
	}

	return &ListOutput{Records: records}, nil
}

// Delete removes the record with the given id
func (r *MemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateDelete(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, record := range r.records {
		if record.ID == input.ID {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return &DeleteOutput{}, nil
		}
	}

	return nil, errors.NotFoundf("roll %s not found", input.ID)
}

// Clear drops all records
func (r *MemoryRepository) Clear(_ context.Context) (*ClearOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := len(r.records)
	r.records = nil

	return &ClearOutput{Deleted: deleted}, nil
}
