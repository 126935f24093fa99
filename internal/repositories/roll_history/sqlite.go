package rollhistory

import (
	"context"
	"database/sql"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/pkg/clock"
	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS dice_rolls (
	id         TEXT PRIMARY KEY,
	roll       INTEGER NOT NULL,
	die_type   TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`

// OpenSQLite opens (creating if needed) a SQLite database file. Use
// ":memory:" for a throwaway database.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database %s", path)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)
	return db, nil
}

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	DB          *sql.DB
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DB == nil {
		vb.RequiredField("DB")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
	idGen idgen.Generator
}

// NewSQLite creates a SQLite-backed roll history, creating its table
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if _, err := cfg.DB.ExecContext(ctx, createTableSQL); err != nil {
		return nil, errors.Wrap(err, "failed to create dice_rolls table")
	}

	return &sqliteRepository{
		db:    cfg.DB,
		clock: cfg.Clock,
		idGen: cfg.IDGenerator,
	}, nil
}

var _ Repository = (*sqliteRepository)(nil)

// Create inserts a new record
func (r *sqliteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	record := &RollRecord{
		ID:        r.idGen.Generate(),
		Roll:      input.Roll,
		DieType:   input.DieType,
		Timestamp: r.clock.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dice_rolls (id, roll, die_type, created_at) VALUES (?, ?, ?, ?)`,
		record.ID, record.Roll, record.DieType, record.Timestamp.UnixNano(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert roll record")
	}

	return &CreateOutput{Record: record}, nil
}

// List returns records newest first, insertion order breaking ties
func (r *sqliteRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	limit := -1
	if input.Limit > 0 {
		limit = input.Limit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, roll, die_type, created_at FROM dice_rolls ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query roll records")
	}
	defer func() { _ = rows.Close() }()

	records := []*RollRecord{}
	for rows.Next() {
		var (
			record    RollRecord
			createdAt int64
		)
		if err := rows.Scan(&record.ID, &record.Roll, &record.DieType, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan roll record")
		}
		record.Timestamp = time.Unix(0, createdAt).UTC()
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate roll records")
	}

	return &ListOutput{Records: records}, nil
}

// Delete removes a record by id
func (r *sqliteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateDelete(input); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM dice_rolls WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete roll record")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return nil, errors.NotFoundf("roll %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

// Clear deletes every record
func (r *sqliteRepository) Clear(ctx context.Context) (*ClearOutput, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dice_rolls`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear roll records")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read affected rows")
	}

	return &ClearOutput{Deleted: int(affected)}, nil
}
