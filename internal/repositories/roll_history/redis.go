package rollhistory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/pkg/clock"
	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/dice-roller/internal/redis"
)

const (
	// Key pattern: dice_rolls:roll:{id}
	rollKeyPrefix = "dice_rolls:roll:"
	// Sorted set of roll ids scored by insertion sequence
	indexKey = "dice_rolls:index"
	// Counter handing out insertion sequence numbers
	seqKey = "dice_rolls:seq"
)

// storedRecord is the JSON kept under a roll key; Seq is its index score
type storedRecord struct {
	RollRecord
	Seq int64 `json:"seq"`
}

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client      redisclient.Client
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
}

// NewRedis creates a Redis-backed roll history
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		idGen:  cfg.IDGenerator,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores the record and indexes it by insertion order in one transaction
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	record := &RollRecord{
		ID:        r.idGen.Generate(),
		Roll:      input.Roll,
		DieType:   input.DieType,
		Timestamp: r.clock.Now(),
	}

	// same-millisecond rolls still list newest first
	seq, err := r.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate roll sequence in Redis")
	}

	data, err := json.Marshal(storedRecord{RollRecord: *record, Seq: seq})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal roll record")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.buildKey(record.ID), data, 0)
		pipe.ZAdd(ctx, indexKey, redis.Z{
			Score:  float64(seq),
			Member: record.ID,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store roll record in Redis")
	}

	return &CreateOutput{Record: record}, nil
}

// List reads ids newest first from the index, then the records themselves
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	ids, err := r.client.ZRevRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read roll index from Redis")
	}
	if len(ids) == 0 {
		return &ListOutput{Records: []*RollRecord{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.buildKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read roll records from Redis")
	}

	records := make([]*RollRecord, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a record; skip it
			continue
		}

		var stored storedRecord
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			slog.Warn("Skipping unreadable roll record", "roll_id", ids[i], "error", err)
			continue
		}
		records = append(records, &stored.RollRecord)
	}

	return &ListOutput{Records: records}, nil
}

// Delete removes a record and its index entry
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateDelete(input); err != nil {
		return nil, err
	}

	var deleted, unindexed *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.buildKey(input.ID))
		unindexed = pipe.ZRem(ctx, indexKey, input.ID)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete roll record from Redis")
	}

	if deleted.Val() == 0 && unindexed.Val() == 0 {
		return nil, errors.NotFoundf("roll %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

// Clear removes all records and the index
func (r *redisRepository) Clear(ctx context.Context) (*ClearOutput, error) {
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read roll index from Redis")
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, r.buildKey(id))
	}
	keys = append(keys, indexKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to clear roll history in Redis")
	}

	return &ClearOutput{Deleted: len(ids)}, nil
}

func (r *redisRepository) buildKey(id string) string {
	return fmt.Sprintf("%s%s", rollKeyPrefix, id)
}
