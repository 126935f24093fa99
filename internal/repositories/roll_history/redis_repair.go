package rollhistory

import (
	"context"
	"encoding/json"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dice-roller/internal/errors"
	redisclient "github.com/KirkDiggler/dice-roller/internal/redis"
)

// RepairReport lists inconsistencies found in the Redis roll history
type RepairReport struct {
	Checked int

	// Corrupted holds ids whose stored record cannot be decoded or is invalid
	Corrupted []string

	// Dangling holds indexed ids that have no stored record
	Dangling []string

	// Unindexed holds valid records missing from the index
	Unindexed []*RollRecord

	// seqs keeps the stored sequence of each unindexed record
	seqs map[string]int64
}

// Clean reports whether nothing needs repair
func (r *RepairReport) Clean() bool {
	return len(r.Corrupted) == 0 && len(r.Dangling) == 0 && len(r.Unindexed) == 0
}

// ScanRedis walks every stored roll and the time index looking for damage
func ScanRedis(ctx context.Context, client redisclient.Client) (*RepairReport, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client is required")
	}

	indexed, err := client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read roll index from Redis")
	}
	inIndex := make(map[string]bool, len(indexed))
	for _, id := range indexed {
		inIndex[id] = true
	}

	report := &RepairReport{seqs: make(map[string]int64)}
	stored := make(map[string]bool)

	iter := client.Scan(ctx, 0, rollKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id := strings.TrimPrefix(key, rollKeyPrefix)
		stored[id] = true
		report.Checked++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		var stored storedRecord
		if err := json.Unmarshal([]byte(data), &stored); err != nil ||
			stored.ID != id || validateCreate(CreateInput{Roll: stored.Roll, DieType: stored.DieType}) != nil {
			report.Corrupted = append(report.Corrupted, id)
			continue
		}

		if !inIndex[id] {
			report.Unindexed = append(report.Unindexed, &stored.RollRecord)
			report.seqs[id] = stored.Seq
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan roll records")
	}

	for _, id := range indexed {
		if !stored[id] {
			report.Dangling = append(report.Dangling, id)
		}
	}

	return report, nil
}

// RepairRedis deletes corrupted records, drops dangling index entries and
// re-indexes records that fell out of the index
func RepairRedis(ctx context.Context, client redisclient.Client, report *RepairReport) error {
	if client == nil || report == nil {
		return errors.InvalidArgument("client and report are required")
	}
	if report.Clean() {
		return nil
	}

	// records without a stored sequence go to the front of the history
	scores := make(map[string]float64, len(report.Unindexed))
	for _, record := range report.Unindexed {
		seq := report.seqs[record.ID]
		if seq <= 0 {
			next, err := client.Incr(ctx, seqKey).Result()
			if err != nil {
				return errors.Wrap(err, "failed to allocate roll sequence in Redis")
			}
			seq = next
		}
		scores[record.ID] = float64(seq)
	}

	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range report.Corrupted {
			pipe.Del(ctx, rollKeyPrefix+id)
			pipe.ZRem(ctx, indexKey, id)
		}
		for _, id := range report.Dangling {
			pipe.ZRem(ctx, indexKey, id)
		}
		for _, record := range report.Unindexed {
			pipe.ZAdd(ctx, indexKey, redis.Z{
				Score:  scores[record.ID],
				Member: record.ID,
			})
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to repair roll history in Redis")
	}

	return nil
}
