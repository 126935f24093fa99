package rollhistory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-roller/internal/pkg/clock"
	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
	rollhistory "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history"
	"github.com/KirkDiggler/dice-roller/internal/testutils"
)

func TestScanAndRepairRedis(t *testing.T) {
	ctx := context.Background()
	client, mr := testutils.CreateTestRedisClient(t)

	repo, err := rollhistory.NewRedis(&rollhistory.RedisConfig{
		Client:      client,
		Clock:       clock.NewManual(testutils.FixedStart),
		IDGenerator: idgen.NewSequential("roll"),
	})
	require.NoError(t, err)

	for _, roll := range []int{3, 5, 1} {
		_, err := repo.Create(ctx, rollhistory.CreateInput{Roll: roll, DieType: "d6"})
		require.NoError(t, err)
	}

	// roll_1 drops out of the index, roll_2 is overwritten with junk
	// and ghost is indexed without a record
	_, err = mr.ZRem("dice_rolls:index", "roll_1")
	require.NoError(t, err)
	require.NoError(t, mr.Set("dice_rolls:roll:roll_2", "{not json"))
	require.NoError(t, mr.Set("dice_rolls:roll:bad", `{"id":"bad","roll":0,"die_type":"d6"}`))
	_, err = mr.ZAdd("dice_rolls:index", 1, "ghost")
	require.NoError(t, err)

	report, err := rollhistory.ScanRedis(ctx, client)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Checked)
	assert.ElementsMatch(t, []string{"roll_2", "bad"}, report.Corrupted)
	assert.Equal(t, []string{"ghost"}, report.Dangling)
	require.Len(t, report.Unindexed, 1)
	assert.Equal(t, "roll_1", report.Unindexed[0].ID)
	assert.False(t, report.Clean())

	require.NoError(t, rollhistory.RepairRedis(ctx, client, report))

	assert.False(t, mr.Exists("dice_rolls:roll:roll_2"))
	assert.False(t, mr.Exists("dice_rolls:roll:bad"))
	members, err := mr.ZMembers("dice_rolls:index")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"roll_1", "roll_3"}, members)

	list, err := repo.List(ctx, rollhistory.ListInput{})
	require.NoError(t, err)
	require.Len(t, list.Records, 2)
	assert.Equal(t, "roll_3", list.Records[0].ID)
	assert.Equal(t, "roll_1", list.Records[1].ID)

	again, err := rollhistory.ScanRedis(ctx, client)
	require.NoError(t, err)
	assert.True(t, again.Clean())
}

func TestRepairRedis_NothingToDo(t *testing.T) {
	client, _ := testutils.CreateTestRedisClient(t)

	report, err := rollhistory.ScanRedis(context.Background(), client)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.NoError(t, rollhistory.RepairRedis(context.Background(), client, report))
}
