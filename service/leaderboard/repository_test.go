package leaderboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyKey(t *testing.T) {
	assert.Equal(t, "leaderboard:daily:2026-03-14", dailyKey("2026-03-14"))
}

func TestEntriesFromScores(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	entries := entriesFromScores([]redis.Z{
		{Member: first.String(), Score: 12},
		{Member: second.String(), Score: 3},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].UserID)
	assert.Equal(t, int64(12), entries[0].Score)
	assert.Equal(t, int32(1), entries[0].Rank)
	assert.Equal(t, second, entries[1].UserID)
	assert.Equal(t, int32(2), entries[1].Rank)
}

func TestEntriesFromScores_SkipsBadMembersAndZeroScores(t *testing.T) {
	valid := uuid.New()

	entries := entriesFromScores([]redis.Z{
		{Member: "not-a-uuid", Score: 5},
		{Member: uuid.New().String(), Score: 0},
		{Member: valid.String(), Score: 2},
	})

	require.Len(t, entries, 1)
	assert.Equal(t, valid, entries[0].UserID)
	assert.Equal(t, int32(1), entries[0].Rank)
}

func TestEntriesFromScores_Empty(t *testing.T) {
	assert.Empty(t, entriesFromScores(nil))
}
