package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	models "challengeme/model"
)

const (
	dailyKeyPrefix = "leaderboard:daily:"
	allTimeKey     = "leaderboard:alltime"

	// Daily boards stay queryable through the next day, then expire.
	dailyKeyTTL = 48 * time.Hour
)

func dailyKey(date string) string {
	return dailyKeyPrefix + date
}

type Repository interface {
	// RecordLike bumps the post owner on the daily and all-time boards.
	RecordLike(ctx context.Context, ownerID uuid.UUID, date string) error
	// RemoveLike compensates a withdrawn like.
	RemoveLike(ctx context.Context, ownerID uuid.UUID, date string) error
	TopDaily(ctx context.Context, date string, limit int64) ([]models.LeaderboardEntry, error)
	TopAllTime(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	redis *redis.Client
}

func NewRepository(redisClient *redis.Client) Repository {
	return &leaderboardRepository{redis: redisClient}
}

func (r *leaderboardRepository) RecordLike(ctx context.Context, ownerID uuid.UUID, date string) error {
	member := ownerID.String()

	key := dailyKey(date)
	if err := r.redis.ZIncrBy(ctx, key, 1, member).Err(); err != nil {
		return fmt.Errorf("failed to bump daily leaderboard: %w", err)
	}
	r.redis.Expire(ctx, key, dailyKeyTTL)

	if err := r.redis.ZIncrBy(ctx, allTimeKey, 1, member).Err(); err != nil {
		return fmt.Errorf("failed to bump all-time leaderboard: %w", err)
	}

	return nil
}

func (r *leaderboardRepository) RemoveLike(ctx context.Context, ownerID uuid.UUID, date string) error {
	member := ownerID.String()

	if err := r.redis.ZIncrBy(ctx, dailyKey(date), -1, member).Err(); err != nil {
		return fmt.Errorf("failed to decrement daily leaderboard: %w", err)
	}
	if err := r.redis.ZIncrBy(ctx, allTimeKey, -1, member).Err(); err != nil {
		return fmt.Errorf("failed to decrement all-time leaderboard: %w", err)
	}

	return nil
}

func (r *leaderboardRepository) TopDaily(ctx context.Context, date string, limit int64) ([]models.LeaderboardEntry, error) {
	return r.top(ctx, dailyKey(date), limit)
}

func (r *leaderboardRepository) TopAllTime(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error) {
	return r.top(ctx, allTimeKey, limit)
}

func (r *leaderboardRepository) top(ctx context.Context, key string, limit int64) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	scored, err := r.redis.ZRevRangeWithScores(ctx, key, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard %s: %w", key, err)
	}

	return entriesFromScores(scored), nil
}

// entriesFromScores converts redis sorted-set rows into ranked entries.
// Members that are not user ids, or whose score dropped to zero through
// compensations, are skipped.
func entriesFromScores(scored []redis.Z) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(scored))
	rank := int32(1)
	for _, z := range scored {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		userID, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		if z.Score <= 0 {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			UserID: userID,
			Score:  int64(z.Score),
			Rank:   rank,
		})
		rank++
	}
	return entries
}
