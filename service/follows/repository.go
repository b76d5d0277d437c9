package follows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when unfollowing someone not followed.
var ErrNotFound = errors.New("follow not found")

type Repository interface {
	CreateFollow(ctx context.Context, followerID, followedID uuid.UUID) error
	DeleteFollow(ctx context.Context, followerID, followedID uuid.UUID) error
	GetFollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	GetFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
}

type followRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &followRepository{db: db}
}

// CreateFollow records the relation. Following twice is a no-op.
func (r *followRepository) CreateFollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	query := `
		INSERT INTO follows (id, follower_id, followed_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), followerID, followedID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

func (r *followRepository) DeleteFollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND followed_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *followRepository) GetFollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT follower_id
		FROM follows
		WHERE followed_id = $1
		ORDER BY created_at DESC
	`

	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}

	return ids, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT followed_id
		FROM follows
		WHERE follower_id = $1
		ORDER BY created_at DESC
	`

	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}

	return ids, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM follows
			WHERE follower_id = $1 AND followed_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return exists, nil
}
