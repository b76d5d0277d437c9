package likes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	models "challengeme/model"
)

var (
	// ErrAlreadyExists is returned when the post is already liked by the
	// user or the user's daily like is already spent.
	ErrAlreadyExists = errors.New("like already exists")
	// ErrNotFound is returned when deleting a like that is not there.
	ErrNotFound = errors.New("like not found")
)

type Repository interface {
	CreateLike(ctx context.Context, like models.Like) error
	DeleteLike(ctx context.Context, likeID, userID uuid.UUID) (*models.Like, error)
	GetLikeByID(ctx context.Context, likeID uuid.UUID) (*models.Like, error)
	GetLikeCountByPost(ctx context.Context, postID uuid.UUID) (int32, error)
	GetLikeByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*models.Like, error)
}

type likeRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &likeRepository{db: db}
}

// CreateLike inserts the client-built like record. The unique indexes
// on (post_id, user_id) and (user_id, created_date) back the
// one-like-per-post and one-like-per-day rules server-side.
func (r *likeRepository) CreateLike(ctx context.Context, like models.Like) error {
	query := `
		INSERT INTO likes (id, user_id, post_id, post_owner_id, created_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		like.ID, like.UserID, like.PostID, like.PostOwnerID, like.CreatedDate)
	if err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyExists
	}

	return nil
}

// DeleteLike removes the like and returns the removed record. Only the
// like's author may delete it.
func (r *likeRepository) DeleteLike(ctx context.Context, likeID, userID uuid.UUID) (*models.Like, error) {
	query := `
		DELETE FROM likes
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, post_id, post_owner_id, created_date
	`

	var like models.Like
	err := r.db.GetContext(ctx, &like, query, likeID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete like: %w", err)
	}

	return &like, nil
}

func (r *likeRepository) GetLikeByID(ctx context.Context, likeID uuid.UUID) (*models.Like, error) {
	query := `
		SELECT id, user_id, post_id, post_owner_id, created_date
		FROM likes
		WHERE id = $1
	`

	var like models.Like
	err := r.db.GetContext(ctx, &like, query, likeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}

	return &like, nil
}

// GetLikeCountByPost returns the total number of likes for a post
func (r *likeRepository) GetLikeCountByPost(ctx context.Context, postID uuid.UUID) (int32, error) {
	query := `
		SELECT COUNT(*)
		FROM likes
		WHERE post_id = $1
	`

	var count int32
	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to get like count: %w", err)
	}

	return count, nil
}

// GetLikeByUserAndDate returns the user's like on the given calendar
// date, if any.
func (r *likeRepository) GetLikeByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*models.Like, error) {
	query := `
		SELECT id, user_id, post_id, post_owner_id, created_date
		FROM likes
		WHERE user_id = $1 AND created_date = $2
	`

	var like models.Like
	err := r.db.GetContext(ctx, &like, query, userID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get like by date: %w", err)
	}

	return &like, nil
}
