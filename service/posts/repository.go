package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	models "challengeme/model"
)

type Repository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	// HomePosts returns the posts visible to the user: their friends'
	// posts plus public ones, newest first.
	HomePosts(ctx context.Context, userID uuid.UUID, limit int) ([]models.Post, error)
	GetUserPosts(ctx context.Context, userID uuid.UUID, limit int) ([]models.Post, error)
	// GetLikesByUser returns the user's own like records, used by the
	// client to rebuild its like state.
	GetLikesByUser(ctx context.Context, userID uuid.UUID) ([]models.Like, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postRepository{db: db}
}

// Like and comment counts are derived on read rather than kept as
// counters on the post row, so the like service never has to touch the
// posts table.
const postColumns = `
	p.id, p.user_id, p.caption, p.media_url, p.media_kind, p.visibility, p.created_date,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count
`

// CreatePost inserts a new challenge post
func (r *postRepository) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, caption, media_url, media_kind, visibility, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.UserID, post.Caption, post.MediaURL, post.MediaKind, post.Visibility, post.CreatedDate)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts p WHERE p.id = $1`, postColumns)

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) HomePosts(ctx context.Context, userID uuid.UUID, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM posts p
		WHERE p.visibility = 'public'
		   OR p.user_id = $1
		   OR p.user_id IN (SELECT f.followed_id FROM follows f WHERE f.follower_id = $1)
		ORDER BY p.created_date DESC, p.id
		LIMIT $2
	`, postColumns)

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get home posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetUserPosts(ctx context.Context, userID uuid.UUID, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM posts p
		WHERE p.user_id = $1
		ORDER BY p.created_date DESC, p.id
		LIMIT $2
	`, postColumns)

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetLikesByUser(ctx context.Context, userID uuid.UUID) ([]models.Like, error) {
	query := `
		SELECT id, user_id, post_id, post_owner_id, created_date
		FROM likes
		WHERE user_id = $1
		ORDER BY created_date DESC
	`

	var likes []models.Like
	err := r.db.SelectContext(ctx, &likes, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get likes by user: %w", err)
	}

	return likes, nil
}
