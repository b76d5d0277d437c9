package notifications

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	models "challengeme/model"
)

const (
	unreadCountPrefix = "notifications:unread:"
	unreadCountTTL    = 10 * time.Minute
)

func unreadCountKey(userID uuid.UUID) string {
	return unreadCountPrefix + userID.String()
}

type Repository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewRepository(db *sqlx.DB, redisClient *redis.Client) Repository {
	return &notificationRepository{
		db:    db,
		redis: redisClient,
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, message, actor_id, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		notification.ID, notification.UserID, notification.Type, notification.Message,
		notification.ActorID, notification.RelatedID, notification.IsRead, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	r.redis.Del(ctx, unreadCountKey(notification.UserID))
	return nil
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := `
		SELECT id, user_id, type, message, actor_id, related_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var notifications []models.Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("notification not found")
	}

	r.redis.Del(ctx, unreadCountKey(userID))
	return nil
}

// UnreadCount returns the user's unread total, cached briefly in redis.
func (r *notificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := unreadCountKey(userID)

	cached, err := r.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return count, nil
		}
	}

	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1 AND is_read = false
	`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	r.redis.Set(ctx, cacheKey, strconv.FormatInt(count, 10), unreadCountTTL)
	return count, nil
}
