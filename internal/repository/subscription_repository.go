package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"fitlink/api/internal/models"
)

// SubscriptionRepository stores the follow graph as one directed edge table,
// user_subscriptions(subscriber_id, channel_id). The subscribers view is the
// same table read with the columns swapped, so the two directions cannot
// drift.
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

// Toggle removes the edge if present, adds it otherwise, and reports the
// resulting state (true = subscribed).
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx,
		`DELETE FROM user_subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID)
	if err != nil {
		return false, err
	}

	subscribed := false
	if cmd.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_subscriptions (subscriber_id, channel_id) VALUES ($1, $2)`,
			subscriberID, channelID); err != nil {
			return false, err
		}
		subscribed = true
	}

	return subscribed, tx.Commit(ctx)
}

// ListSubscriptions returns the channels the user follows.
func (r *SubscriptionRepository) ListSubscriptions(ctx context.Context, userID int64) ([]models.User, error) {
	return r.listEdges(ctx, `
		SELECT u.id, u.username, u.email, u.created_at
		FROM users u
		JOIN user_subscriptions s ON s.channel_id = u.id
		WHERE s.subscriber_id = $1
		ORDER BY u.id
	`, userID)
}

// ListSubscribers returns the users following the given channel.
func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, userID int64) ([]models.User, error) {
	return r.listEdges(ctx, `
		SELECT u.id, u.username, u.email, u.created_at
		FROM users u
		JOIN user_subscriptions s ON s.subscriber_id = u.id
		WHERE s.channel_id = $1
		ORDER BY u.id
	`, userID)
}

func (r *SubscriptionRepository) listEdges(ctx context.Context, query string, userID int64) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
