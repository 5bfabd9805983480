package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitlink/api/internal/models"
)

var ErrActivityNotFound = errors.New("activity not found")

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Create inserts the activity and its tag links in one transaction and
// returns the new id.
func (r *ActivityRepository) Create(ctx context.Context, activity models.Activity) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	const insert = `
		INSERT INTO activities (index, user_id, title, body, latitude, longitude, created_at, event_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	if err := tx.QueryRow(ctx, insert,
		activity.Index,
		activity.UserID,
		activity.Title,
		activity.Body,
		activity.Latitude,
		activity.Longitude,
		activity.CreatedAt,
		activity.EventAt,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert activity: %w", err)
	}

	for _, tag := range activity.Tags {
		const link = `
			INSERT INTO activity_tags (activity_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.Exec(ctx, link, id, tag.ID); err != nil {
			return 0, fmt.Errorf("link tag %s: %w", tag.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id int64) (models.Activity, error) {
	const query = `
		SELECT id, index, user_id, title, body, latitude, longitude, image_file, created_at, event_at
		FROM activities WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	activity, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Activity{}, ErrActivityNotFound
		}
		return models.Activity{}, err
	}

	tags, err := scanTags(ctx, r.pool, `
		SELECT t.id, t.name, l.id, l.name
		FROM tags t
		JOIN activity_tags at ON at.tag_id = t.id
		LEFT JOIN levels l ON l.id = t.level_id
		WHERE at.activity_id = $1
		ORDER BY t.id
	`, id)
	if err != nil {
		return models.Activity{}, err
	}
	activity.Tags = tags
	return activity, nil
}

// ListByUser returns the owner's activities, newest first. Listing is always
// self-scoped; there is no global activity feed.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64) ([]models.Activity, error) {
	const query = `
		SELECT id, index, user_id, title, body, latitude, longitude, image_file, created_at, event_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range activities {
		tags, err := scanTags(ctx, r.pool, `
			SELECT t.id, t.name, l.id, l.name
			FROM tags t
			JOIN activity_tags at ON at.tag_id = t.id
			LEFT JOIN levels l ON l.id = t.level_id
			WHERE at.activity_id = $1
			ORDER BY t.id
		`, activities[i].ID)
		if err != nil {
			return nil, err
		}
		activities[i].Tags = tags
	}
	return activities, nil
}

// UpdateContent rewrites title and body; creation date and index are never
// touched.
func (r *ActivityRepository) UpdateContent(ctx context.Context, id int64, title, body string) error {
	const query = `UPDATE activities SET title = $2, body = $3 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, title, body)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) SetImage(ctx context.Context, id int64, fileName string) error {
	const query = `UPDATE activities SET image_file = $2 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, fileName)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM activity_tags WHERE activity_id = $1`, id); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return tx.Commit(ctx)
}

func scanActivity(row pgx.Row) (models.Activity, error) {
	var activity models.Activity
	err := row.Scan(
		&activity.ID,
		&activity.Index,
		&activity.UserID,
		&activity.Title,
		&activity.Body,
		&activity.Latitude,
		&activity.Longitude,
		&activity.ImageFile,
		&activity.CreatedAt,
		&activity.EventAt,
	)
	return activity, err
}
