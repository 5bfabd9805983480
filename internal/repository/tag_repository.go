package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitlink/api/internal/models"
)

var (
	ErrTagNotFound   = errors.New("tag not found")
	ErrLevelNotFound = errors.New("level not found")
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanTags(ctx context.Context, q querier, query string, args ...any) ([]models.Tag, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var (
			tag       models.Tag
			levelID   *int32
			levelName *string
		)
		if err := rows.Scan(&tag.ID, &tag.Name, &levelID, &levelName); err != nil {
			return nil, err
		}
		if levelID != nil && levelName != nil {
			tag.Level = &models.Level{ID: *levelID, Name: models.LevelName(*levelName)}
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

func (r *TagRepository) GetByName(ctx context.Context, name models.TagName) (models.Tag, error) {
	const query = `
		SELECT t.id, t.name, l.id, l.name
		FROM tags t
		LEFT JOIN levels l ON l.id = t.level_id
		WHERE t.name = $1
	`
	tags, err := scanTags(ctx, r.pool, query, string(name))
	if err != nil {
		return models.Tag{}, err
	}
	if len(tags) == 0 {
		return models.Tag{}, ErrTagNotFound
	}
	return tags[0], nil
}

// SetLevel pins a tag to a level by numeric level id (1..10).
func (r *TagRepository) SetLevel(ctx context.Context, tagID int32, levelID int32) error {
	const levelExists = `SELECT EXISTS (SELECT 1 FROM levels WHERE id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, levelExists, levelID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrLevelNotFound
	}

	const query = `UPDATE tags SET level_id = $2 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, tagID, levelID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}

// SetLevelByName pins a tag to a named level; used by the self-service
// assignment which always starts at FIRST_LEVEL.
func (r *TagRepository) SetLevelByName(ctx context.Context, tagID int32, level models.LevelName) error {
	const query = `
		UPDATE tags SET level_id = (SELECT id FROM levels WHERE name = $2) WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, tagID, string(level))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *TagRepository) AddUserTag(ctx context.Context, userID int64, tagID int32) error {
	const query = `
		INSERT INTO user_tags (user_id, tag_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, userID, tagID)
	return err
}

// RemoveUserTag detaches the tag from the user only; the taxonomy row and
// its level survive.
func (r *TagRepository) RemoveUserTag(ctx context.Context, userID int64, tagID int32) error {
	const query = `DELETE FROM user_tags WHERE user_id = $1 AND tag_id = $2`
	_, err := r.pool.Exec(ctx, query, userID, tagID)
	return err
}

func (r *TagRepository) ListByUser(ctx context.Context, userID int64) ([]models.Tag, error) {
	return scanTags(ctx, r.pool, `
		SELECT t.id, t.name, l.id, l.name
		FROM tags t
		JOIN user_tags ut ON ut.tag_id = t.id
		LEFT JOIN levels l ON l.id = t.level_id
		WHERE ut.user_id = $1
		ORDER BY t.id
	`, userID)
}
