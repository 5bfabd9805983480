package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitlink/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user together with its role links and initial status in
// one transaction and returns the new id.
func (r *UserRepository) Create(ctx context.Context, user models.User, status models.Status) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	const insertUser = `
		INSERT INTO users (username, email, password_hash, locale, social_net_id, email_active, email_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id
	`
	var id int64
	if err := tx.QueryRow(ctx, insertUser,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Locale,
		user.SocialNetID,
		user.EmailActive,
		user.EmailCode,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	for _, role := range user.MainRoles {
		const link = `
			INSERT INTO user_main_roles (user_id, role_id)
			SELECT $1, id FROM main_roles WHERE name = $2
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.Exec(ctx, link, id, string(role)); err != nil {
			return 0, fmt.Errorf("link main role %s: %w", role, err)
		}
	}
	for _, role := range user.SubRoles {
		const link = `
			INSERT INTO user_sub_roles (user_id, role_id)
			SELECT $1, id FROM sub_roles WHERE name = $2
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.Exec(ctx, link, id, string(role)); err != nil {
			return 0, fmt.Errorf("link sub role %s: %w", role, err)
		}
	}

	const insertStatus = `
		INSERT INTO user_statuses (user_id, name, activated_at, ends_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, insertStatus, id, string(status.Name), status.ActivatedAt, status.EndsAt); err != nil {
		return 0, fmt.Errorf("insert status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, username).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (models.User, error) {
	query := `
		SELECT id, username, email, password_hash, locale, social_net_id, email_active, email_code,
		       avatar_file, created_at, last_visited_at
		FROM users WHERE ` + where

	row := r.pool.QueryRow(ctx, query, arg)
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Locale,
		&user.SocialNetID,
		&user.EmailActive,
		&user.EmailCode,
		&user.AvatarFile,
		&user.CreatedAt,
		&user.LastVisitedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if err := r.loadAssociations(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) loadAssociations(ctx context.Context, user *models.User) error {
	const mainRoles = `
		SELECT mr.name FROM main_roles mr
		JOIN user_main_roles umr ON umr.role_id = mr.id
		WHERE umr.user_id = $1
		ORDER BY mr.id
	`
	rows, err := r.pool.Query(ctx, mainRoles, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		user.MainRoles = append(user.MainRoles, models.MainRole(name))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const subRoles = `
		SELECT sr.name FROM sub_roles sr
		JOIN user_sub_roles usr ON usr.role_id = sr.id
		WHERE usr.user_id = $1
		ORDER BY sr.id
	`
	rows, err = r.pool.Query(ctx, subRoles, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		user.SubRoles = append(user.SubRoles, models.SubRole(name))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const statuses = `
		SELECT id, user_id, name, activated_at, ends_at
		FROM user_statuses WHERE user_id = $1 ORDER BY activated_at
	`
	rows, err = r.pool.Query(ctx, statuses, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s models.Status
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.ActivatedAt, &s.EndsAt); err != nil {
			return err
		}
		user.Statuses = append(user.Statuses, s)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tags, err := scanTags(ctx, r.pool, `
		SELECT t.id, t.name, l.id, l.name
		FROM tags t
		JOIN user_tags ut ON ut.tag_id = t.id
		LEFT JOIN levels l ON l.id = t.level_id
		WHERE ut.user_id = $1
		ORDER BY t.id
	`, user.ID)
	if err != nil {
		return err
	}
	user.Tags = tags
	return nil
}

// ListShort returns the shortened projection used by the moderator user
// listing: id, username, email, creation date and main roles.
func (r *UserRepository) ListShort(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT u.id, u.username, u.email, u.created_at, COALESCE(array_agg(mr.name ORDER BY mr.id) FILTER (WHERE mr.name IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_main_roles umr ON umr.user_id = u.id
		LEFT JOIN main_roles mr ON mr.id = umr.role_id
		GROUP BY u.id
		ORDER BY u.id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var (
			user  models.User
			roles []string
		)
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt, &roles); err != nil {
			return nil, err
		}
		for _, role := range roles {
			user.MainRoles = append(user.MainRoles, models.MainRole(role))
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateProfile rewrites username, email and password hash.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, username, email string, passwordHash []byte) error {
	const query = `
		UPDATE users SET username = $2, email = $3, password_hash = $4 WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, username, email, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetAvatar(ctx context.Context, id int64, fileName string) error {
	const query = `UPDATE users SET avatar_file = $2 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, fileName)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastVisited(ctx context.Context, id int64) error {
	const query = `UPDATE users SET last_visited_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// DeleteCascade removes the user and everything hanging off it in a single
// transaction: tokens, activities with their tag links, tag/role/status
// links and subscription edges in both directions. The cascade is explicit
// rather than left to foreign keys so the operation stays visible and
// testable.
func (r *UserRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	steps := []string{
		`DELETE FROM tokens WHERE user_id = $1`,
		`DELETE FROM activity_tags WHERE activity_id IN (SELECT id FROM activities WHERE user_id = $1)`,
		`DELETE FROM activities WHERE user_id = $1`,
		`DELETE FROM user_tags WHERE user_id = $1`,
		`DELETE FROM user_statuses WHERE user_id = $1`,
		`DELETE FROM user_main_roles WHERE user_id = $1`,
		`DELETE FROM user_sub_roles WHERE user_id = $1`,
		`DELETE FROM user_subscriptions WHERE subscriber_id = $1 OR channel_id = $1`,
	}
	for _, step := range steps {
		if _, err := tx.Exec(ctx, step, id); err != nil {
			return fmt.Errorf("cascade delete: %w", err)
		}
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return tx.Commit(ctx)
}
