package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitlink/api/internal/models"
)

var ErrTokenNotFound = errors.New("token not found")

// TokenRepository persists the bearer-token ledger. Rows are kept after
// revocation or expiry until the sweep removes them.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Create(ctx context.Context, token models.Token) error {
	const query = `
		INSERT INTO tokens (id, user_id, token, created_at, expires_at, active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Token,
		token.CreatedAt,
		token.ExpiresAt,
		token.Active,
	)
	return err
}

func (r *TokenRepository) GetByToken(ctx context.Context, raw string) (models.Token, error) {
	const query = `
		SELECT id, user_id, token, created_at, expires_at, active
		FROM tokens WHERE token = $1
	`
	row := r.pool.QueryRow(ctx, query, raw)
	var token models.Token
	if err := row.Scan(
		&token.ID,
		&token.UserID,
		&token.Token,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.Active,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Token{}, ErrTokenNotFound
		}
		return models.Token{}, err
	}
	return token, nil
}

// SetActive flips the revocation flag on a ledger row.
func (r *TokenRepository) SetActive(ctx context.Context, raw string, active bool) error {
	const query = `UPDATE tokens SET active = $2 WHERE token = $1`
	cmd, err := r.pool.Exec(ctx, query, raw, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// DeleteExpired removes every row whose expiry date is before now and
// returns how many were deleted.
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM tokens WHERE expires_at < $1`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
