package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/office-seating/internal/model"
)

// tokenRepo persists and validates refresh tokens by their hash.
type tokenRepo struct {
	q   querier
	now Clock
}

func (r *tokenRepo) StoreRefresh(ctx context.Context, t *model.RefreshToken) error {
	t.CreatedAt = r.now()
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at, created_at) VALUES (?, ?, ?, ?)",
		t.UserID, t.TokenHash, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

func (r *tokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	var (
		userID    string
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.q.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash = ? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		return "", translate(err)
	}
	if revokedAt.Valid || !r.now().Before(expiresAt) {
		return "", ErrNotFound
	}
	return userID, nil
}

func (r *tokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL",
		r.now(), tokenHash)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r *tokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL",
		r.now(), userID)
	return err
}
