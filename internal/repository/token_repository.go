package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TokenRepository records refresh tokens that have been consumed by rotation
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Revoke marks jti as used. A jti revoked before yields ErrDuplicate.
func (r *TokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO revoked_tokens (jti, expires_at) VALUES (?, ?)`, jti, toNanos(expiresAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("token %s: %w", jti, ErrDuplicate)
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// PurgeExpired drops revocations whose tokens can no longer verify anyway
func (r *TokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < ?`, toNanos(now))
	if err != nil {
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", err)
	}
	return res.RowsAffected()
}
