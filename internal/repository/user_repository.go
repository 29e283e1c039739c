package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runquest/runquest-backend/internal/database"
	"github.com/runquest/runquest-backend/internal/models"
)

const userColumns = `id, username, password_hash, first_name, last_name, height, weight, created_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and sets its ID. A taken username yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (username, password_hash, first_name, last_name, height, weight, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Height, u.Weight, toNanos(u.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", u.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	return nil
}

// GetByID retrieves a user, or nil when absent
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetByUsername retrieves a user by login name, or nil when absent
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// UpdateProfile writes the editable profile columns
func (r *UserRepository) UpdateProfile(ctx context.Context, u *models.User) error {
	query := `UPDATE users SET first_name = ?, last_name = ?, height = ?, weight = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, u.FirstName, u.LastName, u.Height, u.Weight, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// Delete removes a user together with everything the user owns in one transaction.
// Ownership is spelled out here rather than left to ON DELETE clauses.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		stmts := []string{
			`DELETE FROM run_locations WHERE run_id IN (SELECT id FROM runs WHERE user_id = ?)`,
			`DELETE FROM runs WHERE user_id = ?`,
			`DELETE FROM territories WHERE owner_id = ?`,
			`DELETE FROM users WHERE id = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete user %d: %w", id, err)
			}
		}
		return nil
	})
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		height    sql.NullInt64
		weight    sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &height, &weight, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if height.Valid {
		h := int(height.Int64)
		u.Height = &h
	}
	if weight.Valid {
		w := int(weight.Int64)
		u.Weight = &w
	}
	u.CreatedAt = fromNanos(createdAt)
	return &u, nil
}
