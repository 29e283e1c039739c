package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runquest.db")

	conn, err := Open(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// reopening must skip the already-applied migration
	conn, err = Open(Config{Path: path})
	require.NoError(t, err)
	defer conn.Close()

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 1, count)

	var fk int
	require.NoError(t, conn.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	conn, err := Open(Config{Path: filepath.Join(t.TempDir(), "tx.db")})
	require.NoError(t, err)
	defer conn.Close()

	boom := errors.New("boom")
	err = Transaction(context.Background(), conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO users (username, password_hash, created_at) VALUES ('ada', 'x', 0)`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Zero(t, count)
}

func TestUniqueUserDateConstraint(t *testing.T) {
	conn, err := Open(Config{Path: filepath.Join(t.TempDir(), "unique.db")})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES (1, 'ada', 'x', 0)`)
	require.NoError(t, err)

	insert := `INSERT INTO runs (user_id, date, created_at) VALUES (1, '2026-10-18', 0)`
	_, err = conn.Exec(insert)
	require.NoError(t, err)
	_, err = conn.Exec(insert)
	assert.Error(t, err)
}
