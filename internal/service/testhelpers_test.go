package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runquest/runquest-backend/internal/database"
	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/repository"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	db          *sql.DB
	users       *repository.UserRepository
	runs        *repository.RunRepository
	territories *repository.TerritoryRepository
	clock       *fakeClock
	svc         *RunService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "service.db")})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	f := &fixture{
		db:          conn,
		users:       repository.NewUserRepository(conn),
		runs:        repository.NewRunRepository(conn),
		territories: repository.NewTerritoryRepository(conn),
		clock:       newFakeClock(time.Date(2026, time.October, 18, 6, 0, 0, 0, time.UTC)),
	}
	f.svc = NewRunService(f.runs, f.users, time.UTC, WithClock(f.clock.Now))
	return f
}

func (f *fixture) user(t *testing.T, username string, weight *int) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "hash", Weight: weight, CreatedAt: f.clock.Now()}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func ptr[T any](v T) *T {
	return &v
}
