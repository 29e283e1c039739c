package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runquest/runquest-backend/internal/database"
	"github.com/runquest/runquest-backend/internal/models"
)

var t0 = time.Date(2026, time.October, 18, 7, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func createUser(t *testing.T, repo *UserRepository, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "hash", CreatedAt: t0}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	createUser(t, users, "ada")
	err := users.Create(ctx, &models.User{Username: "ada", PasswordHash: "other", CreatedAt: t0})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepositoryProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))
	u := createUser(t, users, "ada")

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Weight)
	assert.Zero(t, got.WeightKg())

	weight, height := 64, 171
	got.Weight, got.Height, got.FirstName = &weight, &height, "Ada"
	require.NoError(t, users.UpdateProfile(ctx, got))

	got, err = users.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, got.Weight)
	assert.Equal(t, 64, *got.Weight)
	assert.Equal(t, 171, *got.Height)
	assert.Equal(t, "Ada", got.FirstName)

	missing, err := users.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRunRepositoryInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	u := createUser(t, NewUserRepository(conn), "ada")
	runs := NewRunRepository(conn)

	zero := 0.0
	run := &models.Run{UserID: u.ID, Date: "2026-10-18", Calories: &zero, CreatedAt: t0}

	created, err := runs.InsertIfAbsent(ctx, run)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = runs.InsertIfAbsent(ctx, run)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := runs.GetByUserDate(ctx, u.ID, "2026-10-18")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RunStateOpen, got.State())
	assert.True(t, t0.Equal(got.CreatedAt))

	list, err := runs.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRunRepositoryAppendLocationNeverGoesBackInTime(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	u := createUser(t, NewUserRepository(conn), "ada")
	runs := NewRunRepository(conn)

	run := &models.Run{UserID: u.ID, Date: "2026-10-18", CreatedAt: t0}
	_, err := runs.InsertIfAbsent(ctx, run)
	require.NoError(t, err)
	run, err = runs.GetByUserDate(ctx, u.ID, "2026-10-18")
	require.NoError(t, err)

	first, err := runs.AppendLocation(ctx, run.ID, 41.3, 69.2, t0.Add(time.Minute))
	require.NoError(t, err)
	// the clock stepped backwards between requests
	second, err := runs.AppendLocation(ctx, run.ID, 41.4, 69.2, t0)
	require.NoError(t, err)

	assert.True(t, first.Timestamp.Equal(t0.Add(time.Minute)))
	assert.True(t, second.Timestamp.Equal(first.Timestamp))

	locations, err := runs.ListLocations(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, first.ID, locations[0].ID)
	assert.Equal(t, second.ID, locations[1].ID)

	loc, owner, err := runs.GetLocation(ctx, second.ID)
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, u.ID, owner)
	assert.Equal(t, 41.4, loc.Lat)
}

func TestRunRepositoryDeleteRunCascadesLocations(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	u := createUser(t, NewUserRepository(conn), "ada")
	runs := NewRunRepository(conn)

	_, err := runs.InsertIfAbsent(ctx, &models.Run{UserID: u.ID, Date: "2026-10-18", CreatedAt: t0})
	require.NoError(t, err)
	run, err := runs.GetByUserDate(ctx, u.ID, "2026-10-18")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := runs.AppendLocation(ctx, run.ID, 1, float64(i), t0)
		require.NoError(t, err)
	}

	require.NoError(t, runs.DeleteRun(ctx, run.ID))

	got, err := runs.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := runs.CountLocations(ctx, run.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUserRepositoryDeleteRemovesOwnedRows(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	runs := NewRunRepository(conn)
	territories := NewTerritoryRepository(conn)

	ada := createUser(t, users, "ada")
	bob := createUser(t, users, "bob")

	for _, u := range []*models.User{ada, bob} {
		_, err := runs.InsertIfAbsent(ctx, &models.Run{UserID: u.ID, Date: "2026-10-18", CreatedAt: t0})
		require.NoError(t, err)
		require.NoError(t, territories.Create(ctx, &models.Territory{OwnerID: u.ID, CenterLat: 1, CenterLon: 1, CreatedAt: t0}))
	}
	adaRun, err := runs.GetByUserDate(ctx, ada.ID, "2026-10-18")
	require.NoError(t, err)
	_, err = runs.AppendLocation(ctx, adaRun.ID, 1, 1, t0)
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, ada.ID))

	gone, err := users.GetByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	n, err := runs.CountLocations(ctx, adaRun.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	left, err := territories.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "bob", left[0].Owner)

	bobRuns, err := runs.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobRuns, 1)
}

func TestTerritoryRepositoryDefaultsRadius(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	u := createUser(t, NewUserRepository(conn), "ada")
	territories := NewTerritoryRepository(conn)

	tr := &models.Territory{OwnerID: u.ID, CenterLat: 41.31, CenterLon: 69.28, CreatedAt: t0}
	require.NoError(t, territories.Create(ctx, tr))

	got, err := territories.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.DefaultTerritoryRadius, got.Radius)
	assert.Equal(t, "ada", got.Owner)

	missing, err := territories.GetByID(ctx, tr.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTokenRepositoryRevokeOnce(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenRepository(newTestDB(t))

	require.NoError(t, tokens.Revoke(ctx, "jti-1", t0))
	assert.ErrorIs(t, tokens.Revoke(ctx, "jti-1", t0), ErrDuplicate)

	n, err := tokens.PurgeExpired(ctx, t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
