package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runquest/runquest-backend/internal/logging"
	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/observability"
	"github.com/runquest/runquest-backend/internal/repository"
)

// RunService owns the daily run ledger: one run per user per calendar day,
// owner-only appends, and finalization.
type RunService struct {
	runRepo  *repository.RunRepository
	userRepo *repository.UserRepository
	loc      *time.Location
	now      func() time.Time
}

// RunOption configures a RunService
type RunOption func(*RunService)

// WithClock replaces time.Now, which stamps locations and picks "today"
func WithClock(now func() time.Time) RunOption {
	return func(s *RunService) {
		s.now = now
	}
}

// NewRunService creates a new run service. loc decides where a calendar day starts.
func NewRunService(runRepo *repository.RunRepository, userRepo *repository.UserRepository, loc *time.Location, opts ...RunOption) *RunService {
	if loc == nil {
		loc = time.UTC
	}
	s := &RunService{
		runRepo:  runRepo,
		userRepo: userRepo,
		loc:      loc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date in the service's time zone
func (s *RunService) Today() string {
	return s.now().In(s.loc).Format(models.DateLayout)
}

// EnsureOpenForToday returns the user's run for today, creating it if needed.
// Concurrent callers race on the (user, date) unique constraint; the loser
// reads the winner's row, so every caller sees the same run.
func (s *RunService) EnsureOpenForToday(ctx context.Context, userID int64) (*models.Run, bool, error) {
	owner, err := s.owner(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	run := &models.Run{
		UserID:    userID,
		Date:      now.In(s.loc).Format(models.DateLayout),
		CreatedAt: now,
	}
	ApplyCalorieGuard(run, owner.WeightKg())

	created, err := s.runRepo.InsertIfAbsent(ctx, run)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create run: %w", err)
	}

	existing, err := s.runRepo.GetByUserDate(ctx, userID, run.Date)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get run: %w", err)
	}
	if existing == nil {
		return nil, false, fmt.Errorf("run for %s vanished after insert: %w", run.Date, ErrConflict)
	}

	if created {
		observability.RecordRunCreated()
		logging.Info().Int64("user_id", userID).Int64("run_id", existing.ID).Str("date", existing.Date).Msg("run created")
	}
	return existing, created, nil
}

// GetRun returns one of the user's runs. Other users' runs are reported as not found.
func (s *RunService) GetRun(ctx context.Context, userID, runID int64) (*models.Run, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil || run.UserID != userID {
		return nil, fmt.Errorf("run %d: %w", runID, ErrNotFound)
	}
	return run, nil
}

// ListRuns returns the user's runs, newest date first
func (s *RunService) ListRuns(ctx context.Context, userID int64) ([]models.Run, error) {
	runs, err := s.runRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// AddLocation appends a sample to a run the user owns. The timestamp is the
// server's clock, never the client's.
func (s *RunService) AddLocation(ctx context.Context, userID, runID int64, in models.LocationInput) (*models.RunLocation, error) {
	if in.Lat == nil || in.Lon == nil {
		return nil, fmt.Errorf("%w: lat and lon required", ErrValidation)
	}

	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	// a missing run is reported like a foreign one so ids reveal nothing
	if run == nil || run.UserID != userID {
		return nil, fmt.Errorf("%w: you can't attach location to another user's run", ErrForbidden)
	}

	loc, err := s.runRepo.AppendLocation(ctx, runID, *in.Lat, *in.Lon, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to add location: %w", err)
	}

	observability.RecordLocationAdded()
	return loc, nil
}

// Finish computes distance, duration and calories from every recorded sample
// and persists them together. Finishing again recomputes from all samples.
func (s *RunService) Finish(ctx context.Context, userID, runID int64) (*models.Run, error) {
	owner, err := s.owner(ctx, userID)
	if err != nil {
		return nil, err
	}

	var finished *models.Run
	err = s.runRepo.InTx(ctx, func(repo *repository.RunRepository) error {
		run, err := repo.GetByID(ctx, runID)
		if err != nil {
			return fmt.Errorf("failed to get run: %w", err)
		}
		if run == nil || run.UserID != userID {
			return fmt.Errorf("run %d: %w", runID, ErrNotFound)
		}

		locations, err := repo.ListLocations(ctx, runID)
		if err != nil {
			return err
		}

		summary, err := Summarize(locations, owner.WeightKg())
		if err != nil {
			return err
		}

		finishedAt := s.now()
		run.Distance = summary.Distance
		run.Duration = summary.Duration
		run.Calories = &summary.Calories
		run.FinishedAt = &finishedAt

		if err := s.save(ctx, repo, run, owner); err != nil {
			return err
		}
		finished = run
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientData) {
			observability.RecordFinishRejected("insufficient_data")
		}
		return nil, err
	}

	observability.RecordRunFinished(finished.Distance)
	logging.Info().
		Int64("run_id", finished.ID).
		Float64("distance", finished.Distance).
		Int64("duration", finished.Duration).
		Float64("calories", *finished.Calories).
		Msg("run finished")
	return finished, nil
}

// UpdateRun always fails: recorded runs cannot be edited.
func (s *RunService) UpdateRun(ctx context.Context, userID, runID int64) error {
	return fmt.Errorf("%w: editing run data is not allowed", ErrMethodNotAllowed)
}

// DeleteRun always fails: recorded runs cannot be deleted.
func (s *RunService) DeleteRun(ctx context.Context, userID, runID int64) error {
	return fmt.Errorf("%w: deleting run data is not allowed", ErrMethodNotAllowed)
}

// ListLocations returns samples of every run the user owns
func (s *RunService) ListLocations(ctx context.Context, userID int64) ([]models.RunLocation, error) {
	locations, err := s.runRepo.ListLocationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// GetLocation returns a sample from one of the user's runs
func (s *RunService) GetLocation(ctx context.Context, userID, locationID int64) (*models.RunLocation, error) {
	loc, ownerID, err := s.runRepo.GetLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if loc == nil || ownerID != userID {
		return nil, fmt.Errorf("location %d: %w", locationID, ErrNotFound)
	}
	return loc, nil
}

// UpdateLocation always fails: samples are append-only.
func (s *RunService) UpdateLocation(ctx context.Context, userID, locationID int64) error {
	return fmt.Errorf("%w: editing locations is not allowed", ErrMethodNotAllowed)
}

// DeleteLocation always fails: samples are append-only.
func (s *RunService) DeleteLocation(ctx context.Context, userID, locationID int64) error {
	return fmt.Errorf("%w: deleting locations is not allowed", ErrMethodNotAllowed)
}

// save is the single path through which run metrics reach the store
func (s *RunService) save(ctx context.Context, repo *repository.RunRepository, run *models.Run, owner *models.User) error {
	ApplyCalorieGuard(run, owner.WeightKg())
	if err := repo.UpdateMetrics(ctx, run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func (s *RunService) owner(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrUnauthorized)
	}
	return user, nil
}
