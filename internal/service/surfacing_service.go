package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
	"github.com/seedling-labs/gratitude-api/internal/domain/surfacing"
	"github.com/seedling-labs/gratitude-api/internal/store"
)

// DailyGratitude is the daily surface joined with its entry, the shape the
// API returns for "today".
type DailyGratitude struct {
	Surface *domain.DailySurface   `json:"surface"`
	Entry   *domain.GratitudeEntry `json:"entry"`
}

// SurfacingService provides the daily gratitude operations: the idempotent
// per-day pick, view tracking, and reflections.
type SurfacingService interface {
	// GetDailyGratitude returns the entry surfaced for the user on the
	// given date, computing and persisting the selection on first call.
	// Repeat calls on the same date return the stored answer unchanged.
	// Returns ErrNoEntries when the user has nothing to surface.
	GetDailyGratitude(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyGratitude, error)

	// MarkViewed records that the user saw the surfaced entry for the date.
	// Idempotent. Returns ErrNoSurfaceToday if no surface exists yet.
	MarkViewed(ctx context.Context, userID uuid.UUID, date time.Time) error

	// SaveReflection stores the user's reflection on the entry surfaced for
	// the date and links it back to that surface.
	SaveReflection(ctx context.Context, userID uuid.UUID, date time.Time, text string) (*domain.Reflection, error)

	// ListReflections retrieves a user's reflections, newest first.
	ListReflections(ctx context.Context, userID uuid.UUID) ([]*domain.Reflection, error)
}

// surfacingServiceImpl implements the SurfacingService interface
type surfacingServiceImpl struct {
	db              *sql.DB
	surfaceStore    store.SurfaceStore
	entryStore      store.EntryStore
	reflectionStore store.ReflectionStore
	params          *surfacing.Params
	logger          *slog.Logger
}

// NewSurfacingService creates a new SurfacingService.
func NewSurfacingService(
	db *sql.DB,
	surfaceStore store.SurfaceStore,
	entryStore store.EntryStore,
	reflectionStore store.ReflectionStore,
	params *surfacing.Params,
	logger *slog.Logger,
) (SurfacingService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if surfaceStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "surfaceStore cannot be nil"}
	}
	if entryStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "entryStore cannot be nil"}
	}
	if reflectionStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "reflectionStore cannot be nil"}
	}
	if params == nil {
		params = surfacing.DefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &surfacingServiceImpl{
		db:              db,
		surfaceStore:    surfaceStore,
		entryStore:      entryStore,
		reflectionStore: reflectionStore,
		params:          params,
		logger:          logger.With("component", "surfacing_service"),
	}, nil
}

// GetDailyGratitude implements the read-or-pick sequence. The stored row is
// always the answer; when two requests race on an empty date, the unique
// (user, date) constraint lets exactly one insert win and the loser re-reads
// the winning row.
func (s *surfacingServiceImpl) GetDailyGratitude(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (*DailyGratitude, error) {
	day := domain.TruncateToDate(date)

	surface, err := s.surfaceStore.GetForDate(ctx, userID, day)
	if err == nil {
		return s.join(ctx, surface)
	}
	if !errors.Is(err, store.ErrSurfaceNotFound) {
		return nil, WrapError("get_daily", "failed to read surface", err)
	}

	// Nothing stored for the date yet: compute a pick.
	entries, err := s.entryStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, WrapError("get_daily", "failed to list entries", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	recentIDs, err := s.recentEntryIDs(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	selection, err := surfacing.PickForDate(userID, day, entries, recentIDs, s.params)
	if err != nil {
		if errors.Is(err, surfacing.ErrNoEntries) {
			return nil, ErrNoEntries
		}
		return nil, WrapError("get_daily", "selection failed", err)
	}

	surface, err = domain.NewDailySurface(userID, selection.Entry.ID, day, selection.Reason)
	if err != nil {
		return nil, WrapError("get_daily", "invalid surface", err)
	}

	if err := s.surfaceStore.InsertIfAbsent(ctx, surface); err != nil {
		if errors.Is(err, store.ErrSurfaceExists) {
			// Lost the race; the stored row is the answer.
			s.logger.Debug("surface insert lost race, re-reading",
				"user_id", userID,
				"surfaced_on", day)
			surface, err = s.surfaceStore.GetForDate(ctx, userID, day)
			if err != nil {
				return nil, WrapError("get_daily", "failed to re-read winning surface", err)
			}
			return s.join(ctx, surface)
		}
		return nil, WrapError("get_daily", "failed to store surface", err)
	}

	s.logger.Info("daily gratitude surfaced",
		"user_id", userID,
		"entry_id", surface.EntryID,
		"surfaced_on", day,
		"reason", surface.Reason)

	return s.join(ctx, surface)
}

// MarkViewed records the first view of the surfaced entry.
func (s *surfacingServiceImpl) MarkViewed(ctx context.Context, userID uuid.UUID, date time.Time) error {
	if err := s.surfaceStore.MarkViewed(ctx, userID, domain.TruncateToDate(date)); err != nil {
		if errors.Is(err, store.ErrSurfaceNotFound) {
			return ErrNoSurfaceToday
		}
		return WrapError("mark_viewed", "failed to mark surface viewed", err)
	}
	return nil
}

// SaveReflection stores the reflection and links it to the day's surface in
// one transaction.
func (s *surfacingServiceImpl) SaveReflection(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	text string,
) (*domain.Reflection, error) {
	day := domain.TruncateToDate(date)

	surface, err := s.surfaceStore.GetForDate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, store.ErrSurfaceNotFound) {
			return nil, ErrNoSurfaceToday
		}
		return nil, WrapError("save_reflection", "failed to read surface", err)
	}

	reflection, err := domain.NewReflection(userID, surface.EntryID, text)
	if err != nil {
		return nil, WrapError("save_reflection", "invalid reflection", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.reflectionStore.WithTx(tx).Create(ctx, reflection); err != nil {
			return err
		}
		return s.surfaceStore.WithTx(tx).LinkReflection(ctx, userID, day, reflection.ID)
	})
	if err != nil {
		return nil, WrapError("save_reflection", "failed to save reflection", err)
	}

	s.logger.Info("reflection saved",
		"user_id", userID,
		"entry_id", reflection.EntryID,
		"reflection_id", reflection.ID)

	return reflection, nil
}

// ListReflections retrieves a user's reflections.
func (s *surfacingServiceImpl) ListReflections(ctx context.Context, userID uuid.UUID) ([]*domain.Reflection, error) {
	reflections, err := s.reflectionStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, WrapError("list_reflections", "failed to list reflections", err)
	}
	return reflections, nil
}

// recentEntryIDs collects the entry IDs surfaced within the recency window
// before the given day.
func (s *surfacingServiceImpl) recentEntryIDs(
	ctx context.Context,
	userID uuid.UUID,
	day time.Time,
) (map[uuid.UUID]struct{}, error) {
	since := day.AddDate(0, 0, -s.params.RecencyWindowDays)
	recent, err := s.surfaceStore.ListRecent(ctx, userID, since)
	if err != nil {
		return nil, WrapError("get_daily", "failed to list recent surfaces", err)
	}

	ids := make(map[uuid.UUID]struct{}, len(recent))
	for _, r := range recent {
		ids[r.EntryID] = struct{}{}
	}
	return ids, nil
}

// join loads the surfaced entry and returns the combined view.
func (s *surfacingServiceImpl) join(ctx context.Context, surface *domain.DailySurface) (*DailyGratitude, error) {
	entry, err := s.entryStore.GetByID(ctx, surface.EntryID)
	if err != nil {
		return nil, WrapError("get_daily", "failed to load surfaced entry", err)
	}

	return &DailyGratitude{Surface: surface, Entry: entry}, nil
}
