// Package store owns the in-memory workout log and its mutation operations.
// The log is authoritative for the session: every mutation is visible to
// readers immediately, and persistence to the blob collaborator happens
// asynchronously, best-effort, behind the mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/claude/setlog/internal/blobstore"
	"github.com/claude/setlog/internal/models"
	"github.com/google/uuid"
)

// Store holds the date → workout-type → exercise-list log and the
// selected-date cursor. All methods are safe for concurrent use; the
// logical model remains single-writer, the mutex only guards the serving
// layer's concurrency.
type Store struct {
	mu           sync.Mutex
	log          models.WorkoutLog
	selectedDate string

	blobs blobstore.Store
	key   string
	logg  *slog.Logger

	dirty     chan struct{}
	stopped   chan struct{}
	closed    bool
	persisted func(error)
}

// Option configures a Store.
type Option func(*Store)

// WithPersistHook installs a callback invoked after every persistence
// attempt with its result. Lets tests observe failures that the engine
// deliberately does not surface to callers.
func WithPersistHook(fn func(error)) Option {
	return func(s *Store) { s.persisted = fn }
}

// New loads the workout log for userKey from the blob store and starts the
// background persistence writer. A missing or unreadable blob yields an
// empty log, never an error: stale or empty analytics beat a startup
// failure for this data.
func New(ctx context.Context, blobs blobstore.Store, userKey string, logg *slog.Logger, opts ...Option) *Store {
	s := &Store{
		log:          models.WorkoutLog{},
		selectedDate: models.Today(),
		blobs:        blobs,
		key:          "workouts:" + userKey,
		logg:         logg,
		dirty:        make(chan struct{}, 1),
		stopped:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	blob, err := blobs.Load(ctx, s.key)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		// first run for this user
	case err != nil:
		logg.Warn("workout log load failed, starting empty", "key", s.key, "error", err)
	default:
		if err := json.Unmarshal(blob, &s.log); err != nil {
			logg.Warn("workout log corrupted, starting empty", "key", s.key, "error", err)
			s.log = models.WorkoutLog{}
		}
	}

	go s.persistLoop()
	return s
}

// Close stops the background writer after one final flush of any pending
// state.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.dirty)
	s.mu.Unlock()

	<-s.stopped
	return nil
}

// SelectedDate returns the current cursor date.
func (s *Store) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDate
}

// SetSelectedDate moves the cursor. Pure cursor change, no effect on data
// and no persistence.
func (s *Store) SetSelectedDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDate = date
}

// AddExercise appends an exercise to the selected date's bucket for
// workoutTypeID, creating both map levels if absent. Sets (and the exercise
// itself) that arrive without an id get one assigned; generated ids are
// unique within the exercise. Returns the exercise as stored.
func (s *Store) AddExercise(workoutTypeID string, ex models.Exercise) models.Exercise {
	s.mu.Lock()
	ex = ex.Clone()
	if ex.ID == "" {
		ex.ID = newID()
	}
	assignSetIDs(&ex)

	day := s.ensureDay(s.selectedDate)
	day[workoutTypeID] = append(day[workoutTypeID], ex)
	out := ex.Clone()
	s.mu.Unlock()

	s.markDirty()
	return out
}

// RemoveExercise filters the exercise out of the selected date's bucket.
// A missing bucket or id is a no-op, not an error.
func (s *Store) RemoveExercise(workoutTypeID, exerciseID string) {
	s.mu.Lock()
	if day, ok := s.log[s.selectedDate]; ok {
		if exercises, ok := day[workoutTypeID]; ok {
			kept := exercises[:0]
			for _, ex := range exercises {
				if ex.ID != exerciseID {
					kept = append(kept, ex)
				}
			}
			day[workoutTypeID] = kept
		}
	}
	s.mu.Unlock()

	s.markDirty()
}

// UpdateExercise replaces the exercise with a matching id in the selected
// date's bucket. No-op if the bucket or exercise does not exist.
func (s *Store) UpdateExercise(workoutTypeID string, ex models.Exercise) {
	s.mu.Lock()
	if day, ok := s.log[s.selectedDate]; ok {
		exercises := day[workoutTypeID]
		for i := range exercises {
			if exercises[i].ID == ex.ID {
				updated := ex.Clone()
				assignSetIDs(&updated)
				exercises[i] = updated
				break
			}
		}
	}
	s.mu.Unlock()

	s.markDirty()
}

// SetWorkoutTypesForDate ensures an (empty) bucket exists for every
// selected type on the given date. Buckets of types that became unselected
// are left alone: logged data is never deleted by a configuration change,
// only RemoveWorkout deletes a bucket.
func (s *Store) SetWorkoutTypesForDate(date string, types []models.WorkoutType) {
	s.mu.Lock()
	day := s.ensureDay(date)
	for _, t := range types {
		if !t.Selected {
			continue
		}
		if _, ok := day[t.ID]; !ok {
			day[t.ID] = []models.Exercise{}
		}
	}
	s.mu.Unlock()

	s.markDirty()
}

// RemoveWorkout deletes the selected date's entire bucket for
// workoutTypeID, exercises and all.
func (s *Store) RemoveWorkout(workoutTypeID string) {
	s.mu.Lock()
	if day, ok := s.log[s.selectedDate]; ok {
		delete(day, workoutTypeID)
	}
	s.mu.Unlock()

	s.markDirty()
}

// Exercises returns a copy of the bucket for (date, workoutTypeID). A
// missing key yields an empty slice.
func (s *Store) Exercises(date, workoutTypeID string) []models.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	exercises := s.log[date][workoutTypeID]
	out := make([]models.Exercise, len(exercises))
	for i, ex := range exercises {
		out[i] = ex.Clone()
	}
	return out
}

// HasBucket reports whether (date, workoutTypeID) was configured, which is
// distinct from the bucket being empty.
func (s *Store) HasBucket(date, workoutTypeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.log[date][workoutTypeID]
	return ok
}

// Day returns a copy of every bucket logged for date.
func (s *Store) Day(date string) map[string][]models.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, ok := s.log[date]
	if !ok {
		return map[string][]models.Exercise{}
	}
	out := make(map[string][]models.Exercise, len(day))
	for typeID, exercises := range day {
		list := make([]models.Exercise, len(exercises))
		for i, ex := range exercises {
			list[i] = ex.Clone()
		}
		out[typeID] = list
	}
	return out
}

// Dates returns every logged date, newest first.
func (s *Store) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	dates := make([]string, 0, len(s.log))
	for date := range s.log {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return models.CompareDates(dates[i], dates[j]) > 0
	})
	return dates
}

// Snapshot returns a deep copy of the whole log, for the progression
// comparator and for tests.
func (s *Store) Snapshot() models.WorkoutLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Clone()
}

func (s *Store) ensureDay(date string) map[string][]models.Exercise {
	day, ok := s.log[date]
	if !ok {
		day = make(map[string][]models.Exercise)
		s.log[date] = day
	}
	return day
}

// markDirty wakes the persistence writer. The channel holds one token, so
// a burst of mutations coalesces into a single save of the latest state.
func (s *Store) markDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Store) persistLoop() {
	for range s.dirty {
		s.flush()
	}
	// Catch state mutated after the last drained token.
	s.flush()
	close(s.stopped)
}

// flush serializes the full log and saves it. Failures are logged and
// reported to the hook, never returned: the in-memory state stays the
// source of truth for the session.
func (s *Store) flush() {
	s.mu.Lock()
	blob, err := json.Marshal(s.log)
	s.mu.Unlock()
	if err == nil {
		err = s.blobs.Save(context.Background(), s.key, blob)
	}
	if err != nil {
		s.logg.Error("workout log persist failed", "key", s.key, "error", err)
	}
	if s.persisted != nil {
		s.persisted(err)
	}
}

// newID builds an id from the wall clock plus a random suffix, so ids
// remain unique even when several are generated in the same instant.
func newID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

func assignSetIDs(ex *models.Exercise) {
	seen := make(map[string]struct{}, len(ex.Sets))
	for _, set := range ex.Sets {
		if set.ID != "" {
			seen[set.ID] = struct{}{}
		}
	}
	for i := range ex.Sets {
		if ex.Sets[i].ID != "" {
			continue
		}
		id := newID()
		for {
			if _, dup := seen[id]; !dup {
				break
			}
			id = newID()
		}
		seen[id] = struct{}{}
		ex.Sets[i].ID = id
	}
}
