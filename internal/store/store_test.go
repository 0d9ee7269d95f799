package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/setlog/internal/blobstore"
	"github.com/claude/setlog/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore builds a Store over an in-memory blob backend with a hook
// channel that reports every persistence attempt.
func newTestStore(t *testing.T, blobs *blobstore.Memory) (*Store, chan error) {
	t.Helper()
	persisted := make(chan error, 32)
	s := New(context.Background(), blobs, "tester", discardLogger(),
		WithPersistHook(func(err error) { persisted <- err }))
	t.Cleanup(func() { s.Close() })
	return s, persisted
}

func waitPersist(t *testing.T, persisted chan error) error {
	t.Helper()
	select {
	case err := <-persisted:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for persistence attempt")
		return nil
	}
}

// TestAddExerciseAssignsSetIDs verifies that every set lacking an id gets
// a unique non-empty one, while supplied ids are kept.
func TestAddExerciseAssignsSetIDs(t *testing.T) {
	s, _ := newTestStore(t, blobstore.NewMemory())
	s.SetSelectedDate("2024-01-10")

	stored := s.AddExercise("chest", models.Exercise{
		Name: "Supino",
		Sets: []models.ExerciseSet{
			{Reps: 10, Weight: 50},
			{ID: "keep-me", Reps: 8, Weight: 55},
			{Reps: 6, Weight: 60},
		},
	})

	seen := make(map[string]bool)
	for i, set := range stored.Sets {
		if set.ID == "" {
			t.Errorf("set %d has empty id", i)
		}
		if seen[set.ID] {
			t.Errorf("set %d has duplicate id %q", i, set.ID)
		}
		seen[set.ID] = true
	}
	if stored.Sets[1].ID != "keep-me" {
		t.Errorf("supplied id replaced: %q", stored.Sets[1].ID)
	}
	if stored.ID == "" {
		t.Error("exercise got no id")
	}
}

// TestAddExerciseCreatesBuckets verifies both map levels are created on
// demand for the selected date.
func TestAddExerciseCreatesBuckets(t *testing.T) {
	s, _ := newTestStore(t, blobstore.NewMemory())
	s.SetSelectedDate("2024-01-10")

	s.AddExercise("chest", models.Exercise{Name: "Supino"})

	got := s.Exercises("2024-01-10", "chest")
	if len(got) != 1 || got[0].Name != "Supino" {
		t.Fatalf("bucket = %+v, want one exercise Supino", got)
	}
	if !s.HasBucket("2024-01-10", "chest") {
		t.Error("bucket should exist after add")
	}
}

// TestSetSelectedDateIsPure verifies moving the cursor neither creates
// data nor loses it.
func TestSetSelectedDateIsPure(t *testing.T) {
	s, _ := newTestStore(t, blobstore.NewMemory())
	s.SetSelectedDate("2024-01-10")
	s.AddExercise("chest", models.Exercise{Name: "Supino"})

	s.SetSelectedDate("2024-01-11")
	if len(s.Dates()) != 1 {
		t.Errorf("Dates = %v, cursor change must not create day entries", s.Dates())
	}

	s.SetSelectedDate("2024-01-10")
	if len(s.Exercises("2024-01-10", "chest")) != 1 {
		t.Error("data lost after cursor round trip")
	}
}

// TestRemoveExercise verifies removal by id and that a missing bucket or
// id is a silent no-op.
func TestRemoveExercise(t *testing.T) {
	s, _ := newTestStore(t, blobstore.NewMemory())
	s.SetSelectedDate("2024-01-10")
	ex := s.AddExercise("chest", models.Exercise{Name: "Supino"})

	s.RemoveExercise("chest", ex.ID)
	if got := s.Exercises("2024-01-10", "chest"); len(got) != 0 {
		t.Errorf("bucket = %+v, want empty after removal", got)
	}

	// no-ops, must not panic or error
	s.RemoveExercise("chest", "no-such-id")
	s.RemoveExercise("no-such-type", "whatever")
}

// TestUpdateExercise verifies in-place replacement by id and the no-op
// when the id is absent.
func TestUpdateExercise(t *testing.T) {
	s, _ := newTestStore(t, blobstore.NewMemory())
	s.SetSelectedDate("2024-01-10")
	ex := s.AddExercise("chest", models.Exercise{Name: "Supino", Sets: []models.ExerciseSet{{ID: "s1", Reps: 10, Weight: 50}}})

	ex.Sets = []models.ExerciseSet{{ID: "s1", Reps: 12, Weight: 52.5}}
	ex.Notes = "pegada mais fechada"
	s.UpdateExercise("chest", ex)

	got := s.Exercises("2024-01-10", "chest")
	if len(got) != 1 {
		t.Fatalf("bucket has %d exercises, want 1", len(got))
	}
	if got[0].Sets[0].Weight != 52.5 || got[0].Notes != "pegada mais fechada" {
		t.Errorf("update not applied: %+v", got[0])
	}

	before := s.Snapshot()
	s.UpdateExercise("chest", models.Exercise{ID: "ghost", Name: "Fantasma"})
	if len(s.Exercises("2024-01-10", "chest")) != len(before["2024-01-10"]["chest"]) {
		t.Error("update of missing id must be a no-op")
	}
}

// TestSetWorkoutTypesForDate verifies selected types get (empty) buckets
// and that unselecting never deletes an existing bucket's data.
func TestSetWorkoutTypesForDate(t *testing.T) {
	s, _ := newTestStore(t, blobstore.NewMemory())
	s.SetSelectedDate("2024-01-10")
	s.AddExercise("chest", models.Exercise{Name: "Supino"})

	s.SetWorkoutTypesForDate("2024-01-10", []models.WorkoutType{
		{ID: "chest", Selected: false},
		{ID: "back", Selected: true},
		{ID: "legs", Selected: false},
	})

	if !s.HasBucket("2024-01-10", "back") {
		t.Error("selected type back should have a bucket")
	}
	if s.HasBucket("2024-01-10", "legs") {
		t.Error("unselected type legs should not get a bucket")
	}
	if got := s.Exercises("2024-01-10", "chest"); len(got) != 1 {
		t.Errorf("chest data deleted by configuration change: %+v", got)
	}

	// re-selecting an already-populated type must not clear it
	s.SetWorkoutTypesForDate("2024-01-10", []models.WorkoutType{{ID: "chest", Selected: true}})
	if got := s.Exercises("2024-01-10", "chest"); len(got) != 1 {
		t.Errorf("chest data cleared by re-selection: %+v", got)
	}
}

// TestRemoveWorkout verifies the whole bucket disappears, exercises and
// all, on the selected date only.
func TestRemoveWorkout(t *testing.T) {
	s, _ := newTestStore(t, blobstore.NewMemory())
	s.SetSelectedDate("2024-01-10")
	s.AddExercise("chest", models.Exercise{Name: "Supino"})
	s.SetSelectedDate("2024-01-11")
	s.AddExercise("chest", models.Exercise{Name: "Crucifixo"})

	s.RemoveWorkout("chest")

	if s.HasBucket("2024-01-11", "chest") {
		t.Error("bucket should be gone on the selected date")
	}
	if !s.HasBucket("2024-01-10", "chest") {
		t.Error("other dates must be untouched")
	}
}

// TestPersistFailureNonFatal verifies the best-effort contract: a failing
// blob backend is logged and reported to the hook, the mutation still
// lands, and reads see the latest in-memory state.
func TestPersistFailureNonFatal(t *testing.T) {
	blobs := blobstore.NewMemory()
	blobs.FailSaves = errors.New("disk full")
	s, persisted := newTestStore(t, blobs)
	s.SetSelectedDate("2024-01-10")

	s.AddExercise("chest", models.Exercise{Name: "Supino"})

	if err := waitPersist(t, persisted); err == nil {
		t.Error("expected persistence failure to reach the hook")
	}
	if got := s.Exercises("2024-01-10", "chest"); len(got) != 1 {
		t.Errorf("in-memory state rolled back on persist failure: %+v", got)
	}
}

// TestLoadCorruptBlob verifies that unreadable stored data degrades to an
// empty log rather than a startup failure.
func TestLoadCorruptBlob(t *testing.T) {
	blobs := blobstore.NewMemory()
	blobs.Put("workouts:tester", []byte("{not json"))

	s, _ := newTestStore(t, blobs)

	if dates := s.Dates(); len(dates) != 0 {
		t.Errorf("Dates = %v, want empty log after corrupt load", dates)
	}
}

// TestLoadSeededBlob verifies a round trip through the persisted format.
func TestLoadSeededBlob(t *testing.T) {
	seed := models.WorkoutLog{
		"2024-01-03": {"chest": {{ID: "e1", Name: "Supino", Sets: []models.ExerciseSet{{ID: "s1", Reps: 10, Weight: 50}}}}},
	}
	blob, err := json.Marshal(seed)
	if err != nil {
		t.Fatal(err)
	}
	blobs := blobstore.NewMemory()
	blobs.Put("workouts:tester", blob)

	s, _ := newTestStore(t, blobs)

	got := s.Exercises("2024-01-03", "chest")
	if len(got) != 1 || got[0].Sets[0].Weight != 50 {
		t.Errorf("loaded bucket = %+v, want seeded exercise", got)
	}
}

// TestCloseFlushesPendingState verifies the final flush on Close: the blob
// backend holds the latest log afterwards even if no earlier save landed.
func TestCloseFlushesPendingState(t *testing.T) {
	blobs := blobstore.NewMemory()
	s := New(context.Background(), blobs, "tester", discardLogger())
	s.SetSelectedDate("2024-01-10")
	s.AddExercise("chest", models.Exercise{Name: "Supino"})

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	blob, err := blobs.Load(context.Background(), "workouts:tester")
	if err != nil {
		t.Fatalf("Load after Close: %v", err)
	}
	var log models.WorkoutLog
	if err := json.Unmarshal(blob, &log); err != nil {
		t.Fatalf("persisted blob unreadable: %v", err)
	}
	if len(log["2024-01-10"]["chest"]) != 1 {
		t.Errorf("persisted log = %+v, want the added exercise", log)
	}
}

// TestExercisesReturnsCopies verifies readers cannot mutate the store
// through returned slices.
func TestExercisesReturnsCopies(t *testing.T) {
	s, _ := newTestStore(t, blobstore.NewMemory())
	s.SetSelectedDate("2024-01-10")
	s.AddExercise("chest", models.Exercise{Name: "Supino", Sets: []models.ExerciseSet{{ID: "s1", Reps: 10, Weight: 50}}})

	got := s.Exercises("2024-01-10", "chest")
	got[0].Sets[0].Weight = 999
	got[0].Name = "Alterado"

	fresh := s.Exercises("2024-01-10", "chest")
	if fresh[0].Sets[0].Weight != 50 || fresh[0].Name != "Supino" {
		t.Errorf("store mutated through returned copy: %+v", fresh[0])
	}
}

// TestDatesNewestFirst verifies date listing order.
func TestDatesNewestFirst(t *testing.T) {
	s, _ := newTestStore(t, blobstore.NewMemory())
	for _, d := range []string{"2024-01-03", "2024-02-01", "2023-12-28"} {
		s.SetSelectedDate(d)
		s.AddExercise("chest", models.Exercise{Name: "Supino"})
	}

	got := s.Dates()
	want := []string{"2024-02-01", "2024-01-03", "2023-12-28"}
	if len(got) != len(want) {
		t.Fatalf("Dates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
