// Package registry holds the catalog of selectable workout types: a fixed
// set of built-in defaults plus user-created custom types. The registry is
// configuration, not data — removing a type never touches the exercises
// already logged under its id.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/setlog/internal/blobstore"
	"github.com/claude/setlog/internal/models"
)

// Defaults is the built-in type catalog. IDs are stable and well-known;
// exercise history is partitioned by them.
func Defaults() []models.WorkoutType {
	return []models.WorkoutType{
		{ID: "chest", Name: "Peito", Icon: "barbell", Color: "#E53935", IsDefault: true},
		{ID: "back", Name: "Costas", Icon: "body", Color: "#1E88E5", IsDefault: true},
		{ID: "legs", Name: "Pernas", Icon: "walk", Color: "#43A047", IsDefault: true},
		{ID: "shoulders", Name: "Ombros", Icon: "barbell", Color: "#FB8C00", IsDefault: true},
		{ID: "arms", Name: "Braços", Icon: "fitness", Color: "#8E24AA", IsDefault: true},
		{ID: "core", Name: "Core", Icon: "body", Color: "#FDD835", IsDefault: true},
		{ID: "cardio", Name: "Cardio", Icon: "heart", Color: "#D81B60", IsDefault: true},
		{ID: "fullbody", Name: "Corpo Inteiro", Icon: "flash", Color: "#00ACC1", IsDefault: true},
	}
}

// BucketCreator is the slice of the workout store the registry needs:
// newly added types immediately get an empty bucket on the current date.
type BucketCreator interface {
	SelectedDate() string
	SetWorkoutTypesForDate(date string, types []models.WorkoutType)
}

// Registry is the stateful type catalog, persisted as one JSON blob.
type Registry struct {
	mu    sync.Mutex
	types []models.WorkoutType

	store BucketCreator
	blobs blobstore.Store
	key   string
	logg  *slog.Logger

	persisted func(error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithPersistHook installs a callback invoked after every persistence
// attempt with its result.
func WithPersistHook(fn func(error)) Option {
	return func(r *Registry) { r.persisted = fn }
}

// New loads the registry for userKey, falling back to the default catalog
// when no blob exists or the stored one is unreadable.
func New(ctx context.Context, blobs blobstore.Store, store BucketCreator, userKey string, logg *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		types: Defaults(),
		store: store,
		blobs: blobs,
		key:   "workout-types:" + userKey,
		logg:  logg,
	}
	for _, opt := range opts {
		opt(r)
	}

	blob, err := blobs.Load(ctx, r.key)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		// first run, keep defaults
	case err != nil:
		logg.Warn("workout type registry load failed, using defaults", "key", r.key, "error", err)
	default:
		var stored []models.WorkoutType
		if err := json.Unmarshal(blob, &stored); err != nil {
			logg.Warn("workout type registry corrupted, using defaults", "key", r.key, "error", err)
		} else {
			r.types = stored
		}
	}

	return r
}

// Types returns the catalog in registration order.
func (r *Registry) Types() []models.WorkoutType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.WorkoutType, len(r.types))
	copy(out, r.types)
	return out
}

// TypeByID resolves a type by id. Removed or never-registered ids resolve
// to ok == false; history under such ids stays addressable, the caller just
// renders it as an unknown type.
func (r *Registry) TypeByID(id string) (models.WorkoutType, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.types {
		if t.ID == id {
			return t, true
		}
	}
	return models.WorkoutType{}, false
}

// AddType registers a workout type. An empty id derives a time-based one
// with the custom- prefix. New types are selected by default and
// immediately get an empty bucket on the current date.
func (r *Registry) AddType(id, name, icon, color string) models.WorkoutType {
	if id == "" {
		id = fmt.Sprintf("custom-%d", time.Now().UnixMilli())
	}
	t := models.WorkoutType{ID: id, Name: name, Icon: icon, Color: color, Selected: true}

	r.mu.Lock()
	r.types = append(r.types, t)
	r.mu.Unlock()

	if r.store != nil {
		r.store.SetWorkoutTypesForDate(r.store.SelectedDate(), []models.WorkoutType{t})
	}
	r.save()
	return t
}

// SetSelected flips the selected flag of a type and, when selecting,
// ensures the current date has a bucket for it.
func (r *Registry) SetSelected(id string, selected bool) {
	var changed *models.WorkoutType

	r.mu.Lock()
	for i := range r.types {
		if r.types[i].ID == id {
			r.types[i].Selected = selected
			t := r.types[i]
			changed = &t
			break
		}
	}
	r.mu.Unlock()

	if changed == nil {
		return
	}
	if selected && r.store != nil {
		r.store.SetWorkoutTypesForDate(r.store.SelectedDate(), []models.WorkoutType{*changed})
	}
	r.save()
}

// RemoveType deletes a type from the catalog. Historical exercise data
// under the id is untouched.
func (r *Registry) RemoveType(id string) {
	r.mu.Lock()
	kept := r.types[:0]
	for _, t := range r.types {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	r.types = kept
	r.mu.Unlock()

	r.save()
}

// ResetTypes discards the whole catalog, custom types included, and
// restores the defaults. Workout data is not affected.
func (r *Registry) ResetTypes() {
	r.mu.Lock()
	r.types = Defaults()
	r.mu.Unlock()

	r.save()
}

// save persists the catalog best-effort. Failures are logged and reported
// to the hook; the in-memory catalog stays authoritative for the session.
func (r *Registry) save() {
	r.mu.Lock()
	blob, err := json.Marshal(r.types)
	r.mu.Unlock()
	if err == nil {
		err = r.blobs.Save(context.Background(), r.key, blob)
	}
	if err != nil {
		r.logg.Error("workout type registry persist failed", "key", r.key, "error", err)
	}
	if r.persisted != nil {
		r.persisted(err)
	}
}
