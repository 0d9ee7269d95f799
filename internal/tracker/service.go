// Package tracker composes the workout store, the type registry and the
// analytics functions behind one service boundary. UI collaborators (REST
// handlers, MCP tools) talk to this instead of reaching into the parts.
package tracker

import (
	"context"
	"log/slog"

	"github.com/claude/setlog/internal/analytics"
	"github.com/claude/setlog/internal/models"
	"github.com/claude/setlog/internal/registry"
	"github.com/claude/setlog/internal/store"
)

// Service is the stateful boundary wrapper. Query methods take explicit
// dates so the underlying analytics stay pure; only the cursor and the
// mutation operations live on the store itself.
type Service struct {
	Store    *store.Store
	Registry *registry.Registry
	log      *slog.Logger
}

// New wires a Service.
func New(st *store.Store, reg *registry.Registry, log *slog.Logger) *Service {
	return &Service{Store: st, Registry: reg, log: log}
}

// Progression pairs a day's totals for one workout type with the most
// recent earlier occurrence of that type. Previous and Changes are nil when
// the type has no history, which renders as "first workout" — distinct from
// a historical day that happened to total zero.
type Progression struct {
	Current      models.Totals          `json:"current"`
	Previous     *models.Totals         `json:"previous"`
	PreviousDate string                 `json:"previous_date,omitempty"`
	Changes      *analytics.TotalsDelta `json:"changes,omitempty"`
}

// ExerciseProgression is the bodyweight-aware comparison of one exercise
// name between a date and the previous occurrence of its workout type.
// Comparison is nil when either side lacks the exercise or there is no
// previous occurrence.
type ExerciseProgression struct {
	Name         string                        `json:"name"`
	PreviousDate string                        `json:"previous_date,omitempty"`
	Comparison   *analytics.ExerciseComparison `json:"comparison"`
}

// DayTotals aggregates every bucket logged for date, including the
// summed-averages behavior documented on analytics.ComputeDayTotals.
func (s *Service) DayTotals(_ context.Context, date string) (models.Totals, error) {
	return analytics.ComputeDayTotals(s.Store.Day(date)), nil
}

// WorkoutTotals aggregates one (date, workout type) bucket. Missing keys
// aggregate to all-zero Totals.
func (s *Service) WorkoutTotals(_ context.Context, date, workoutTypeID string) (models.Totals, error) {
	return analytics.ComputeTotals(s.Store.Exercises(date, workoutTypeID)), nil
}

// Progression computes current totals for (date, type) and compares them
// against the nearest prior occurrence.
func (s *Service) Progression(_ context.Context, date, workoutTypeID string) (*Progression, error) {
	p := &Progression{
		Current: analytics.ComputeTotals(s.Store.Exercises(date, workoutTypeID)),
	}

	occ := analytics.FindPreviousOccurrence(s.Store.Snapshot(), date, workoutTypeID)
	if occ.Totals == nil {
		return p, nil
	}
	p.Previous = occ.Totals
	p.PreviousDate = occ.Date
	delta := analytics.CompareTotals(p.Current, *occ.Totals)
	p.Changes = &delta
	return p, nil
}

// ExerciseProgression compares one exercise, matched by name
// case-insensitively, between date and the previous occurrence of its
// workout type.
func (s *Service) ExerciseProgression(_ context.Context, date, workoutTypeID, name string) (*ExerciseProgression, error) {
	out := &ExerciseProgression{Name: name}

	current, ok := analytics.FindExerciseByName(s.Store.Exercises(date, workoutTypeID), name)
	if !ok {
		return out, nil
	}

	occ := analytics.FindPreviousOccurrence(s.Store.Snapshot(), date, workoutTypeID)
	if occ.Totals == nil {
		return out, nil
	}
	previous, ok := analytics.FindExerciseByName(s.Store.Exercises(occ.Date, workoutTypeID), name)
	if !ok {
		return out, nil
	}

	out.PreviousDate = occ.Date
	cmp := analytics.CompareExercises(current, previous)
	out.Comparison = &cmp
	return out, nil
}

// WorkoutTypes returns the registry catalog.
func (s *Service) WorkoutTypes(_ context.Context) ([]models.WorkoutType, error) {
	return s.Registry.Types(), nil
}

// LoggedDates returns every date with logged data, newest first.
func (s *Service) LoggedDates(_ context.Context) ([]string, error) {
	return s.Store.Dates(), nil
}
