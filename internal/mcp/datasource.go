package mcp

import (
	"context"

	"github.com/claude/setlog/internal/models"
	"github.com/claude/setlog/internal/tracker"
)

// DataSource abstracts the tracking engine for MCP tools. Both
// *tracker.Service (local store) and HTTPClient (remote via REST API)
// satisfy this interface.
type DataSource interface {
	DayTotals(ctx context.Context, date string) (models.Totals, error)
	WorkoutTotals(ctx context.Context, date, workoutTypeID string) (models.Totals, error)
	Progression(ctx context.Context, date, workoutTypeID string) (*tracker.Progression, error)
	ExerciseProgression(ctx context.Context, date, workoutTypeID, name string) (*tracker.ExerciseProgression, error)
	WorkoutTypes(ctx context.Context) ([]models.WorkoutType, error)
	LoggedDates(ctx context.Context) ([]string, error)
}

// Compile-time check: *tracker.Service satisfies DataSource.
var _ DataSource = (*tracker.Service)(nil)
