package mcp

import (
	"context"

	"github.com/claude/setlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetDayTotals = mcp.NewTool("get_day_totals",
	mcp.WithDescription("Aggregated totals for everything logged on one date, across all workout types: exercises, sets, volume (kg×reps), reps, duration, weight stats."),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetWorkoutTotals = mcp.NewTool("get_workout_totals",
	mcp.WithDescription("Aggregated totals for one workout type on one date. A type with nothing logged returns all-zero totals."),
	mcp.WithString("type", mcp.Required(), mcp.Description("Workout type id (e.g. 'chest', 'back', or a custom- id)")),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetProgression = mcp.NewTool("get_progression",
	mcp.WithDescription("Compare a workout type's totals on a date against its most recent earlier occurrence. Returns current totals, previous totals with their date, and per-metric percent changes. previous is null when the type has no history."),
	mcp.WithString("type", mcp.Required(), mcp.Description("Workout type id")),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to today.")),
)

var toolCompareExercise = mcp.NewTool("compare_exercise",
	mcp.WithDescription("Bodyweight-aware comparison of one exercise between a date and the previous occurrence of its workout type. Weighted pairs compare volume and max weight, bodyweight pairs compare reps, mismatched pairs are reported as not comparable."),
	mcp.WithString("type", mcp.Required(), mcp.Description("Workout type id")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name (case-insensitive exact match)")),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to today.")),
)

var toolListWorkoutTypes = mcp.NewTool("list_workout_types",
	mcp.WithDescription("List the workout type catalog: built-in defaults plus custom types, with icon, color and selected flag."),
)

var toolListLoggedDates = mcp.NewTool("list_logged_dates",
	mcp.WithDescription("List every date with logged workout data, newest first."),
)

func dateOrToday(req mcp.CallToolRequest) string {
	if d := req.GetString("date", ""); d != "" {
		return d
	}
	return models.Today()
}

// --- Tool handlers ---

func (h *handlers) getDayTotals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	totals, err := h.ds.DayTotals(ctx, dateOrToday(req))
	if err != nil {
		h.log.Error("mcp get_day_totals", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(totals)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutTotals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typeID, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type parameter is required"), nil
	}

	totals, err := h.ds.WorkoutTotals(ctx, dateOrToday(req), typeID)
	if err != nil {
		h.log.Error("mcp get_workout_totals", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(totals)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typeID, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type parameter is required"), nil
	}

	prog, err := h.ds.Progression(ctx, dateOrToday(req), typeID)
	if err != nil {
		h.log.Error("mcp get_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(prog)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) compareExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typeID, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	cmp, err := h.ds.ExerciseProgression(ctx, dateOrToday(req), typeID, name)
	if err != nil {
		h.log.Error("mcp compare_exercise", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(cmp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listWorkoutTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types, err := h.ds.WorkoutTypes(ctx)
	if err != nil {
		h.log.Error("mcp list_workout_types", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(types)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listLoggedDates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dates, err := h.ds.LoggedDates(ctx)
	if err != nil {
		h.log.Error("mcp list_logged_dates", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(dates)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
