package analytics

import (
	"sort"
	"strings"

	"github.com/claude/setlog/internal/models"
)

// Occurrence is the result of a previous-occurrence search. A nil Totals
// (and empty Date) means the workout type has no earlier history at all,
// which callers must render as "first workout" — it is not the same as a
// zero-valued historical day.
type Occurrence struct {
	Totals *models.Totals `json:"totals"`
	Date   string         `json:"date,omitempty"`
}

// FindPreviousOccurrence scans the log for the most recent date strictly
// before selectedDate whose bucket for workoutTypeID exists and holds at
// least one exercise, and returns that day's totals. Empty buckets are
// skipped: a type that was selected but never logged does not count as
// history.
func FindPreviousOccurrence(log models.WorkoutLog, selectedDate, workoutTypeID string) Occurrence {
	var candidates []string
	for date := range log {
		if models.DateBefore(date, selectedDate) {
			candidates = append(candidates, date)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return models.CompareDates(candidates[i], candidates[j]) > 0
	})

	for _, date := range candidates {
		exercises, ok := log[date][workoutTypeID]
		if !ok || len(exercises) == 0 {
			continue
		}
		totals := ComputeTotals(exercises)
		return Occurrence{Totals: &totals, Date: date}
	}
	return Occurrence{}
}

// PercentChange returns the relative change from previous to current in
// percent. A previous of zero (or less) is not a computable baseline and
// yields 0 rather than a division by zero.
func PercentChange(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	return 0
}

// InversePercentChange is PercentChange with the sign flipped, for metrics
// where lower is better.
func InversePercentChange(current, previous float64) float64 {
	return -PercentChange(current, previous)
}

// TotalsDelta holds percent changes between two Totals, metric by metric.
type TotalsDelta struct {
	Volume    float64 `json:"volume_pct"`
	Sets      float64 `json:"sets_pct"`
	Reps      float64 `json:"reps_pct"`
	Duration  float64 `json:"duration_pct"`
	MaxWeight float64 `json:"max_weight_pct"`
}

// CompareTotals computes per-metric percent changes from previous to
// current.
func CompareTotals(current, previous models.Totals) TotalsDelta {
	return TotalsDelta{
		Volume:    PercentChange(current.TotalVolume, previous.TotalVolume),
		Sets:      PercentChange(float64(current.TotalSets), float64(previous.TotalSets)),
		Reps:      PercentChange(float64(current.TotalReps), float64(previous.TotalReps)),
		Duration:  PercentChange(float64(current.TotalDuration), float64(previous.TotalDuration)),
		MaxWeight: PercentChange(current.MaxWeight, previous.MaxWeight),
	}
}

// IsBodyweight classifies an exercise for comparison purposes. An exercise
// is bodyweight when it is flagged as such or when every one of its sets
// carries zero weight. The classification is derived here, once, so that
// every comparison site applies the same rule.
func IsBodyweight(ex models.Exercise) bool {
	if ex.IsBodyweightExercise {
		return true
	}
	for _, set := range ex.Sets {
		if set.Weight != 0 {
			return false
		}
	}
	return true
}

// ExerciseComparison compares the same exercise across two dates.
//
// Comparable is false when one side is bodyweight and the other weighted;
// in that case no change fields are populated, because any volume or
// max-weight ratio across the classification boundary would be misleading
// and the caller should suppress the progression badge entirely.
type ExerciseComparison struct {
	Comparable      bool     `json:"comparable"`
	Bodyweight      bool     `json:"bodyweight"`
	RepsChange      *float64 `json:"reps_pct,omitempty"`
	VolumeChange    *float64 `json:"volume_pct,omitempty"`
	MaxWeightChange *float64 `json:"max_weight_pct,omitempty"`
}

// CompareExercises applies the bodyweight-aware comparison policy:
// both weighted → volume and max weight; both bodyweight → reps only;
// mismatched → not comparable.
func CompareExercises(current, previous models.Exercise) ExerciseComparison {
	curBW := IsBodyweight(current)
	prevBW := IsBodyweight(previous)
	if curBW != prevBW {
		return ExerciseComparison{}
	}

	curTotals := ComputeTotals([]models.Exercise{current})
	prevTotals := ComputeTotals([]models.Exercise{previous})

	cmp := ExerciseComparison{Comparable: true, Bodyweight: curBW}
	if curBW {
		reps := PercentChange(float64(curTotals.TotalReps), float64(prevTotals.TotalReps))
		cmp.RepsChange = &reps
		return cmp
	}
	volume := PercentChange(curTotals.TotalVolume, prevTotals.TotalVolume)
	maxW := PercentChange(curTotals.MaxWeight, prevTotals.MaxWeight)
	cmp.VolumeChange = &volume
	cmp.MaxWeightChange = &maxW
	return cmp
}

// FindExerciseByName returns the first exercise whose name matches name
// case-insensitively. Matching is exact, no fuzzing.
func FindExerciseByName(exercises []models.Exercise, name string) (models.Exercise, bool) {
	for _, ex := range exercises {
		if strings.EqualFold(ex.Name, name) {
			return ex, true
		}
	}
	return models.Exercise{}, false
}
