// Package analytics holds the pure aggregation and progression functions of
// the tracking engine. Nothing here touches mutable state: callers pass the
// exercise lists (or a whole log snapshot) in and get derived values out.
package analytics

import (
	"math"

	"github.com/claude/setlog/internal/models"
)

// minutesPerSet is the fixed duration heuristic credited for every logged
// strength set.
const minutesPerSet = 2

// ComputeTotals reduces an exercise list into a Totals record.
//
// Cardio exercises (category "cardio" with a duration) contribute only to
// TotalDuration. Every other exercise is strength-accounted: its sets feed
// volume, reps, weight averages and max, and each set adds two minutes of
// duration. An empty input yields an all-zero Totals, never an error.
func ComputeTotals(exercises []models.Exercise) models.Totals {
	t := models.Totals{TotalExercises: len(exercises)}

	var weightSum, repsSum float64
	var weightCount, repsCount int

	for _, ex := range exercises {
		if ex.Category == models.CategoryCardio && ex.CardioDuration != nil {
			t.TotalDuration += *ex.CardioDuration
			continue
		}
		for _, set := range ex.Sets {
			t.TotalVolume += set.Weight * float64(set.Reps)
			t.TotalReps += set.Reps
			weightSum += set.Weight
			weightCount++
			repsSum += float64(set.Reps)
			repsCount++
			if set.Weight > t.MaxWeight {
				t.MaxWeight = set.Weight
			}
			t.TotalSets++
		}
		t.TotalDuration += len(ex.Sets) * minutesPerSet
	}

	if weightCount > 0 {
		t.AvgWeight = int(math.Round(weightSum / float64(weightCount)))
	}
	if repsCount > 0 {
		t.AvgReps = int(math.Round(repsSum / float64(repsCount)))
	}
	return t
}

// ComputeDayTotals sums per-type totals across every workout-type bucket
// logged for one date.
//
// AvgWeight and AvgReps are summed across buckets rather than re-averaged,
// so with several types on one day the day-level "averages" exceed any true
// per-set average. That matches the historical behavior the app's UI was
// built around; see the companion test before changing it.
func ComputeDayTotals(day map[string][]models.Exercise) models.Totals {
	var sum models.Totals
	for _, exercises := range day {
		t := ComputeTotals(exercises)
		sum.TotalExercises += t.TotalExercises
		sum.TotalSets += t.TotalSets
		sum.TotalVolume += t.TotalVolume
		sum.TotalDuration += t.TotalDuration
		sum.AvgWeight += t.AvgWeight
		sum.AvgReps += t.AvgReps
		sum.TotalReps += t.TotalReps
		if t.MaxWeight > sum.MaxWeight {
			sum.MaxWeight = t.MaxWeight
		}
	}
	return sum
}
