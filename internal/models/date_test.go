package models

import "testing"

// TestCompareDatesChronological verifies chronological ordering of
// well-formed date keys across month and year boundaries.
func TestCompareDatesChronological(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2024-01-03", "2024-01-10", -1},
		{"2024-01-10", "2024-01-03", 1},
		{"2024-01-10", "2024-01-10", 0},
		{"2023-12-31", "2024-01-01", -1},
		{"2024-09-30", "2024-10-01", -1},
	}
	for _, c := range cases {
		if got := CompareDates(c.a, c.b); got != c.want {
			t.Errorf("CompareDates(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

// TestCompareDatesFallback verifies that keys which fail to parse still get
// a deterministic (lexicographic) order instead of an error or a panic.
func TestCompareDatesFallback(t *testing.T) {
	if got := CompareDates("garbage-a", "garbage-b"); got >= 0 {
		t.Errorf("CompareDates fallback = %d, want negative", got)
	}
	if got := CompareDates("garbage", "garbage"); got != 0 {
		t.Errorf("CompareDates equal fallback = %d, want 0", got)
	}
}

// TestDateBefore verifies the strict ordering helper used by the
// previous-occurrence search: equal dates are not "before".
func TestDateBefore(t *testing.T) {
	if !DateBefore("2024-01-03", "2024-01-10") {
		t.Error("2024-01-03 should be before 2024-01-10")
	}
	if DateBefore("2024-01-10", "2024-01-10") {
		t.Error("a date must not be before itself")
	}
	if DateBefore("2024-01-11", "2024-01-10") {
		t.Error("2024-01-11 must not be before 2024-01-10")
	}
}

// TestWorkoutLogClone verifies the deep copy: mutating a clone's sets must
// not leak into the original log.
func TestWorkoutLogClone(t *testing.T) {
	log := WorkoutLog{
		"2024-01-10": {
			"chest": {
				{ID: "e1", Name: "Supino", Sets: []ExerciseSet{{ID: "s1", Reps: 10, Weight: 50}}},
			},
		},
	}

	clone := log.Clone()
	clone["2024-01-10"]["chest"][0].Sets[0].Weight = 999
	clone["2024-01-10"]["chest"] = append(clone["2024-01-10"]["chest"], Exercise{ID: "e2"})

	orig := log["2024-01-10"]["chest"]
	if len(orig) != 1 {
		t.Fatalf("original bucket has %d exercises, want 1", len(orig))
	}
	if orig[0].Sets[0].Weight != 50 {
		t.Errorf("original set weight = %v, want 50", orig[0].Sets[0].Weight)
	}
}
