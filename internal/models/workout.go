package models

// Category classifies how an exercise is accounted for in totals.
// The values are the literal strings logged by the app's exercise picker.
type Category string

const (
	CategoryStrength    Category = "força"
	CategoryCardio      Category = "cardio"
	CategoryFlexibility Category = "flexibilidade"
	CategoryBalance     Category = "equilíbrio"
)

// ExerciseSet is one repetition group of an exercise. IDs are generated by
// the store when absent; they only need to be unique within one exercise.
type ExerciseSet struct {
	ID     string  `json:"id"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// Exercise is one logged movement within a workout-type bucket on a given
// date. It is either strength-accounted (Sets) or cardio-accounted
// (CardioDuration); the two paths are mutually exclusive for totals.
// Sets may be empty — a placeholder exercise awaiting input is valid.
type Exercise struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Sets                 []ExerciseSet `json:"sets,omitempty"`
	Notes                string        `json:"notes,omitempty"`
	CardioDuration       *int          `json:"cardio_duration,omitempty"` // minutes
	CardioIntensity      *int          `json:"cardio_intensity,omitempty"`
	Category             Category      `json:"category,omitempty"`
	IsBodyweightExercise bool          `json:"is_bodyweight_exercise,omitempty"`
}

// WorkoutType is a named, colored category of training. ID is the stable
// partition key into the workout log; default types have fixed well-known
// ids, custom types get a time-derived id.
type WorkoutType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	Selected  bool   `json:"selected"`
	IsDefault bool   `json:"is_default,omitempty"`
}

// WorkoutLog is the authoritative structure: date → workout-type id →
// exercise list. A (date, typeID) key that exists always maps to a slice,
// possibly empty; absence of the key means "not configured for that date".
type WorkoutLog map[string]map[string][]Exercise

// Clone returns a deep copy of the log. Mutations on the copy never touch
// the original's slices.
func (l WorkoutLog) Clone() WorkoutLog {
	out := make(WorkoutLog, len(l))
	for date, day := range l {
		dayCopy := make(map[string][]Exercise, len(day))
		for typeID, exercises := range day {
			list := make([]Exercise, len(exercises))
			for i, ex := range exercises {
				list[i] = ex.Clone()
			}
			dayCopy[typeID] = list
		}
		out[date] = dayCopy
	}
	return out
}

// Clone returns a copy of the exercise with its own set slice.
func (e Exercise) Clone() Exercise {
	out := e
	if e.Sets != nil {
		out.Sets = make([]ExerciseSet, len(e.Sets))
		copy(out.Sets, e.Sets)
	}
	if e.CardioDuration != nil {
		d := *e.CardioDuration
		out.CardioDuration = &d
	}
	if e.CardioIntensity != nil {
		i := *e.CardioIntensity
		out.CardioIntensity = &i
	}
	return out
}

// Totals is the derived numeric summary of an exercise list. It is always
// fully computed; zero-valued fields mean no qualifying data, never
// "missing".
type Totals struct {
	TotalExercises int     `json:"total_exercises"`
	TotalSets      int     `json:"total_sets"`
	TotalVolume    float64 `json:"total_volume"`
	TotalDuration  int     `json:"total_duration_min"`
	AvgWeight      int     `json:"avg_weight"`
	MaxWeight      float64 `json:"max_weight"`
	AvgReps        int     `json:"avg_reps"`
	TotalReps      int     `json:"total_reps"`
}
