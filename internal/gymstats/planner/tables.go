package planner

import "strings"

type Goal string

const (
	GoalStrength    Goal = "strength"
	GoalHypertrophy Goal = "hypertrophy"
	GoalMaintenance Goal = "maintenance"
)

// ParseGoal matches the goal exactly, anything unknown falls back to hypertrophy.
func ParseGoal(goal string) Goal {
	switch Goal(goal) {
	case GoalStrength, GoalHypertrophy, GoalMaintenance:
		return Goal(goal)
	default:
		return GoalHypertrophy
	}
}

var weekdays = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

type keywordIncrement struct {
	keyword string
	kg      float64
}

const defaultIncrementKg = 1.0

// weeklyIncrements are matched in order, first keyword found in the exercise name wins.
var weeklyIncrements = []keywordIncrement{
	{"deadlift", 5.0},
	{"squat", 5.0},
	{"leg press", 5.0},
	{"bench", 2.5},
	{"overhead", 1.25},
	{"press", 2.5},
	{"row", 2.5},
	{"pull", 1.25},
	{"curl", 0.5},
	{"extension", 0.5},
	{"raise", 0.5},
	{"fly", 0.5},
}

func weeklyIncrementKg(exercise string) float64 {
	name := strings.ToLower(exercise)
	for _, ki := range weeklyIncrements {
		if strings.Contains(name, ki.keyword) {
			return ki.kg
		}
	}
	return defaultIncrementKg
}

const defaultBestSetIntensity = 0.85

// bestSetIntensity is the narrower RPE chart used to estimate 1RM from the best recent set.
var bestSetIntensity = map[float64]float64{
	10.0: 1.00,
	9.5:  0.97,
	9.0:  0.94,
	8.5:  0.91,
	8.0:  0.88,
	7.5:  0.85,
	7.0:  0.82,
}

func bestSetIntensityFraction(rpe *float64) float64 {
	if rpe == nil {
		return defaultBestSetIntensity
	}
	if f, ok := bestSetIntensity[*rpe]; ok {
		return f
	}
	return defaultBestSetIntensity
}

type templateEntry struct {
	sets      int
	reps      int
	intensity float64
	label     string
}

var templates = map[Goal][]templateEntry{
	GoalStrength: {
		{5, 5, 0.85, "Heavy strength"},
		{4, 6, 0.80, "Volume strength"},
		{6, 3, 0.90, "Peak intensity"},
	},
	GoalHypertrophy: {
		{4, 8, 0.75, "Hypertrophy - moderate"},
		{3, 12, 0.67, "Hypertrophy - metabolic"},
		{4, 10, 0.70, "Hypertrophy - volume"},
	},
	GoalMaintenance: {
		{3, 8, 0.70, "Maintenance"},
		{3, 6, 0.75, "Maintenance - heavy"},
	},
}

type DayType string

const (
	DayFullBody DayType = "Full Body"
	DayPush     DayType = "Push"
	DayPull     DayType = "Pull"
	DayLegs     DayType = "Legs"
	DayUpper    DayType = "Upper"
	DayLower    DayType = "Lower"
)

func trainingSplit(trainingDays int) []DayType {
	switch {
	case trainingDays <= 2:
		return []DayType{DayFullBody, DayFullBody}
	case trainingDays == 3:
		return []DayType{DayPush, DayPull, DayLegs}
	case trainingDays == 4:
		return []DayType{DayUpper, DayLower, DayUpper, DayLower}
	case trainingDays == 5:
		return []DayType{DayPush, DayPull, DayLegs, DayUpper, DayLower}
	default:
		return []DayType{DayPush, DayPull, DayLegs, DayPush, DayPull, DayLegs}
	}
}

var dayKeywords = map[DayType][]string{
	DayPush:  {"bench", "press", "chest"},
	DayPull:  {"row", "pull", "deadlift"},
	DayLegs:  {"squat", "leg", "deadlift"},
	DayLower: {"squat", "leg", "deadlift"},
	DayUpper: {"bench", "press", "row", "pull", "chest"},
}

func (d DayType) Includes(exercise string) bool {
	if d == DayFullBody {
		return true
	}
	name := strings.ToLower(exercise)
	for _, kw := range dayKeywords[d] {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
