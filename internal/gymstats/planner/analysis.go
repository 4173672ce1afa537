package planner

import (
	"sort"

	"github.com/2beens/strengthplan/internal/gymstats"
	"github.com/2beens/strengthplan/pkg"
)

const (
	historyWindow     = 12
	averageWindow     = 5
	bestSetWindow     = 3
	minSessions       = 2
	missingRPEAverage = 8.0
	zeroWeightRate    = 0.025
)

// ExerciseAnalysis holds the per-exercise figures the plan is derived from.
type ExerciseAnalysis struct {
	AverageRecentWeight    float64 `json:"average_recent_weight"`
	AverageRecentRPE       float64 `json:"average_recent_rpe"`
	ProgressionIncrementKg float64 `json:"progression_increment_kg"`
	ProgressionRate        float64 `json:"progression_rate"`
	EstimatedOneRepMax     float64 `json:"estimated_1rm"`
	SampleCount            int     `json:"sample_count"`
}

func (a ExerciseAnalysis) rounded() ExerciseAnalysis {
	return ExerciseAnalysis{
		AverageRecentWeight:    pkg.Round(a.AverageRecentWeight, 2),
		AverageRecentRPE:       pkg.Round(a.AverageRecentRPE, 2),
		ProgressionIncrementKg: a.ProgressionIncrementKg,
		ProgressionRate:        pkg.Round(a.ProgressionRate, 4),
		EstimatedOneRepMax:     pkg.Round(a.EstimatedOneRepMax, 2),
		SampleCount:            a.SampleCount,
	}
}

type analyzedExercise struct {
	name string
	ExerciseAnalysis
}

// analyzeHistory returns the exercises with enough history, ordered by name.
func analyzeHistory(history gymstats.ExerciseHistory) []analyzedExercise {
	names := make([]string, 0, len(history))
	for name := range history {
		names = append(names, name)
	}
	sort.Strings(names)

	analyzed := make([]analyzedExercise, 0, len(names))
	for _, name := range names {
		sessions := tail(history[name], historyWindow)
		if len(sessions) < minSessions {
			continue
		}
		analyzed = append(analyzed, analyzedExercise{
			name:             name,
			ExerciseAnalysis: analyzeExercise(name, sessions),
		})
	}
	return analyzed
}

func analyzeExercise(name string, sessions []gymstats.Session) ExerciseAnalysis {
	recent := tail(sessions, averageWindow)
	var weightSum, rpeSum float64
	for _, s := range recent {
		weightSum += s.Weight
		rpeSum += s.RPEOr(missingRPEAverage)
	}
	avgWeight := weightSum / float64(len(recent))
	avgRPE := rpeSum / float64(len(recent))

	increment := weeklyIncrementKg(name)
	rate := zeroWeightRate
	if avgWeight != 0 {
		rate = increment / avgWeight
	}

	best := tail(sessions, bestSetWindow)[0]
	for _, s := range tail(sessions, bestSetWindow)[1:] {
		if s.Weight > best.Weight {
			best = s
		}
	}

	return ExerciseAnalysis{
		AverageRecentWeight:    avgWeight,
		AverageRecentRPE:       avgRPE,
		ProgressionIncrementKg: increment,
		ProgressionRate:        rate,
		EstimatedOneRepMax:     best.Weight / bestSetIntensityFraction(best.RPE),
		SampleCount:            len(sessions),
	}
}

func tail(sessions []gymstats.Session, n int) []gymstats.Session {
	if len(sessions) <= n {
		return sessions
	}
	return sessions[len(sessions)-n:]
}
