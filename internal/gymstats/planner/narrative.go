package planner

import (
	"fmt"
)

const (
	compoundIncrementKg  = 2.5
	isolationIncrementKg = 1.0
	minVarietyExercises  = 3
	highAverageRPE       = 8.0
)

func progressionStrategy(goal Goal, deload bool) string {
	if deload {
		return "Deload week: volume reduced by 50% and intensity by 15% to dissipate fatigue, resume progression next week"
	}
	switch goal {
	case GoalStrength:
		return "Linear progression: add load every week at fixed reps, intensity waves across heavy, volume and peak days"
	case GoalMaintenance:
		return "Maintenance: hold current loads and volume, keep effort moderate"
	default:
		return "Double progression with daily undulating periodization (DUP): fill the rep range first, then add load"
	}
}

func dayNote(dayType DayType, entry templateEntry, gate fatigueGate, recoveryScore *float64) string {
	note := fmt.Sprintf("%s day - %s", dayType, entry.label)
	if gate.deload {
		note += " (deload week)"
	}
	if recoveryScore != nil && *recoveryScore < limitedRecoveryBelow {
		note += fmt.Sprintf(", recovery is limited: keep every set at or below RPE %.1f", gate.rpeCap)
	}
	return note
}

func exerciseNote(a analyzedExercise, entry templateEntry, deload bool) string {
	if deload {
		return "Deload - smooth reps, stop well short of failure"
	}
	return fmt.Sprintf("%s, based on estimated 1RM of %.1f kg", entry.label, a.EstimatedOneRepMax)
}

func recommendations(analyzed []analyzedExercise, gate fatigueGate, recoveryScore *float64) []string {
	var recs []string

	if gate.deload {
		if gate.avgRecentRPE > deloadRPEThreshold {
			recs = append(recs, fmt.Sprintf(
				"High accumulated fatigue (avg RPE %.1f) - deload week scheduled", gate.avgRecentRPE,
			))
		}
		if recoveryScore != nil && *recoveryScore < deloadRecoveryBelow {
			recs = append(recs, fmt.Sprintf(
				"Low recovery score (%.0f) - prioritize sleep and recovery this week", *recoveryScore,
			))
		}
	}

	if recoveryScore != nil && *recoveryScore >= deloadRecoveryBelow && *recoveryScore < limitedRecoveryBelow {
		recs = append(recs, fmt.Sprintf(
			"Moderate recovery (%.0f) - RPE capped at %.1f, focus on sleep quality", *recoveryScore, gate.rpeCap,
		))
	}

	if !gate.deload && gate.avgRecentRPE > highAverageRPE {
		recs = append(recs, fmt.Sprintf(
			"Average RPE %.1f is high - consider an extra rest day this week", gate.avgRecentRPE,
		))
	}

	for _, a := range analyzed {
		switch {
		case a.ProgressionIncrementKg >= compoundIncrementKg:
			recs = append(recs, fmt.Sprintf(
				"%s: compound lift, progress by %g kg per week", a.name, a.ProgressionIncrementKg,
			))
		case a.ProgressionIncrementKg < isolationIncrementKg:
			recs = append(recs, fmt.Sprintf(
				"%s: isolation movement, progress by %g kg per week or add reps first", a.name, a.ProgressionIncrementKg,
			))
		}
	}

	if len(analyzed) < minVarietyExercises {
		recs = append(recs, fmt.Sprintf(
			"Only %d exercise(s) with enough history - log more movements for a balanced plan", len(analyzed),
		))
	}

	return append(recs, "Track RPE for every session to refine future plans")
}
