package planner

import "math"

const (
	defaultRPECap         = 9.5
	deloadRPEThreshold    = 8.7
	deloadRecoveryBelow   = 50.0
	deloadVolumeFactor    = 0.5
	deloadIntensityFactor = 0.85
)

type fatigueGate struct {
	avgRecentRPE float64
	rpeCap       float64
	deload       bool
}

// recoveryCaps are checked in order, the first bound above the recovery score applies.
var recoveryCaps = []struct {
	below float64
	cap   float64
}{
	{50, 7.0},
	{60, 7.5},
	{70, 8.0},
	{80, 8.5},
}

func computeFatigueGate(analyzed []analyzedExercise, recoveryScore *float64) fatigueGate {
	var rpeSum float64
	for _, a := range analyzed {
		rpeSum += a.AverageRecentRPE
	}
	avgRPE := rpeSum / float64(len(analyzed))

	rpeCap := defaultRPECap
	if recoveryScore != nil {
		for _, rc := range recoveryCaps {
			if *recoveryScore < rc.below {
				rpeCap = rc.cap
				break
			}
		}
	}

	switch {
	case avgRPE > 8.5:
		rpeCap = math.Min(rpeCap, 8.0)
	case avgRPE > 8.0:
		rpeCap = math.Min(rpeCap, 8.5)
	}

	deload := avgRPE > deloadRPEThreshold ||
		(recoveryScore != nil && *recoveryScore < deloadRecoveryBelow)

	return fatigueGate{
		avgRecentRPE: avgRPE,
		rpeCap:       rpeCap,
		deload:       deload,
	}
}
