package recovery

import (
	"math"

	"github.com/2beens/strengthplan/pkg"
)

const fullRecoveryHours = 48.0

type Readiness string

const (
	ReadinessExcellent Readiness = "Excellent"
	ReadinessGood      Readiness = "Good"
	ReadinessModerate  Readiness = "Moderate"
	ReadinessPoor      Readiness = "Poor"
)

type Inputs struct {
	LastSessionRPE     float64
	HoursSinceTraining float64
	SleepQuality       float64
	StressLevel        float64
	MuscleSoreness     float64
}

type Assessment struct {
	Score                float64
	RecommendedIntensity float64
	Readiness            Readiness
	Recommendations      []string
}

type band struct {
	minScore        float64
	readiness       Readiness
	intensity       float64
	recommendations []string
}

// bands are ordered from best to worst, the first band whose minimum is reached wins.
var bands = []band{
	{85, ReadinessExcellent, 9.0, []string{"Go for a PR attempt", "High intensity training ready"}},
	{70, ReadinessGood, 7.5, []string{"Normal training intensity", "Focus on technique"}},
	{50, ReadinessModerate, 6.0, []string{"Light to moderate training", "Extra warm-up needed"}},
	{math.Inf(-1), ReadinessPoor, 4.0, []string{"Rest day recommended", "Light mobility work only"}},
}

// RawScore blends the five recovery factors into a 0-100 score.
func RawScore(in Inputs) float64 {
	timeRecovery := math.Min(100, in.HoursSinceTraining/fullRecoveryHours*100)
	sleepRecovery := in.SleepQuality / 10 * 100
	stressRecovery := (10 - in.StressLevel) / 10 * 100
	sorenessRecovery := (10 - in.MuscleSoreness) / 10 * 100
	effortRecovery := (10 - in.LastSessionRPE) / 10 * 100

	// explicit conversions forbid fused multiply-add, band edges must be exact
	return float64(timeRecovery*0.30) +
		float64(sleepRecovery*0.25) +
		float64(stressRecovery*0.20) +
		float64(sorenessRecovery*0.15) +
		float64(effortRecovery*0.10)
}

// Score assesses training readiness. Banding uses the unrounded score,
// the reported score is rounded to 1 decimal.
func Score(in Inputs) Assessment {
	raw := RawScore(in)

	b := bands[len(bands)-1]
	for _, candidate := range bands {
		if raw >= candidate.minScore {
			b = candidate
			break
		}
	}

	return Assessment{
		Score:                pkg.Round(raw, 1),
		RecommendedIntensity: b.intensity,
		Readiness:            b.readiness,
		Recommendations:      append([]string(nil), b.recommendations...),
	}
}
