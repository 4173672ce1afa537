package rpe

import (
	"github.com/2beens/strengthplan/pkg"
)

// DefaultIntensity is used for efforts missing from the chart, including anything below RPE 6.
const DefaultIntensity = 0.70

// intensityByRPE maps an effort to the fraction of 1RM it corresponds to (simplified Helms chart).
var intensityByRPE = map[float64]float64{
	10.0: 1.00,
	9.5:  0.97,
	9.0:  0.94,
	8.5:  0.91,
	8.0:  0.88,
	7.5:  0.85,
	7.0:  0.82,
	6.5:  0.79,
	6.0:  0.76,
}

type Metrics struct {
	AdjustedVolume     float64
	TrainingStress     float64
	EffortEfficiency   float64
	EstimatedOneRepMax float64
}

func IntensityFraction(rpe float64) float64 {
	if f, ok := intensityByRPE[rpe]; ok {
		return f
	}
	return DefaultIntensity
}

func EstimatedOneRepMax(weight, rpe float64) float64 {
	return weight / IntensityFraction(rpe)
}

// AdjustedVolume discounts raw volume by effort: 0.5x at RPE 0 up to 1.0x at RPE 10.
func AdjustedVolume(weight float64, reps int, rpe float64) float64 {
	return weight * float64(reps) * (0.5 + rpe/20)
}

func TrainingStress(weight float64, reps int, rpe float64) float64 {
	return IntensityFraction(rpe) * weight * float64(reps)
}

// EffortEfficiency is only meaningful for rpe in [0, 10].
func EffortEfficiency(rpe float64) float64 {
	return (10 - rpe) / 10
}

// Calculate returns all set metrics, rounded to 2 decimals.
func Calculate(weight float64, reps int, rpe float64) Metrics {
	return Metrics{
		AdjustedVolume:     pkg.Round(AdjustedVolume(weight, reps, rpe), 2),
		TrainingStress:     pkg.Round(TrainingStress(weight, reps, rpe), 2),
		EffortEfficiency:   pkg.Round(EffortEfficiency(rpe), 2),
		EstimatedOneRepMax: pkg.Round(EstimatedOneRepMax(weight, rpe), 2),
	}
}

func Recommendation(rpe float64) string {
	switch {
	case rpe >= 9:
		return "High intensity - consider deload next session"
	case rpe >= 7:
		return "Good training intensity - maintain or slight increase"
	default:
		return "Conservative load - room for intensity increase"
	}
}
