package rpe

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestIntensityFraction(t *testing.T) {
	for rpe, expected := range map[float64]float64{
		10:   1.00,
		9.5:  0.97,
		9:    0.94,
		8.5:  0.91,
		8:    0.88,
		7.5:  0.85,
		7:    0.82,
		6.5:  0.79,
		6:    0.76,
		5.5:  DefaultIntensity,
		3:    DefaultIntensity,
		8.25: DefaultIntensity,
		0:    DefaultIntensity,
	} {
		assert.Equal(t, expected, IntensityFraction(rpe), "rpe %v", rpe)
	}
}

func TestCalculate(t *testing.T) {
	m := Calculate(100, 5, 8)
	assert.Equal(t, 450.0, m.AdjustedVolume)
	assert.Equal(t, 440.0, m.TrainingStress)
	assert.Equal(t, 0.2, m.EffortEfficiency)
	assert.Equal(t, 113.64, m.EstimatedOneRepMax)
}

func TestCalculate_ZeroWeight(t *testing.T) {
	m := Calculate(0, 5, 8)
	assert.Equal(t, 0.0, m.AdjustedVolume)
	assert.Equal(t, 0.0, m.TrainingStress)
	assert.Equal(t, 0.0, m.EstimatedOneRepMax)
}

func TestEstimatedOneRepMax_NeverBelowWeight(t *testing.T) {
	for _, rpe := range []float64{2, 6, 6.5, 7, 7.5, 8, 8.5, 9, 9.5, 10} {
		assert.GreaterOrEqual(t, EstimatedOneRepMax(120, rpe), 120.0, "rpe %v", rpe)
	}
}

func TestEstimatedOneRepMax_NonIncreasingWithEffort(t *testing.T) {
	prev := EstimatedOneRepMax(100, 6)
	for rpe := 6.5; rpe <= 10; rpe += 0.5 {
		cur := EstimatedOneRepMax(100, rpe)
		assert.LessOrEqual(t, cur, prev, "rpe %v", rpe)
		prev = cur
	}
}

func TestMetrics_MonotonicInWeight(t *testing.T) {
	faker := gofakeit.New(42)
	efforts := []float64{6, 6.5, 7, 7.5, 8, 8.5, 9, 9.5, 10}

	for i := 0; i < 200; i++ {
		weight := faker.Float64Range(1, 300)
		heavier := weight + faker.Float64Range(0.5, 50)
		reps := faker.IntRange(1, 20)
		rpe := efforts[faker.IntRange(0, len(efforts)-1)]

		assert.Greater(t, AdjustedVolume(weight, reps, rpe), 0.0)
		assert.Greater(t, TrainingStress(weight, reps, rpe), 0.0)
		assert.Greater(t, AdjustedVolume(heavier, reps, rpe), AdjustedVolume(weight, reps, rpe))
		assert.Greater(t, TrainingStress(heavier, reps, rpe), TrainingStress(weight, reps, rpe))
	}
}

func TestRecommendation(t *testing.T) {
	assert.Equal(t, "High intensity - consider deload next session", Recommendation(9.5))
	assert.Equal(t, "High intensity - consider deload next session", Recommendation(9))
	assert.Equal(t, "Good training intensity - maintain or slight increase", Recommendation(8))
	assert.Equal(t, "Good training intensity - maintain or slight increase", Recommendation(7))
	assert.Equal(t, "Conservative load - room for intensity increase", Recommendation(6.5))
}

func TestCalculate_Idempotent(t *testing.T) {
	assert.Equal(t, Calculate(142.5, 3, 8.5), Calculate(142.5, 3, 8.5))
}
