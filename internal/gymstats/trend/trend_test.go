package trend

import (
	"testing"

	"github.com/2beens/strengthplan/internal/gymstats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPredict_Empty(t *testing.T) {
	_, err := Predict(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, gymstats.ErrInsufficientData)

	var computationErr *gymstats.ComputationError
	assert.ErrorAs(t, err, &computationErr)
}

func TestPredict_SingleSample(t *testing.T) {
	p, err := Predict([]float64{100})
	require.NoError(t, err)
	assert.Equal(t, 102.5, p.PredictedWeight)
	assert.Equal(t, 50.0, p.Confidence)
	assert.Equal(t, LabelStable, p.Trend)
}

func TestPredict_FlatSeries(t *testing.T) {
	p, err := Predict([]float64{100, 100, 100})
	require.NoError(t, err)
	assert.Equal(t, LabelStable, p.Trend)
	assert.InDelta(t, 100, p.PredictedWeight, 2)
	assert.Equal(t, 95.0, p.Confidence)
}

func TestPredict_LinearProgression(t *testing.T) {
	p, err := Predict([]float64{100, 102.5, 105})
	require.NoError(t, err)
	assert.Equal(t, 107.5, p.PredictedWeight)
	assert.Equal(t, LabelIncreasing, p.Trend)
	// std ~2.04 -> 100/3.04 ~ 32.9, clamped up
	assert.Equal(t, 60.0, p.Confidence)
}

func TestPredict_OnlyLastFiveRead(t *testing.T) {
	p, err := Predict([]float64{500, 1, 100, 100, 100, 100, 100})
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.PredictedWeight)
	assert.Equal(t, 95.0, p.Confidence)
}

func TestPredict_EndpointLabelIgnoresSlope(t *testing.T) {
	// fit rises, but the last sample equals the first
	p, err := Predict([]float64{100, 110, 120, 130, 100})
	require.NoError(t, err)
	assert.Equal(t, LabelStable, p.Trend)
}

func TestPredict_ConfidenceClamped(t *testing.T) {
	series := [][]float64{
		{100, 100},
		{60, 140, 80, 150},
		{100, 100.5, 101},
		{20, 200},
	}
	for _, s := range series {
		p, err := Predict(s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.Confidence, 60.0)
		assert.LessOrEqual(t, p.Confidence, 95.0)
	}
}
