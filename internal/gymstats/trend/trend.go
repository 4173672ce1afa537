package trend

import (
	"math"

	"github.com/2beens/strengthplan/internal/gymstats"
	"github.com/2beens/strengthplan/pkg"
)

const (
	// Window is the number of most recent sessions the estimator reads.
	Window = 5

	LabelIncreasing = "increasing"
	LabelStable     = "stable"

	singleSampleGrowth     = 1.025
	singleSampleConfidence = 50.0
	minFitConfidence       = 60.0
	maxFitConfidence       = 95.0
)

type Prediction struct {
	PredictedWeight float64
	Confidence      float64
	Trend           string
}

// Predict estimates the next session weight from recent weights, oldest first.
// Predicted weight and confidence are rounded to 1 decimal.
func Predict(weights []float64) (Prediction, error) {
	if len(weights) == 0 {
		return Prediction{}, gymstats.NewComputationError(gymstats.ErrInsufficientData)
	}
	if len(weights) > Window {
		weights = weights[len(weights)-Window:]
	}

	if len(weights) == 1 {
		return Prediction{
			PredictedWeight: pkg.Round(weights[0]*singleSampleGrowth, 1),
			Confidence:      singleSampleConfidence,
			Trend:           LabelStable,
		}, nil
	}

	slope, intercept := linearFit(weights)
	predicted := slope*float64(len(weights)) + intercept

	confidence := 100 / (1 + stdDev(weights))
	confidence = math.Min(maxFitConfidence, math.Max(minFitConfidence, confidence))

	// only the endpoints decide the label, the fitted slope does not
	label := LabelStable
	if weights[len(weights)-1] > weights[0] {
		label = LabelIncreasing
	}

	return Prediction{
		PredictedWeight: pkg.Round(predicted, 1),
		Confidence:      pkg.Round(confidence, 1),
		Trend:           label,
	}, nil
}

// linearFit is an ordinary least squares fit of y against its index.
func linearFit(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	meanX := (n - 1) / 2
	meanY := mean(y)

	var num, den float64
	for i, v := range y {
		dx := float64(i) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}

	slope = num / den
	intercept = meanY - slope*meanX
	return slope, intercept
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
