package recovery

import (
	"github.com/2beens/strengthplan/internal/gymstats"
	"github.com/2beens/strengthplan/pkg"
)

const (
	minRiskSessions  = 5
	riskWindow       = 7
	maxRiskScore     = 100.0
	hrElevationLimit = 5.0
)

type RiskLevel string

const (
	RiskUnknown  RiskLevel = "Unknown"
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

type RiskInputs struct {
	Sessions        []gymstats.SessionLog
	SleepQualityAvg float64
	StressLevelAvg  float64
	MotivationLevel float64
	// RestingHRTrend is the % change of resting heart rate from baseline, if tracked.
	RestingHRTrend *float64
}

type RiskAssessment struct {
	Level           RiskLevel
	Percentage      float64
	WarningSigns    []string
	Recommendations []string
	DeloadSuggested bool
}

type riskBand struct {
	minScore        float64
	level           RiskLevel
	deload          bool
	recommendations []string
}

var riskBands = []riskBand{
	{75, RiskCritical, true, []string{
		"Immediate deload recommended",
		"Reduce training volume by 40-50%",
		"Focus on sleep and stress management",
		"Consider taking 3-5 days off training",
	}},
	{50, RiskHigh, true, []string{
		"Planned deload week recommended",
		"Reduce training intensity to RPE 6-7",
		"Increase recovery focus",
		"Monitor symptoms closely",
	}},
	{25, RiskModerate, false, []string{
		"Monitor training load carefully",
		"Ensure adequate sleep (7-9 hours)",
		"Consider reducing volume by 10-20%",
		"Add extra rest day this week",
	}},
	{0, RiskLow, false, []string{
		"Training load appears sustainable",
		"Continue current program",
		"Maintain good recovery practices",
	}},
}

// AssessOvertrainingRisk sums independent risk factors over the last sessions into a 0-100 score.
// Incomplete session logs are dropped; fewer than 5 remaining gives an Unknown assessment.
func AssessOvertrainingRisk(in RiskInputs) RiskAssessment {
	valid := make([]gymstats.SessionLog, 0, len(in.Sessions))
	for _, s := range in.Sessions {
		if s.Complete() {
			valid = append(valid, s)
		}
	}

	if len(valid) < minRiskSessions {
		return RiskAssessment{
			Level:           RiskUnknown,
			Percentage:      0,
			WarningSigns:    []string{"Insufficient training data"},
			Recommendations: []string{"Track at least 5 training sessions"},
			DeloadSuggested: false,
		}
	}

	if len(valid) > riskWindow {
		valid = valid[len(valid)-riskWindow:]
	}

	loads := make([]float64, 0, len(valid))
	efforts := make([]float64, 0, len(valid))
	for _, s := range valid {
		loads = append(loads, *s.Weight*float64(*s.Reps)*(*s.RPE/10))
		efforts = append(efforts, *s.RPE)
	}

	var score float64
	var warnings []string
	flag := func(points float64, warning string) {
		score += points
		warnings = append(warnings, warning)
	}

	if len(loads) >= 4 {
		half := len(loads) / 2
		early := mean(loads[:half])
		late := mean(loads[half:])
		if late < early*0.95 && mean(efforts[len(efforts)-4:]) > 8.5 {
			flag(25, "Decreasing performance despite high effort")
		}
	}

	if len(efforts) >= 5 {
		recent := mean(efforts[len(efforts)-3:])
		baseline := mean(efforts[:len(efforts)-3])
		if recent > baseline+0.8 {
			flag(20, "RPE inflation detected")
		}
	}

	// never fires with a window of at most 7 sessions
	if len(valid) > 6 && sum(loads) > mean(loads)*10 {
		flag(15, "High training frequency and volume")
	}

	switch {
	case in.SleepQualityAvg < 6:
		flag(20, "Poor sleep quality")
	case in.SleepQualityAvg < 7:
		flag(10, "Suboptimal sleep quality")
	}

	switch {
	case in.StressLevelAvg > 7:
		flag(15, "High stress levels")
	case in.StressLevelAvg > 5:
		flag(8, "Elevated stress levels")
	}

	switch {
	case in.MotivationLevel < 4:
		flag(18, "Low training motivation")
	case in.MotivationLevel < 6:
		flag(10, "Decreased training motivation")
	}

	if in.RestingHRTrend != nil && *in.RestingHRTrend > hrElevationLimit {
		flag(15, "Elevated resting heart rate")
	}

	if score > maxRiskScore {
		score = maxRiskScore
	}

	b := riskBands[len(riskBands)-1]
	for _, candidate := range riskBands {
		if score >= candidate.minScore {
			b = candidate
			break
		}
	}

	if len(warnings) == 0 {
		warnings = []string{"No significant warning signs detected"}
	}

	return RiskAssessment{
		Level:           b.level,
		Percentage:      pkg.Round(score, 1),
		WarningSigns:    warnings,
		Recommendations: append([]string(nil), b.recommendations...),
		DeloadSuggested: b.deload,
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}
