package planner

import (
	"fmt"
	"math"

	"github.com/2beens/strengthplan/internal/gymstats"
	"github.com/2beens/strengthplan/pkg"
)

const (
	MinTrainingDays     = 1
	MaxTrainingDays     = 7
	DefaultTrainingDays = 4
	DefaultGoal         = GoalHypertrophy

	limitedRecoveryBelow = 70.0
	restDayNote          = "Rest day - active recovery, mobility work or light cardio"
)

type Request struct {
	History       gymstats.ExerciseHistory `json:"training_history"`
	Goal          Goal                     `json:"goal"`
	TrainingDays  int                      `json:"training_days_per_week"`
	RecoveryScore *float64                 `json:"recovery_score,omitempty"`
}

type PlannedExercise struct {
	Exercise     string  `json:"exercise"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	TargetWeight float64 `json:"target_weight"`
	TargetRPE    float64 `json:"target_rpe"`
	Notes        string  `json:"notes"`
}

type DailyWorkout struct {
	Day       string            `json:"day"`
	Exercises []PlannedExercise `json:"exercises"`
	Notes     string            `json:"notes"`
}

func (d DailyWorkout) IsRestDay() bool {
	return len(d.Exercises) == 0
}

type Plan struct {
	WeeklyPlan              []DailyWorkout              `json:"weekly_plan"`
	TotalWeeklyVolume       float64                     `json:"total_weekly_volume"`
	EstimatedTrainingStress float64                     `json:"estimated_training_stress"`
	ProgressionStrategy     string                      `json:"progression_strategy"`
	Recommendations         []string                    `json:"recommendations"`
	Deload                  bool                        `json:"deload"`
	RPECap                  float64                     `json:"rpe_cap"`
	ExerciseAnalysis        map[string]ExerciseAnalysis `json:"exercise_analysis"`
}

// Generate builds a one-week plan from the training history.
// The same request always yields the same plan.
func Generate(req Request) (*Plan, error) {
	if len(req.History) == 0 {
		return nil, gymstats.NewComputationError(gymstats.ErrNoTrainingHistory)
	}
	if req.TrainingDays < MinTrainingDays || req.TrainingDays > MaxTrainingDays {
		return nil, &gymstats.ValidationError{
			Field:  "training_days_per_week",
			Reason: fmt.Sprintf("must be between %d and %d", MinTrainingDays, MaxTrainingDays),
		}
	}

	analyzed := analyzeHistory(req.History)
	if len(analyzed) == 0 {
		return nil, gymstats.NewComputationError(gymstats.ErrInsufficientPlanData)
	}

	gate := computeFatigueGate(analyzed, req.RecoveryScore)
	goal := ParseGoal(string(req.Goal))
	split := trainingSplit(req.TrainingDays)
	template := templates[goal]

	volumeFactor, intensityFactor := 1.0, 1.0
	if gate.deload {
		volumeFactor, intensityFactor = deloadVolumeFactor, deloadIntensityFactor
	}

	var totalVolume, totalStress float64
	trainingDays := make([]DailyWorkout, 0, req.TrainingDays)
	for i := 0; i < req.TrainingDays; i++ {
		dayType := split[i%len(split)]
		entry := template[i%len(template)]

		var exercises []PlannedExercise
		for _, a := range analyzed {
			if !dayType.Includes(a.name) {
				continue
			}

			pe := planExercise(a, entry, goal, gate, volumeFactor, intensityFactor)
			volume := pe.TargetWeight * float64(pe.Reps) * float64(pe.Sets)
			totalVolume += volume
			totalStress += volume * pe.TargetRPE / 10
			exercises = append(exercises, pe)
		}

		// days without a matching exercise are dropped, their weekday goes to a rest day
		if len(exercises) == 0 {
			continue
		}

		trainingDays = append(trainingDays, DailyWorkout{
			Exercises: exercises,
			Notes:     dayNote(dayType, entry, gate, req.RecoveryScore),
		})
	}

	week := make([]DailyWorkout, 0, len(weekdays))
	for i, day := range trainingDays {
		day.Day = weekdays[i]
		week = append(week, day)
	}
	for i := len(trainingDays); i < len(weekdays); i++ {
		week = append(week, DailyWorkout{
			Day:       weekdays[i],
			Exercises: []PlannedExercise{},
			Notes:     restDayNote,
		})
	}

	exerciseAnalysis := make(map[string]ExerciseAnalysis, len(analyzed))
	for _, a := range analyzed {
		exerciseAnalysis[a.name] = a.rounded()
	}

	return &Plan{
		WeeklyPlan:              week,
		TotalWeeklyVolume:       pkg.Round(totalVolume, 2),
		EstimatedTrainingStress: pkg.Round(totalStress, 2),
		ProgressionStrategy:     progressionStrategy(goal, gate.deload),
		Recommendations:         recommendations(analyzed, gate, req.RecoveryScore),
		Deload:                  gate.deload,
		RPECap:                  gate.rpeCap,
		ExerciseAnalysis:        exerciseAnalysis,
	}, nil
}

func planExercise(
	a analyzedExercise,
	entry templateEntry,
	goal Goal,
	gate fatigueGate,
	volumeFactor, intensityFactor float64,
) PlannedExercise {
	var weight float64
	switch {
	case gate.deload:
		weight = a.AverageRecentWeight * deloadIntensityFactor
	case goal == GoalMaintenance:
		weight = a.AverageRecentWeight
	default:
		weight = a.AverageRecentWeight + a.ProgressionIncrementKg
	}
	if !gate.deload {
		// outside deload weeks the 1RM based target replaces the progression baseline
		weight = a.EstimatedOneRepMax * entry.intensity
	}

	sets := int(math.RoundToEven(float64(entry.sets) * volumeFactor))
	if sets < 1 {
		sets = 1
	}

	intensity := entry.intensity * intensityFactor
	targetRPE := math.Min(7.0+(intensity-0.65)*10, gate.rpeCap)

	return PlannedExercise{
		Exercise:     a.name,
		Sets:         sets,
		Reps:         entry.reps,
		TargetWeight: pkg.Round(weight, 1),
		TargetRPE:    pkg.Round(targetRPE, 1),
		Notes:        exerciseNote(a, entry, gate.deload),
	}
}
