package gymstats

// Session is a single logged working set of an exercise.
// RPE is optional; each computation picks its own default when it is missing.
type Session struct {
	Weight float64  `json:"weight"`
	Reps   int      `json:"reps"`
	RPE    *float64 `json:"rpe,omitempty"`
}

// RPEOr returns the session RPE, or def if it was not logged.
func (s Session) RPEOr(def float64) float64 {
	if s.RPE == nil {
		return def
	}
	return *s.RPE
}

// SessionLog is a loosely validated session, as sent for overtraining analysis.
// Logs missing any of the three fields are ignored by the risk scorer.
type SessionLog struct {
	Weight *float64 `json:"weight"`
	Reps   *int     `json:"reps"`
	RPE    *float64 `json:"rpe"`
}

func (l SessionLog) Complete() bool {
	return l.Weight != nil && l.Reps != nil && l.RPE != nil
}

// ExerciseHistory maps exercise names to their sessions, oldest first.
type ExerciseHistory map[string][]Session

func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}
