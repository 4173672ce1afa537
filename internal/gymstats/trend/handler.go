package trend

import (
	"net/http"

	"github.com/2beens/strengthplan/internal/gymstats"
	"github.com/2beens/strengthplan/internal/telemetry/metrics"
	"github.com/2beens/strengthplan/internal/telemetry/tracing"
	"github.com/2beens/strengthplan/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultTargetReps = 5
	defaultExercise   = "squat"
	suggestedRPE      = 8.0

	progressionContinue = "Continue current progression"
	progressionReassess = "Consider technique focus or deload"
)

type PredictRequest struct {
	RecentSessions *[]gymstats.Session `json:"recent_sessions"`
	TargetReps     *int                `json:"target_reps"`
	Exercise       string              `json:"exercise"`
}

type NextWorkout struct {
	RecommendedWeight float64 `json:"recommended_weight"`
	TargetReps        int     `json:"target_reps"`
	SuggestedRPE      float64 `json:"suggested_rpe"`
	Exercise          string  `json:"exercise"`
}

type PredictResponse struct {
	PredictedWeight float64     `json:"predicted_weight"`
	Confidence      float64     `json:"confidence"`
	Trend           string      `json:"trend"`
	NextWorkout     NextWorkout `json:"next_workout"`
	Progression     string      `json:"progression"`
}

type Handler struct {
	metricsManager *metrics.Manager
}

func NewHandler(metricsManager *metrics.Manager) *Handler {
	return &Handler{
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/predict-strength", handler.HandlePredict).Methods("POST", "OPTIONS").Name("predict-strength")
}

func (handler *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.trend.predict")
	var err error
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if gymstats.HandleOptions(w, r, "POST, OPTIONS") {
		return
	}

	var req PredictRequest
	if err = gymstats.DecodeJSONRequest(w, r, &req); err != nil {
		gymstats.WriteError(w, r, err)
		return
	}

	sessions, err := gymstats.Required("recent_sessions", req.RecentSessions)
	if err != nil {
		gymstats.WriteError(w, r, err)
		return
	}
	targetReps := defaultTargetReps
	if req.TargetReps != nil {
		targetReps = *req.TargetReps
	}
	if req.Exercise == "" {
		req.Exercise = defaultExercise
	}

	span.SetAttributes(
		attribute.String("exercise", req.Exercise),
		attribute.Int("sessions", len(sessions)),
	)

	weights := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		weights = append(weights, s.Weight)
	}

	prediction, err := Predict(weights)
	if err != nil {
		handler.metricsManager.CounterComputationErrors.WithLabelValues("/predict-strength").Inc()
		gymstats.WriteError(w, r, err)
		return
	}

	progression := progressionReassess
	if prediction.Trend == LabelIncreasing {
		progression = progressionContinue
	}

	pkg.WriteJSON(w, PredictResponse{
		PredictedWeight: prediction.PredictedWeight,
		Confidence:      prediction.Confidence,
		Trend:           prediction.Trend,
		NextWorkout: NextWorkout{
			RecommendedWeight: prediction.PredictedWeight,
			TargetReps:        targetReps,
			SuggestedRPE:      suggestedRPE,
			Exercise:          req.Exercise,
		},
		Progression: progression,
	}, http.StatusOK)
}
