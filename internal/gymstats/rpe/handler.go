package rpe

import (
	"net/http"

	"github.com/2beens/strengthplan/internal/gymstats"
	"github.com/2beens/strengthplan/internal/telemetry/tracing"
	"github.com/2beens/strengthplan/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

const defaultExercise = "squat"

type CalculateRequest struct {
	Weight   *float64 `json:"weight"`
	Reps     *int     `json:"reps"`
	RPE      *float64 `json:"rpe"`
	Exercise string   `json:"exercise"`
}

type CalculateResponse struct {
	AdjustedVolume     float64 `json:"adjusted_volume"`
	TrainingStress     float64 `json:"training_stress"`
	Recommendation     string  `json:"recommendation"`
	EffortEfficiency   float64 `json:"rpe_efficiency"`
	EstimatedOneRepMax float64 `json:"estimated_1rm"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/calculate-rpe", handler.HandleCalculate).Methods("POST", "OPTIONS").Name("calculate-rpe")
}

func (handler *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.rpe.calculate")
	var err error
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if gymstats.HandleOptions(w, r, "POST, OPTIONS") {
		return
	}

	var req CalculateRequest
	if err = gymstats.DecodeJSONRequest(w, r, &req); err != nil {
		gymstats.WriteError(w, r, err)
		return
	}

	weight, reps, effort, err := req.validate()
	if err != nil {
		gymstats.WriteError(w, r, err)
		return
	}
	if req.Exercise == "" {
		req.Exercise = defaultExercise
	}

	span.SetAttributes(
		attribute.String("exercise", req.Exercise),
		attribute.Float64("rpe", effort),
	)

	m := Calculate(weight, reps, effort)
	pkg.WriteJSON(w, CalculateResponse{
		AdjustedVolume:     m.AdjustedVolume,
		TrainingStress:     m.TrainingStress,
		Recommendation:     Recommendation(effort),
		EffortEfficiency:   m.EffortEfficiency,
		EstimatedOneRepMax: m.EstimatedOneRepMax,
	}, http.StatusOK)
}

func (req CalculateRequest) validate() (weight float64, reps int, effort float64, err error) {
	if weight, err = gymstats.Required("weight", req.Weight); err != nil {
		return
	}
	if reps, err = gymstats.Required("reps", req.Reps); err != nil {
		return
	}
	if effort, err = gymstats.Required("rpe", req.RPE); err != nil {
		return
	}
	if weight < 0 {
		err = &gymstats.ValidationError{Field: "weight", Reason: "must not be negative"}
		return
	}
	if reps < 0 {
		err = &gymstats.ValidationError{Field: "reps", Reason: "must not be negative"}
		return
	}
	err = gymstats.InRange("rpe", effort, 0, 10)
	return
}
