package recovery

import (
	"net/http"

	"github.com/2beens/strengthplan/internal/gymstats"
	"github.com/2beens/strengthplan/internal/telemetry/tracing"
	"github.com/2beens/strengthplan/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

type StatusRequest struct {
	LastSessionRPE     *float64 `json:"last_session_rpe"`
	HoursSinceTraining *float64 `json:"hours_since_training"`
	SleepQuality       *float64 `json:"sleep_quality"`
	StressLevel        *float64 `json:"stress_level"`
	MuscleSoreness     *float64 `json:"muscle_soreness"`
}

type StatusResponse struct {
	RecoveryScore        float64  `json:"recovery_score"`
	RecommendedIntensity float64  `json:"recommended_intensity"`
	TrainingReadiness    string   `json:"training_readiness"`
	Recommendations      []string `json:"recommendations"`
}

type RiskRequest struct {
	RecentSessions  *[]gymstats.SessionLog `json:"recent_sessions"`
	SleepQualityAvg *float64               `json:"sleep_quality_avg"`
	StressLevelAvg  *float64               `json:"stress_level_avg"`
	MotivationLevel *float64               `json:"motivation_level"`
	RestingHRTrend  *float64               `json:"resting_hr_trend"`
}

type RiskResponse struct {
	RiskLevel       string   `json:"risk_level"`
	RiskPercentage  float64  `json:"risk_percentage"`
	WarningSigns    []string `json:"warning_signs"`
	Recommendations []string `json:"recommendations"`
	DeloadSuggested bool     `json:"deload_suggested"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/recovery-status", handler.HandleStatus).Methods("POST", "OPTIONS").Name("recovery-status")
	router.HandleFunc("/overtraining-risk", handler.HandleOvertrainingRisk).Methods("POST", "OPTIONS").Name("overtraining-risk")
}

func (handler *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.status")
	var err error
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if gymstats.HandleOptions(w, r, "POST, OPTIONS") {
		return
	}

	var req StatusRequest
	if err = gymstats.DecodeJSONRequest(w, r, &req); err != nil {
		gymstats.WriteError(w, r, err)
		return
	}

	in, err := req.inputs()
	if err != nil {
		gymstats.WriteError(w, r, err)
		return
	}

	assessment := Score(in)
	span.SetAttributes(
		attribute.Float64("recovery.score", assessment.Score),
		attribute.String("recovery.readiness", string(assessment.Readiness)),
	)

	pkg.WriteJSON(w, StatusResponse{
		RecoveryScore:        assessment.Score,
		RecommendedIntensity: assessment.RecommendedIntensity,
		TrainingReadiness:    string(assessment.Readiness),
		Recommendations:      assessment.Recommendations,
	}, http.StatusOK)
}

func (handler *Handler) HandleOvertrainingRisk(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.overtrainingRisk")
	var err error
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if gymstats.HandleOptions(w, r, "POST, OPTIONS") {
		return
	}

	var req RiskRequest
	if err = gymstats.DecodeJSONRequest(w, r, &req); err != nil {
		gymstats.WriteError(w, r, err)
		return
	}

	in, err := req.inputs()
	if err != nil {
		gymstats.WriteError(w, r, err)
		return
	}

	risk := AssessOvertrainingRisk(in)
	span.SetAttributes(
		attribute.String("risk.level", string(risk.Level)),
		attribute.Float64("risk.percentage", risk.Percentage),
	)

	pkg.WriteJSON(w, RiskResponse{
		RiskLevel:       string(risk.Level),
		RiskPercentage:  risk.Percentage,
		WarningSigns:    risk.WarningSigns,
		Recommendations: risk.Recommendations,
		DeloadSuggested: risk.DeloadSuggested,
	}, http.StatusOK)
}

func (req StatusRequest) inputs() (Inputs, error) {
	var in Inputs
	var err error
	if in.LastSessionRPE, err = gymstats.Required("last_session_rpe", req.LastSessionRPE); err != nil {
		return in, err
	}
	if in.HoursSinceTraining, err = gymstats.Required("hours_since_training", req.HoursSinceTraining); err != nil {
		return in, err
	}
	if in.SleepQuality, err = gymstats.Required("sleep_quality", req.SleepQuality); err != nil {
		return in, err
	}
	if in.StressLevel, err = gymstats.Required("stress_level", req.StressLevel); err != nil {
		return in, err
	}
	if in.MuscleSoreness, err = gymstats.Required("muscle_soreness", req.MuscleSoreness); err != nil {
		return in, err
	}

	if in.HoursSinceTraining < 0 {
		return in, &gymstats.ValidationError{Field: "hours_since_training", Reason: "must not be negative"}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"last_session_rpe", in.LastSessionRPE},
		{"sleep_quality", in.SleepQuality},
		{"stress_level", in.StressLevel},
		{"muscle_soreness", in.MuscleSoreness},
	} {
		if err := gymstats.InRange(f.name, f.value, 0, 10); err != nil {
			return in, err
		}
	}

	return in, nil
}

func (req RiskRequest) inputs() (RiskInputs, error) {
	var in RiskInputs
	var err error
	if in.Sessions, err = gymstats.Required("recent_sessions", req.RecentSessions); err != nil {
		return in, err
	}
	if in.SleepQualityAvg, err = gymstats.Required("sleep_quality_avg", req.SleepQualityAvg); err != nil {
		return in, err
	}
	if in.StressLevelAvg, err = gymstats.Required("stress_level_avg", req.StressLevelAvg); err != nil {
		return in, err
	}
	if in.MotivationLevel, err = gymstats.Required("motivation_level", req.MotivationLevel); err != nil {
		return in, err
	}
	in.RestingHRTrend = req.RestingHRTrend
	return in, nil
}
