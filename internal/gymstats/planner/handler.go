package planner

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/2beens/strengthplan/internal/cache"
	"github.com/2beens/strengthplan/internal/gymstats"
	"github.com/2beens/strengthplan/internal/telemetry/metrics"
	"github.com/2beens/strengthplan/internal/telemetry/tracing"
	"github.com/2beens/strengthplan/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=planner

type planCache interface {
	Get(key []byte) ([]byte, bool)
	Set(key, value []byte) bool
}

type GenerateRequest struct {
	TrainingHistory     *gymstats.ExerciseHistory `json:"training_history"`
	Goal                string                    `json:"goal"`
	TrainingDaysPerWeek *int                      `json:"training_days_per_week"`
	RecoveryScore       *float64                  `json:"recovery_score"`
}

type Handler struct {
	cache          planCache
	metricsManager *metrics.Manager
}

// NewHandler creates the plan handler. plansCache may be nil to disable caching.
func NewHandler(plansCache planCache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		cache:          plansCache,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/generate-workout-plan", handler.HandleGenerate).Methods("POST", "OPTIONS").Name("generate-workout-plan")
}

func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planner.generate")
	var err error
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if gymstats.HandleOptions(w, r, "POST, OPTIONS") {
		return
	}

	var genReq GenerateRequest
	if err = gymstats.DecodeJSONRequest(w, r, &genReq); err != nil {
		gymstats.WriteError(w, r, err)
		return
	}

	req, err := genReq.toRequest()
	if err != nil {
		gymstats.WriteError(w, r, err)
		return
	}

	span.SetAttributes(
		attribute.String("plan.goal", string(req.Goal)),
		attribute.Int("plan.training_days", req.TrainingDays),
		attribute.Int("plan.exercises", len(req.History)),
	)

	var cacheKey []byte
	if handler.cache != nil {
		if cacheKey, err = cache.Key("plan", req); err != nil {
			log.Warnf("plan cache key: %s", err)
			err = nil
		} else if cached, found := handler.cache.Get(cacheKey); found {
			span.SetAttributes(attribute.Bool("plan.cache_hit", true))
			handler.metricsManager.CounterPlanCacheHits.Inc()
			pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
			return
		}
	}

	_, genSpan := tracing.GlobalTracer.Start(ctx, "planner.generate")
	plan, err := Generate(req)
	tracing.EndSpanWithErrCheck(genSpan, err)
	if err != nil {
		handler.metricsManager.CounterComputationErrors.WithLabelValues("/generate-workout-plan").Inc()
		gymstats.WriteError(w, r, err)
		return
	}

	handler.metricsManager.CounterPlansGenerated.WithLabelValues(
		string(req.Goal), strconv.FormatBool(plan.Deload),
	).Inc()

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("marshal plan: %s", err)
		gymstats.WriteError(w, r, err)
		return
	}

	if cacheKey != nil {
		handler.cache.Set(cacheKey, planJson)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, planJson, http.StatusOK)
}

// toRequest applies defaults and validates the request.
// The goal is normalized here so equivalent requests share a cache entry.
func (genReq GenerateRequest) toRequest() (Request, error) {
	history, err := gymstats.Required("training_history", genReq.TrainingHistory)
	if err != nil {
		return Request{}, err
	}
	if err := validateHistory(history); err != nil {
		return Request{}, err
	}

	goal := DefaultGoal
	if genReq.Goal != "" {
		goal = ParseGoal(genReq.Goal)
	}

	days := DefaultTrainingDays
	if genReq.TrainingDaysPerWeek != nil {
		days = *genReq.TrainingDaysPerWeek
	}
	if err := gymstats.InRange("training_days_per_week", float64(days), MinTrainingDays, MaxTrainingDays); err != nil {
		return Request{}, err
	}

	if genReq.RecoveryScore != nil {
		if err := gymstats.InRange("recovery_score", *genReq.RecoveryScore, 0, 100); err != nil {
			return Request{}, err
		}
	}

	return Request{
		History:       history,
		Goal:          goal,
		TrainingDays:  days,
		RecoveryScore: genReq.RecoveryScore,
	}, nil
}

// validateHistory checks every logged session, exercises in name order
// so the reported field is stable.
func validateHistory(history gymstats.ExerciseHistory) error {
	names := make([]string, 0, len(history))
	for name := range history {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for i, s := range history[name] {
			field := fmt.Sprintf("training_history.%s[%d]", name, i)
			if s.Weight <= 0 {
				return &gymstats.ValidationError{Field: field + ".weight", Reason: "must be positive"}
			}
			if s.Reps <= 0 {
				return &gymstats.ValidationError{Field: field + ".reps", Reason: "must be positive"}
			}
			if s.RPE != nil {
				if err := gymstats.InRange(field+".rpe", *s.RPE, 0, 10); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
