package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/strengthplan/internal/telemetry/tracing"
	"github.com/2beens/strengthplan/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	APIVersion = "1.1.0"

	redisStatusDisabled = "disabled"
	redisStatusUp       = "up"
	redisStatusDown     = "down"
)

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Handler struct {
	versionInfo string
	redis       redisPinger
	now         func() time.Time
}

// NewHandler creates the handler for the administrative endpoints.
// redisClient may be nil when redis is not configured.
func NewHandler(versionInfo string, redisClient redisPinger) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		redis:       redisClient,
		now:         time.Now,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET", "OPTIONS").Name("health")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET", "OPTIONS").Name("version")
}

type rootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, rootResponse{
		Message: "Strength training readiness and planning API",
		Version: APIVersion,
		Endpoints: map[string]string{
			"/calculate-rpe":         "POST - Calculate RPE-based metrics",
			"/predict-strength":      "POST - Predict next workout strength",
			"/recovery-status":       "POST - Calculate recovery score",
			"/overtraining-risk":     "POST - Detect overtraining risk",
			"/generate-workout-plan": "POST - Generate a weekly workout plan",
			"/health":                "GET - API health check",
			"/version":               "GET - Build version info",
		},
	}, http.StatusOK)
}

type healthResponse struct {
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	APIVersion string `json:"api_version"`
	Redis      string `json:"redis"`
}

// handleHealth reports healthy as long as the process serves requests;
// redis being down only degrades rate limiting, so it is reported but not fatal.
func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	redisStatus := redisStatusDisabled
	if handler.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := handler.redis.Ping(pingCtx).Err(); err != nil {
			log.Warnf("health: redis ping: %s", err)
			redisStatus = redisStatusDown
		} else {
			redisStatus = redisStatusUp
		}
	}
	span.SetAttributes(attribute.String("redis.status", redisStatus))

	pkg.WriteJSON(w, healthResponse{
		Status:     "healthy",
		Timestamp:  handler.now().UTC().Format(time.RFC3339),
		APIVersion: APIVersion,
		Redis:      redisStatus,
	}, http.StatusOK)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
