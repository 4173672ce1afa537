package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/strengthplan/internal/cache"
	"github.com/2beens/strengthplan/internal/config"
	"github.com/2beens/strengthplan/internal/gymstats/planner"
	"github.com/2beens/strengthplan/internal/gymstats/recovery"
	"github.com/2beens/strengthplan/internal/gymstats/rpe"
	"github.com/2beens/strengthplan/internal/gymstats/trend"
	"github.com/2beens/strengthplan/internal/middleware"
	"github.com/2beens/strengthplan/internal/misc"
	"github.com/2beens/strengthplan/internal/telemetry/metrics"
	"github.com/2beens/strengthplan/internal/telemetry/tracing"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	serveGroup        *errgroup.Group
	versionInfo       string

	config      *config.Config
	redisClient *redis.Client
	planCache   *cache.PlanCache

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("strengthplan", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	var rdb *redis.Client
	if params.Config.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if params.HoneycombTracingEnabled {
			rdb.AddHook(redisotel.NewTracingHook())
		}

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			// rate limiting requests will fail until redis is reachable
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	} else {
		log.Debugln("redis not configured, using in-process rate limiter")
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "strengthplan")
	if err != nil {
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	var planCache *cache.PlanCache
	if params.Config.PlanCacheSizeMB > 0 {
		planCache = cache.NewPlanCache(params.Config.PlanCacheSizeMB, params.Config.PlanCacheTTLSeconds)
	}

	return &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		redisClient: rdb,
		planCache:   planCache,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	// a nil *redis.Client must not end up in the interface
	var miscHandler *misc.Handler
	if s.redisClient != nil {
		miscHandler = misc.NewHandler(s.versionInfo, s.redisClient)
	} else {
		miscHandler = misc.NewHandler(s.versionInfo, nil)
	}
	miscHandler.SetupRoutes(r)

	computeRouter := r.NewRoute().Subrouter()
	rpe.NewHandler().SetupRoutes(computeRouter)
	trend.NewHandler(s.metricsManager).SetupRoutes(computeRouter)
	recovery.NewHandler().SetupRoutes(computeRouter)

	var plannerHandler *planner.Handler
	if s.planCache != nil {
		plannerHandler = planner.NewHandler(s.planCache, s.metricsManager)
	} else {
		plannerHandler = planner.NewHandler(nil, s.metricsManager)
	}
	plannerHandler.SetupRoutes(computeRouter)

	if s.config.RateLimitAllowedPerMin > 0 {
		var reqRateLimiter middleware.RequestRateLimiter
		if s.redisClient != nil {
			reqRateLimiter = redis_rate.NewLimiter(s.redisClient)
		} else {
			reqRateLimiter = middleware.NewLocalRateLimiter()
		}
		computeRouter.Use(middleware.RateLimit(
			reqRateLimiter,
			"compute",
			s.config.RateLimitAllowedPerMin,
			s.metricsManager,
		))
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestID())
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

// Serve starts the API and the metrics listeners and returns immediately.
// Listener errors are reported by GracefulShutdown.
func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	s.serveGroup = &errgroup.Group{}
	s.serveGroup.Go(func() error {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("main service, listen and serve: %s", err)
			return fmt.Errorf("main service: %w", err)
		}
		return nil
	})
	s.serveGroup.Go(func() error {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		if err := s.metricsHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics service, listen and serve: %s", err)
			return fmt.Errorf("metrics service: %w", err)
		}
		return nil
	})

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	var serveErr error
	if s.serveGroup != nil {
		serveErr = s.serveGroup.Wait()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return serveErr
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
