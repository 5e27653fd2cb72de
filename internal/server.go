package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/gymstats/durations"
	"github.com/2beens/gymlog/internal/gymstats/exercises"
	gymstatsmcp "github.com/2beens/gymlog/internal/gymstats/mcp"
	"github.com/2beens/gymlog/internal/gymstats/sets"
	"github.com/2beens/gymlog/internal/gymstats/stats"
	"github.com/2beens/gymlog/internal/gymstats/workouts"
	"github.com/2beens/gymlog/internal/middleware"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	mcpSecret         string // shared secret of the chat assistant, see /mcp
	versionInfo       string

	config        *config.Config
	dbPool        *pgxpool.Pool
	redisClient   *redis.Client
	ownerResolver *auth.OwnerResolver
	statsCache    *stats.Cache

	// durations recompute
	recomputer    *durations.Recomputer
	schedulerDone <-chan struct{}

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	MCPSecret               string
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
		AppName:        "gymlog-backend",
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "gymlog", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:        params.Config,
		dbPool:        dbPool,
		mcpSecret:     params.MCPSecret,
		versionInfo:   params.VersionInfo,
		redisClient:   rdb,
		ownerResolver: auth.NewOwnerResolver(auth.DefaultTTL, rdb),
		statsCache:    stats.NewCache(params.Config.StatsCacheSizeBytes, params.Config.StatsCacheTTLSeconds),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}
	s.recomputer = durations.NewRecomputer(durations.NewRepo(dbPool), metricsManager)

	return s, nil
}

func (s *Server) anomalyPolicy() durations.AnomalyPolicy {
	return durations.AnomalyPolicy(s.config.DurationsAnomalyPolicy)
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymlog-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "gymlog")
	}).Methods("GET").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	setsRepo := sets.NewRepo(s.dbPool)
	setsService := sets.NewService(setsRepo, s.metricsManager, s.statsCache)
	workoutsService := workouts.NewService(workouts.NewRepo(s.dbPool), setsRepo, s.statsCache)
	exercisesService := exercises.NewService(exercises.NewRepo(s.dbPool), s.statsCache)
	analyzer := stats.NewAnalyzer(stats.NewRepo(s.dbPool), s.statsCache)

	workoutsHandler := workouts.NewHandler(workoutsService)
	r.HandleFunc("/gymstats/workouts", workoutsHandler.HandleGetOrCreate).Methods("POST", "OPTIONS").Name("get-or-create-workout")
	r.HandleFunc("/gymstats/workouts/page/{page}/size/{size}", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/gymstats/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/gymstats/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/gymstats/workouts/{id}/warmups", workoutsHandler.HandleAddWarmup).Methods("POST", "OPTIONS").Name("add-warmup")
	r.HandleFunc("/gymstats/warmups/{id}", workoutsHandler.HandleUpdateWarmup).Methods("PUT", "OPTIONS").Name("update-warmup")
	r.HandleFunc("/gymstats/warmups/{id}", workoutsHandler.HandleDeleteWarmup).Methods("DELETE", "OPTIONS").Name("delete-warmup")

	exercisesHandler := exercises.NewHandler(exercisesService)
	r.HandleFunc("/gymstats/exercises", exercisesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/gymstats/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/gymstats/exercises/{id}", exercisesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
	r.HandleFunc("/gymstats/exercises/{id}", exercisesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-exercise")
	r.HandleFunc("/gymstats/exercises/{id}", exercisesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")

	setsHandler := sets.NewHandler(setsService)
	r.HandleFunc("/gymstats/sets", setsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-set")
	r.HandleFunc("/gymstats/sets/link", setsHandler.HandleLink).Methods("POST", "OPTIONS").Name("link-sets")
	r.HandleFunc("/gymstats/sets/{id}", setsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-set")
	r.HandleFunc("/gymstats/sets/{id}", setsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-set")
	r.HandleFunc("/gymstats/sets/{id}/complete", setsHandler.HandleComplete).Methods("POST", "OPTIONS").Name("complete-set")
	r.HandleFunc("/gymstats/sets/{id}/superset", setsHandler.HandleUnlink).Methods("DELETE", "OPTIONS").Name("unlink-superset")
	r.HandleFunc("/gymstats/sets/{id}/partners", setsHandler.HandlePartners).Methods("GET", "OPTIONS").Name("superset-partners")
	r.HandleFunc("/gymstats/sets/{id}/candidates", setsHandler.HandleCandidates).Methods("GET", "OPTIONS").Name("link-candidates")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	durationsHandler := durations.NewHandler(s.recomputer, s.anomalyPolicy())
	r.Handle(
		"/gymstats/durations/recompute",
		middleware.RateLimit(
			reqRateLimiter,
			"durations-recompute",
			s.config.RecomputeRateLimitPerMin,
			s.metricsManager,
		)(http.HandlerFunc(durationsHandler.HandleRecompute)),
	).Methods("POST", "OPTIONS").Name("recompute-durations")

	statsHandler := stats.NewHandler(analyzer)
	r.HandleFunc("/gymstats/stats/summary", statsHandler.HandleSummary).Methods("GET", "OPTIONS").Name("stats-summary")
	r.HandleFunc("/gymstats/stats/exercise/{id}/progression", statsHandler.HandleProgression).Methods("GET", "OPTIONS").Name("stats-progression")

	if s.config.MCPEnabled {
		mcpService := gymstatsmcp.NewContextService(gymstatsmcp.Deps{
			Schema:     gymstatsmcp.NewPoolSchemaRepo(s.dbPool),
			Exercises:  exercisesService,
			Workouts:   workoutsService,
			Sets:       setsService,
			Recomputer: s.recomputer,
			Analyzer:   analyzer,
			Anomaly:    s.anomalyPolicy(),
		}, s.config.MCPOwnerID)
		mcpServer := gymstatsmcp.NewServer(mcpService)
		mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return mcpServer
		}, nil)
		r.PathPrefix("/mcp").Handler(otelhttp.NewHandler(mcpHandler, "gymstats-mcp")).Name("mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.ownerResolver, s.mcpSecret)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.config.DurationsRecomputeEnabled {
		scheduler := durations.NewScheduler(
			s.recomputer,
			durations.ScheduledPolicy(s.anomalyPolicy(), s.config.DurationsRecomputeBatch),
			s.config.DurationsRecomputeInterval.Duration,
		)
		s.schedulerDone = scheduler.Start(ctx)
	} else {
		log.Warnln("durations recompute scheduler disabled")
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown expects the context given to Serve to be cancelled
// already, so the scheduler can finish its current run.
func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.schedulerDone != nil {
		select {
		case <-s.schedulerDone:
			log.Debugln("durations scheduler stopped")
		case <-ctx.Done():
			log.Errorln("durations scheduler did not stop in time")
		}
	}

	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		err = multierr.Append(err, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	for _, e := range multierr.Errors(err) {
		log.Errorf(" >>> graceful shutdown: %s", e)
	}
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
