package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"crewfit/internal/alerting"
	httpapi "crewfit/internal/http"
	"crewfit/internal/learning"
	learninghandler "crewfit/internal/learning/handler"
	learningmetrics "crewfit/internal/learning/metrics"
	"crewfit/internal/learning/store/weightset"
	"crewfit/internal/outcome"
	outcomehandler "crewfit/internal/outcome/handler"
	"crewfit/internal/outcome/ingest"
	"crewfit/internal/outcome/store/outcomes"
	"crewfit/internal/platform/config"
	"crewfit/internal/platform/httpserver"
	"crewfit/internal/platform/kafka/consumer"
	"crewfit/internal/platform/logger"
	platformmetrics "crewfit/internal/platform/metrics"
	platformredis "crewfit/internal/platform/redis"
	"crewfit/internal/rolefit"
	scoringhandler "crewfit/internal/scoring/handler"
	scoringmetrics "crewfit/internal/scoring/metrics"
	"crewfit/internal/scoring/ports"
	"crewfit/internal/scoring/profile"
	"crewfit/internal/scoring/service"
	"crewfit/internal/scoring/store/evaluation"
	"crewfit/internal/scoring/store/template"
	"crewfit/internal/scoring/weights"
	"crewfit/internal/synergy"
	synergyhandler "crewfit/internal/synergy/handler"
	"crewfit/internal/synergy/store/crewcontext"
)

// weightBackend is the weight-set store seen from both sides: the learning
// loop writes versions, the scoring resolver reads them.
type weightBackend interface {
	learning.WeightSetStore
	weights.Source
}

// evaluationBackend persists snapshots for the service and serves them to
// the retrieval endpoints.
type evaluationBackend interface {
	ports.EvaluationStore
	scoringhandler.SnapshotReader
}

// main wires stores, engines, and handlers, then runs the HTTP server and
// the optional Kafka ingest loop until shutdown.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage: PostgreSQL when configured, in-memory otherwise.
	var (
		db           *sql.DB
		evals        evaluationBackend
		outcomeStore outcome.Store
		sets         weightBackend
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		evals = evaluation.NewPostgres(db)
		outcomeStore = outcomes.NewPostgres(db)
		sets = weightset.NewPostgres(db)
	} else {
		log.Warn("no database configured, running on in-memory stores")
		evals = evaluation.NewInMemoryStore()
		outcomeStore = outcomes.NewInMemoryStore()
		sets = weightset.NewInMemoryStore()
	}

	// Crew contexts: registry as source of truth, cache in front. Redis
	// shares the cache across instances when configured.
	registry := crewcontext.NewInMemoryRegistry()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	var (
		contexts    synergy.ContextSource
		invalidator synergyhandler.CacheInvalidator
	)
	if redisClient != nil {
		cache := crewcontext.NewRedis(redisClient.Client, cfg.CrewContextTTL, registry.Load)
		contexts, invalidator = cache, cache
	} else {
		cache := crewcontext.New(cfg.CrewContextTTL, registry.Load)
		contexts, invalidator = cache, cache
	}

	// Synergy engines. Both generations stay wired; config picks.
	v1Engine, err := synergy.NewV1Engine(contexts)
	if err != nil {
		log.Error("failed to build v1 synergy engine", "error", err)
		os.Exit(1)
	}
	v2Engine, err := synergy.NewEngine(contexts, nil, synergy.WithLogger(log))
	if err != nil {
		log.Error("failed to build synergy engine", "error", err)
		os.Exit(1)
	}
	synergyResolver := synergy.NewResolver(synergy.Version(cfg.SynergyVersion), v1Engine, v2Engine)

	// Scoring.
	templates := template.New()
	profiles := profile.NewResolver(templates, log)
	roleFit := rolefit.NewEngine(rolefit.DefaultConfig(), nil)

	scoringSvc, err := service.New(
		profiles,
		weights.NewResolver(sets),
		roleFit,
		synergyResolver,
		service.WithLogger(log),
		service.WithMetrics(scoringmetrics.New()),
		service.WithEvaluationStore(evals),
		service.WithCertificateExpiryWarning(cfg.CertExpiryWarning),
		service.WithRankConcurrency(cfg.RankConcurrency),
	)
	if err != nil {
		log.Error("failed to build scoring service", "error", err)
		os.Exit(1)
	}

	// Learning.
	learningCfg := learning.DefaultConfig()
	learningCfg.MinSampleSize = cfg.Learning.MinSampleSize
	learningCfg.MaxStep = cfg.Learning.MaxStep
	learningCfg.Window = cfg.Learning.Window
	learningSvc, err := learning.New(outcomeStore, sets,
		learning.WithLogger(log),
		learning.WithConfig(learningCfg),
		learning.WithMetrics(learningmetrics.New()),
	)
	if err != nil {
		log.Error("failed to build learning service", "error", err)
		os.Exit(1)
	}

	// Alerting.
	alertCfg := alerting.DefaultConfig()
	alertCfg.Window = cfg.Alerting.Window
	alertCfg.Threshold = cfg.Alerting.Threshold
	alertCfg.MinSamples = cfg.Alerting.MinSamples
	monitor := alerting.NewMismatchMonitor(alertCfg, log)

	// HTTP surface.
	checks := map[string]httpapi.HealthCheck{}
	if db != nil {
		checks["postgres"] = db.Ping
	}
	if redisClient != nil {
		checks["redis"] = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(pingCtx)
		}
	}

	router := httpapi.NewRouter(platformmetrics.New(), checks,
		scoringhandler.New(scoringSvc, log,
			scoringhandler.WithSnapshots(evals),
			scoringhandler.WithObserver(monitor),
		),
		synergyhandler.New(v2Engine, log,
			synergyhandler.WithRegistry(registry, invalidator),
		),
		learninghandler.New(learningSvc, sets, log),
		outcomehandler.New(outcomeStore, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	// Kafka ingest, when brokers are configured.
	var ingestConsumer *consumer.Consumer
	if len(cfg.Kafka.Brokers) > 0 {
		ingestConsumer, err = consumer.New(consumer.Config{
			Brokers:  cfg.Kafka.Brokers,
			Group:    cfg.Kafka.Group,
			Topics:   []string{cfg.Kafka.Topic},
			ClientID: "crewfit-server",
		}, ingest.NewHandler(outcomeStore, log), log)
		if err != nil {
			log.Error("failed to build kafka consumer", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := ingestConsumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("outcome ingest stopped", "error", err)
			}
		}()
		log.Info("outcome ingest started", "topic", cfg.Kafka.Topic, "group", cfg.Kafka.Group)
	}

	go func() {
		log.Info("crewfit listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if ingestConsumer != nil {
		ingestConsumer.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
