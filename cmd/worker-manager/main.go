// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"readiness-workers/internal/assessment"
	"readiness-workers/internal/common/aws"
	"readiness-workers/internal/common/camunda"
	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/database"
	commonerrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/observability"
	"readiness-workers/internal/common/zoho"

	cs "readiness-workers/internal/workers/assessment/calculate-score"
	er "readiness-workers/internal/workers/assessment/export-report"
	sl "readiness-workers/internal/workers/assessment/save-lead"
	sn "readiness-workers/internal/workers/assessment/send-notification"
	vr "readiness-workers/internal/workers/assessment/validate-response"
)

var startupRetry = &camunda.RetryConfig{
	MaxRetries: 15,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog, _ := zap.NewProduction()
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		bootLog, _ := zap.NewProduction()
		bootLog.Fatal("logger init failed", zap.Error(err))
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	})
	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(ctx, observability.Config{
		ServiceName:  cfg.Observability.ServiceName,
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
		SampleRatio:  cfg.Observability.SampleRatio,
		Registerer:   prometheus.DefaultRegisterer,
	})
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		RetryConfig:            startupRetry,
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres init failed", zap.Error(err))
	}
	defer pg.Close()
	if err := camunda.Retry(ctx, startupRetry, "postgres ping", pg.Ping); err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("postgres schema failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Elasticsearch ---
	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch, nil)
	if err != nil {
		zapLog.Fatal("elasticsearch init failed", zap.Error(err))
	}
	if err := camunda.Retry(ctx, startupRetry, "elasticsearch ping", esClient.Ping); err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	if err := esClient.EnsureIndex(ctx, cfg.Report.Index, database.ReportIndexMapping); err != nil {
		zapLog.Fatal("report index setup failed", zap.Error(err), zap.String("index", cfg.Report.Index))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Redis (score cache) ---
	var scoreCache redis.Cmdable
	if cfg.Cache.Enabled {
		rc := database.NewRedis(cfg.Database.Redis)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			// the cache is optional, scoring falls through to the engine
			zapLog.Warn("redis unavailable, score cache will miss", zap.Error(err))
		}
		scoreCache = rc.Client
	}

	// --- External services ---
	var (
		sesClient sn.SESService
		snsClient sn.SNSService
	)
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled || cfg.Notifications.OpsTopicARN != "" {
		clients, err := aws.NewClients(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws clients init failed", zap.Error(err))
		}
		sesClient, snsClient = clients.SES, clients.SNS
	}

	var crm sl.CRMService
	if cfg.Integrations.Zoho.Enabled {
		crm = zoho.NewCRMClient(
			cfg.Integrations.Zoho.BaseURL,
			cfg.Integrations.Zoho.AuthToken,
			config.GetDuration(cfg.Integrations.Zoho.Timeout),
		)
	}

	// --- Scoring engine ---
	tables, err := cfg.Tables()
	if err != nil {
		stdErr := commonerrors.NewInvalidScoringTablesError(err)
		zapLog.Fatal(stdErr.Message, zap.String("code", string(stdErr.Code)), zap.String("details", stdErr.Details))
	}
	engine, err := assessment.NewEngine(
		assessment.WithTables(tables),
		assessment.WithLogger(log),
	)
	if err != nil {
		zapLog.Fatal("scoring engine init failed", zap.Error(err))
	}
	zapLog.Info("Scoring tables loaded",
		zap.String("version", tables.Version()),
		zap.String("currency", tables.Currency),
	)

	// --- Workers ---
	client := zeebe.GetClient()
	var workers []worker.JobWorker
	register := func(taskType string, handle camunda.HandlerFunc) {
		if jw := camunda.StartWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), handle, obs, log); jw != nil {
			workers = append(workers, jw)
		}
	}
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	register(vr.TaskType, vr.NewHandler(&vr.Config{Timeout: timeout(vr.TaskType)}, log).Handle)

	register(cs.TaskType, cs.NewHandler(
		&cs.Config{
			CacheEnabled: cfg.Cache.Enabled,
			CacheTTL:     time.Duration(cfg.Cache.ScoreTTL) * time.Second,
			Timeout:      timeout(cs.TaskType),
		},
		engine, scoreCache, obs, log,
	).Handle)

	register(sl.TaskType, sl.NewHandler(
		&sl.Config{
			DuplicateWindow: sl.LoadConfig().DuplicateWindow,
			CRMEnabled:      cfg.Integrations.Zoho.Enabled,
			Timeout:         timeout(sl.TaskType),
		},
		sl.NewPostgresLeadRepository(pg.DB, log), crm, log,
	).Handle)

	register(er.TaskType, er.NewHandler(
		&er.Config{
			Index:          cfg.Report.Index,
			Indent:         cfg.Report.Indent,
			ArchiveEnabled: true,
			Timeout:        timeout(er.TaskType),
		},
		esClient.Client, log,
	).Handle)

	register(sn.TaskType, sn.NewHandler(
		&sn.Config{
			EmailEnabled: cfg.Notifications.Email.Enabled,
			SMSEnabled:   cfg.Notifications.SMS.Enabled,
			FromEmail:    cfg.Notifications.Email.FromEmail,
			OpsTopicARN:  cfg.Notifications.OpsTopicARN,
			Timeout:      timeout(sn.TaskType),
		},
		sesClient, snsClient, log,
	).Handle)

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := errors.Join(zeebe.HealthCheck(readyCtx), pg.Ping(readyCtx)); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.Server.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range workers {
		jw.Close()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
