// internal/workers/assessment/calculate-score/handler.go
package calculatescore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"readiness-workers/internal/assessment"
	commonerrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	TaskType = "calculate-readiness-score"

	cacheKeyPrefix = "assessment:score:"
)

type Handler struct {
	config     *Config
	engine     *assessment.Engine
	redis      redis.Cmdable
	obs        *observability.Observability
	version    string
	logger     logger.Logger
	errHandler *commonerrors.ErrorHandler
}

// NewHandler wires the scoring engine. rdb and obs may be nil.
func NewHandler(config *Config, engine *assessment.Engine, rdb redis.Cmdable, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		engine:     engine,
		redis:      rdb,
		obs:        obs,
		version:    engine.Tables().Version(),
		logger:     scoped,
		errHandler: commonerrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, commonerrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Response == nil {
		return nil, commonerrors.NewInvalidInputError("response is required")
	}
	response := input.Response.Normalized()

	ctx, span := h.obs.StartSpan(ctx, "assessment.calculate_score",
		attribute.String("assessment.industry", string(response.Industry)),
		attribute.String("assessment.tables_version", h.version),
	)
	defer span.End()

	key := h.cacheKey(response)
	if cached, ok := h.readCache(ctx, key); ok {
		span.SetAttributes(attribute.Bool("assessment.cache_hit", true))
		h.logger.Debug("score served from cache", map[string]interface{}{"key": key})
		return newOutput(cached, h.version, true), nil
	}

	result := h.engine.Evaluate(response)
	if len(result.Recommendations) == 0 {
		err := errors.New("engine returned no recommendations")
		span.SetStatus(codes.Error, err.Error())
		return nil, commonerrors.NewScoreCalculationFailedError(err)
	}

	metrics.ReadinessScore.Observe(float64(result.ReadinessScore))
	for _, rec := range result.Recommendations {
		metrics.RecommendationsIssued.WithLabelValues(string(rec.Priority)).Inc()
	}
	span.SetAttributes(
		attribute.Bool("assessment.cache_hit", false),
		attribute.Int("assessment.readiness_score", result.ReadinessScore),
		attribute.String("assessment.tier", string(result.Tier)),
	)

	h.writeCache(ctx, key, result)

	h.logger.Info("readiness score calculated", map[string]interface{}{
		"readinessScore":  result.ReadinessScore,
		"tier":            result.Tier,
		"recommendations": len(result.Recommendations),
		"industry":        response.Industry,
	})

	return newOutput(result, h.version, false), nil
}

// cacheKey includes the tables version so changed weights never serve stale scores.
func (h *Handler) cacheKey(r assessment.AssessmentResponse) string {
	return cacheKeyPrefix + h.version + ":" + r.Fingerprint()
}

// readCache treats every Redis problem as a miss; scoring is cheap and deterministic.
func (h *Handler) readCache(ctx context.Context, key string) (assessment.ScoreResult, bool) {
	if !h.config.CacheEnabled || h.redis == nil {
		return assessment.ScoreResult{}, false
	}

	val, err := h.redis.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.ScoreCache.WithLabelValues("miss").Inc()
		return assessment.ScoreResult{}, false
	case err != nil:
		metrics.ScoreCache.WithLabelValues("error").Inc()
		h.logger.Warn("score cache read failed", map[string]interface{}{
			"error": commonerrors.NewCacheUnavailableError(err).Error(),
			"key":   key,
		})
		return assessment.ScoreResult{}, false
	}

	var result assessment.ScoreResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		metrics.ScoreCache.WithLabelValues("error").Inc()
		h.logger.Warn("discarding corrupt cache entry", map[string]interface{}{
			"error": err,
			"key":   key,
		})
		return assessment.ScoreResult{}, false
	}
	metrics.ScoreCache.WithLabelValues("hit").Inc()
	return result, true
}

func (h *Handler) writeCache(ctx context.Context, key string, result assessment.ScoreResult) {
	if !h.config.CacheEnabled || h.redis == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("score cache write failed", map[string]interface{}{
			"error": err,
			"key":   key,
		})
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := string(commonerrors.ErrCodeInternalError)
	if stdErr, ok := commonerrors.AsStandardError(err); ok {
		code = string(stdErr.Code)
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.errHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
