// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// HandlerFunc is the signature every assessment worker exposes as Handle.
type HandlerFunc func(worker.JobClient, entities.Job)

// Instrument wraps a handler with the active-jobs gauge, job duration and
// panic recovery. A recovered job is left to time out so the broker retries it.
func Instrument(taskType string, handle HandlerFunc, obs *observability.Observability, log logger.Logger) HandlerFunc {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		status := "handled"
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()

		defer func() {
			if r := recover(); r != nil {
				status = "panic"
				metrics.WorkerJobsFailed.WithLabelValues(taskType, "PANIC").Inc()
				log.Error("handler panicked", map[string]interface{}{
					"taskType": taskType,
					"jobKey":   job.Key,
					"panic":    fmt.Sprint(r),
				})
			}
			elapsed := time.Since(start)
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			obs.RecordJob(context.Background(), taskType, status, elapsed)
		}()

		handle(client, job)
	}
}

// StartWorker opens a job worker for taskType unless it is disabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handle HandlerFunc, obs *observability.Observability, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, handle, obs, log))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jw
}
