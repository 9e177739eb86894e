package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
)

var fastRetry = &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}

func TestBackoff(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: time.Second, MaxDelay: 10 * time.Second}
	assert.Equal(t, time.Second, backoff(cfg, 0))
	assert.Equal(t, 2*time.Second, backoff(cfg, 1))
	assert.Equal(t, 8*time.Second, backoff(cfg, 3))
	assert.Equal(t, 10*time.Second, backoff(cfg, 4))
	assert.Equal(t, 10*time.Second, backoff(cfg, 70))
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(errors.New("rpc error: code = Unavailable desc = connection refused")))
	assert.True(t, isRetryableZeebeError(context.DeadlineExceeded))
	assert.False(t, isRetryableZeebeError(errors.New("permission denied")))
}

func TestRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), fastRetry, "topology", func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), fastRetry, "topology", func(context.Context) error {
			calls++
			return errors.New("permission denied")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)

		stdErr, ok := commonerrors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, commonerrors.ErrCodeExternalService, stdErr.Code)
	})

	t.Run("gives up after budget", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), fastRetry, "topology", func(context.Context) error {
			calls++
			return errors.New("deadline exceeded")
		})
		require.Error(t, err)
		assert.Equal(t, fastRetry.MaxRetries+1, calls)

		stdErr, ok := commonerrors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, commonerrors.ErrCodeTimeout, stdErr.Code)
		assert.Contains(t, stdErr.Details, "after 4 attempts")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		slow := &RetryConfig{MaxRetries: 3, BaseDelay: time.Hour, MaxDelay: time.Hour}
		err := Retry(ctx, slow, "topology", func(context.Context) error {
			return errors.New("unavailable")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestInstrument(t *testing.T) {
	const taskType = "instrument-test"
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42}}

	t.Run("gauge returns to zero", func(t *testing.T) {
		var observed float64
		handle := Instrument(taskType, func(worker.JobClient, entities.Job) {
			observed = testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType))
		}, nil, logger.NewNoOpLogger())

		handle(nil, job)

		assert.Equal(t, 1.0, observed)
		assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	})

	t.Run("panic is recovered", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "PANIC"))
		handle := Instrument(taskType, func(worker.JobClient, entities.Job) {
			panic("nil map")
		}, nil, logger.NewTestLogger(t))

		assert.NotPanics(t, func() { handle(nil, job) })
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "PANIC")))
		assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	})
}
