// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("save lead: %w", NewLeadPersistenceFailedError(stderrors.New("connection reset")))

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeLeadPersistenceFailed, stdErr.Code)
	assert.Equal(t, "StandardError[LEAD_PERSISTENCE_FAILED]: Lead could not be persisted", stdErr.Error())

	_, ok = AsStandardError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    string
		expectedRetries int
	}{
		{
			name:            "mapped retryable",
			err:             NewDatabaseConnectionFailedError(stderrors.New("dial tcp: refused")),
			expectedCode:    "DATABASE_CONNECTION_FAILED",
			expectedRetries: 3,
		},
		{
			name:            "tables map to score failure",
			err:             NewInvalidScoringTablesError(stderrors.New("multiplier out of range")),
			expectedCode:    "SCORE_CALCULATION_FAILED",
			expectedRetries: 0,
		},
		{
			name:            "unmapped code passes through",
			err:             NewTimeoutError("elasticsearch", stderrors.New("deadline exceeded")),
			expectedCode:    "TIMEOUT_ERROR",
			expectedRetries: 2,
		},
		{
			name: "non retryable drops retries",
			err: &StandardError{
				Code:      ErrCodeNotificationSendFailed,
				Message:   "Notification delivery failed",
				Retryable: false,
				Timestamp: time.Now().UTC(),
			},
			expectedCode:    "NOTIFICATION_SEND_FAILED",
			expectedRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectedCode, bpmnErr.Code)
			assert.Equal(t, tt.expectedRetries, bpmnErr.Retries)
			assert.Equal(t, tt.err.Retryable, bpmnErr.Retryable)
			assert.Equal(t, string(tt.err.Code), bpmnErr.ErrorVariables["originalErrorCode"])

			vars := bpmnErr.ToErrorVariables()
			assert.Equal(t, tt.expectedCode, vars["errorCode"])
			assert.Equal(t, tt.err.Message, vars["errorMessage"])
			assert.Contains(t, vars, "timestamp")
		})
	}
}

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeDatabaseConnectionFailed, 3},
		{ErrCodeLeadPersistenceFailed, 3},
		{ErrCodeNotificationSendFailed, 3},
		{ErrCodeCRMSyncFailed, 3},
		{ErrCodeReportArchiveFailed, 2},
		{ErrCodeExternalService, 2},
		{ErrCodeTimeout, 2},
		{ErrCodeAssessmentValidationFailed, 0},
		{ErrCodeReportExportFailed, 0},
		{ErrCodeDuplicateLead, 0},
		{ErrCodeInvalidInput, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetRetryCount(tt.code))
			assert.Equal(t, tt.expected > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeAssessmentValidationFailed: "SCORING",
		ErrCodeInvalidScoringTables:       "SCORING",
		ErrCodeScoreCalculationFailed:     "SCORING",
		ErrCodeDatabaseConnectionFailed:   "DATABASE",
		ErrCodeDuplicateLead:              "DATABASE",
		ErrCodeReportArchiveFailed:        "REPORT",
		ErrCodeNotificationSendFailed:     "NOTIFICATION",
		ErrCodeCRMSyncFailed:              "CRM",
		ErrCodeCacheUnavailable:           "CACHE",
		ErrCodeInvalidInput:               "VALIDATION",
		ErrCodeTimeout:                    "OTHER",
	}
	for code, expected := range tests {
		assert.Equal(t, expected, GetErrorCategory(code), code)
	}
}

func TestNewDuplicateLeadError(t *testing.T) {
	err := NewDuplicateLeadError("9b2f4c1e")
	assert.False(t, err.Retryable)
	assert.Equal(t, "9b2f4c1e", err.Metadata["leadId"])
	assert.Equal(t, "leadId: 9b2f4c1e", err.Details)
}

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func TestErrorHandler_NormalizeError(t *testing.T) {
	h := NewErrorHandler(&recordingLogger{})

	stdErr := h.normalizeError(stderrors.New("nil pointer"))
	assert.Equal(t, ErrCodeInternalError, stdErr.Code)
	assert.Equal(t, "nil pointer", stdErr.Details)
	assert.False(t, stdErr.Retryable)

	original := NewCRMSyncFailedError(stderrors.New("401"))
	assert.Same(t, original, h.normalizeError(fmt.Errorf("sync: %w", original)))
}
