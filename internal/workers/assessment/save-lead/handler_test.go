// internal/workers/assessment/save-lead/handler_test.go
package savelead

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"readiness-workers/internal/assessment"
	commonerrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/common/zoho"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockCRMService struct {
	UpsertLeadFunc func(ctx context.Context, lead *zoho.Lead) (string, error)
	calls          []*zoho.Lead
}

func (m *MockCRMService) UpsertLead(ctx context.Context, lead *zoho.Lead) (string, error) {
	m.calls = append(m.calls, lead)
	return m.UpsertLeadFunc(ctx, lead)
}

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2025, 3, 14, 6, 30, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{
		DuplicateWindow: 24 * time.Hour,
		Timeout:         5 * time.Second,
	}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func createTestInput(t *testing.T) *Input {
	engine, err := assessment.NewEngine(assessment.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	response := assessment.AssessmentResponse{
		Industry:           assessment.IndustryRestaurant,
		MonthlyRevenueBand: assessment.RevenueUnder50K,
		EmployeeCountBand:  assessment.Employees1To5,
		DigitalToolCount:   1,
		AIFamiliarity:      1,
		PainPoints:         []assessment.PainPoint{assessment.PainCustomerService},
	}
	return &Input{
		Response: &response,
		Contact: &assessment.ContactInfo{
			Name:   "Fatimah Al Harbi",
			Email:  "owner@restaurant.sa",
			Phone:  "+966501234567",
			Locale: assessment.LocaleAR,
		},
		ScoreResult: engine.Evaluate(response),
	}
}

func newTestHandler(t *testing.T, db *sql.DB, cfg *Config, crm CRMService) *Handler {
	log := &testLogger{t: t}
	repo := NewPostgresLeadRepository(db, log)
	repo.now = func() time.Time { return fixedNow }

	h := NewHandler(cfg, repo, crm, log)
	h.now = func() time.Time { return fixedNow }
	return h
}

func expectNoDuplicate(mock sqlmock.Sqlmock, input *Input) {
	mock.ExpectQuery("SELECT id FROM assessment_leads").
		WithArgs(input.Contact.Email, input.Response.Fingerprint(), fixedNow.Add(-24*time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func expectInsert(mock sqlmock.Sqlmock, input *Input) {
	mock.ExpectExec("INSERT INTO assessment_leads").
		WithArgs(
			sqlmock.AnyArg(), // id
			input.Contact.Name,
			input.Contact.Email,
			input.Contact.Phone,
			"",
			"ar",
			"restaurant",
			input.ReadinessScore,
			string(input.Tier),
			input.Response.Fingerprint(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			fixedNow,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SavesNewLead(t *testing.T) {
	db, mock := setupMockDB(t)
	input := createTestInput(t)

	expectNoDuplicate(mock, input)
	expectInsert(mock, input)
	mock.ExpectExec("INSERT INTO audit_log").
		WithArgs(auditEntityLead, sqlmock.AnyArg(), auditActionCreate, sqlmock.AnyArg(), fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := newTestHandler(t, db, createTestConfig(), nil).Execute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, output.LeadSaved)
	assert.False(t, output.Duplicate)
	assert.Len(t, output.LeadID, 36)
	assert.Equal(t, assessment.NoticeSuccess, output.Notice.Level)
	assert.False(t, output.CRMSynced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DuplicateSubmission(t *testing.T) {
	db, mock := setupMockDB(t)
	input := createTestInput(t)

	mock.ExpectQuery("SELECT id FROM assessment_leads").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1f0c6d8e-4b1a-4c55-9f0e-0a1b2c3d4e5f"))

	output, err := newTestHandler(t, db, createTestConfig(), nil).Execute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, output.LeadSaved)
	assert.True(t, output.Duplicate)
	assert.Equal(t, "1f0c6d8e-4b1a-4c55-9f0e-0a1b2c3d4e5f", output.LeadID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AuditFailureIsNotFatal(t *testing.T) {
	db, mock := setupMockDB(t)
	input := createTestInput(t)

	expectNoDuplicate(mock, input)
	expectInsert(mock, input)
	mock.ExpectExec("INSERT INTO audit_log").WillReturnError(errors.New("relation \"audit_log\" does not exist"))

	output, err := newTestHandler(t, db, createTestConfig(), nil).Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, output.LeadSaved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Persistence Failure Tests
// ==========================

func TestHandler_Execute_PersistenceFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock, input *Input)
	}{
		{
			name: "insert fails",
			setup: func(mock sqlmock.Sqlmock, input *Input) {
				expectNoDuplicate(mock, input)
				mock.ExpectExec("INSERT INTO assessment_leads").WillReturnError(errors.New("connection reset by peer"))
			},
		},
		{
			name: "duplicate check fails",
			setup: func(mock sqlmock.Sqlmock, _ *Input) {
				mock.ExpectQuery("SELECT id FROM assessment_leads").WillReturnError(errors.New("connection refused"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			input := createTestInput(t)
			tt.setup(mock, input)

			crm := &MockCRMService{UpsertLeadFunc: func(context.Context, *zoho.Lead) (string, error) {
				return "crm-1", nil
			}}
			cfg := createTestConfig()
			cfg.CRMEnabled = true

			failuresBefore := testutil.ToFloat64(metrics.LeadSaveFailures)

			output, err := newTestHandler(t, db, cfg, crm).Execute(context.Background(), input)
			require.NoError(t, err)

			assert.False(t, output.LeadSaved)
			assert.Empty(t, output.LeadID)
			assert.Equal(t, assessment.NoticeError, output.Notice.Level)
			assert.Equal(t, "تعذر حفظ بياناتك", output.Notice.Title.AR)
			assert.Empty(t, crm.calls, "crm is only synced for stored leads")
			assert.Equal(t, failuresBefore+1, testutil.ToFloat64(metrics.LeadSaveFailures))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ==========================
// CRM Sync Tests
// ==========================

func TestHandler_Execute_CRMSync(t *testing.T) {
	tests := []struct {
		name          string
		crmErr        error
		expectedSync  bool
		expectedCRMID string
	}{
		{name: "synced", expectedSync: true, expectedCRMID: "5725767000000524157"},
		{name: "crm down", crmErr: errors.New("status 503")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			input := createTestInput(t)
			expectNoDuplicate(mock, input)
			expectInsert(mock, input)
			mock.ExpectExec("INSERT INTO audit_log").WillReturnResult(sqlmock.NewResult(1, 1))

			crm := &MockCRMService{UpsertLeadFunc: func(context.Context, *zoho.Lead) (string, error) {
				if tt.crmErr != nil {
					return "", tt.crmErr
				}
				return "5725767000000524157", nil
			}}
			cfg := createTestConfig()
			cfg.CRMEnabled = true

			output, err := newTestHandler(t, db, cfg, crm).Execute(context.Background(), input)
			require.NoError(t, err)

			assert.True(t, output.LeadSaved)
			assert.Equal(t, tt.expectedSync, output.CRMSynced)
			assert.Equal(t, tt.expectedCRMID, output.CRMLeadID)

			require.Len(t, crm.calls, 1)
			sent := crm.calls[0]
			assert.Equal(t, "Fatimah Al", sent.FirstName)
			assert.Equal(t, "Harbi", sent.LastName)
			assert.Equal(t, "Fatimah Al Harbi", sent.Company)
			assert.Equal(t, input.ReadinessScore, sent.ReadinessScore)
			assert.Equal(t, leadSource, sent.Source)
			assert.Contains(t, sent.Description, "Foundation Building")
		})
	}
}

// ==========================
// Input Tests
// ==========================

func TestHandler_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *Input)
	}{
		{name: "missing contact", mutate: func(in *Input) { in.Contact = nil }},
		{name: "missing response", mutate: func(in *Input) { in.Response = nil }},
		{name: "missing score", mutate: func(in *Input) { in.ScoreResult = assessment.ScoreResult{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			input := createTestInput(t)
			tt.mutate(input)

			_, err := newTestHandler(t, db, createTestConfig(), nil).Execute(context.Background(), input)
			require.Error(t, err)

			stdErr, ok := commonerrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, commonerrors.ErrCodeInvalidInput, stdErr.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInput_ReadsScoreVariables(t *testing.T) {
	variables := `{
		"response": {"industry": "retail", "monthlyRevenueBand": "100k_250k", "employeeCountBand": "6_20",
			"digitalToolCount": 5, "automationPercent": 50, "aiFamiliarity": 3},
		"contact": {"name": "Omar", "email": "omar@shop.sa"},
		"readinessScore": 64,
		"tier": "optimization",
		"recommendations": [{"priority": "MEDIUM", "title": {"en": "AI Optimization", "ar": "تحسين الذكاء الاصطناعي"}}],
		"topPriority": "MEDIUM"
	}`

	var input Input
	require.NoError(t, json.Unmarshal([]byte(variables), &input))
	assert.Equal(t, 64, input.ReadinessScore)
	assert.Equal(t, assessment.TierOptimization, input.Tier)
	require.Len(t, input.Recommendations, 1)
	assert.Equal(t, assessment.PriorityMedium, input.HighestPriority())
}
