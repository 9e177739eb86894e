// internal/workers/assessment/save-lead/repository.go
package savelead

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"readiness-workers/internal/assessment"
	"readiness-workers/internal/common/logger"

	"github.com/google/uuid"
)

// PostgresLeadRepository stores leads in assessment_leads and records an
// audit_log entry per insert.
type PostgresLeadRepository struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewPostgresLeadRepository(db *sql.DB, log logger.Logger) *PostgresLeadRepository {
	return &PostgresLeadRepository{db: db, logger: log, now: time.Now}
}

// FindRecent returns the id of a lead with the same e-mail and answers
// created after since.
func (r *PostgresLeadRepository) FindRecent(ctx context.Context, email, fingerprint string, since time.Time) (string, bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM assessment_leads
		WHERE email = $1 AND response_fingerprint = $2 AND created_at > $3
		ORDER BY created_at DESC
		LIMIT 1`, email, fingerprint, since).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("duplicate check failed: %w", err)
	}
	return id, true, nil
}

func (r *PostgresLeadRepository) SaveLead(ctx context.Context, lead assessment.Lead) (string, error) {
	responseJSON, err := json.Marshal(lead.Response)
	if err != nil {
		return "", fmt.Errorf("marshal response: %w", err)
	}
	resultJSON, err := json.Marshal(lead.Result)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	leadID := uuid.New().String()
	createdAt := r.now().UTC()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO assessment_leads (
			id, name, email, phone, company, locale, industry,
			readiness_score, tier, response_fingerprint, response, result, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		leadID,
		lead.Contact.Name,
		lead.Contact.Email,
		lead.Contact.Phone,
		lead.Contact.Company,
		string(lead.Contact.Locale),
		string(lead.Response.Industry),
		lead.Result.ReadinessScore,
		string(lead.Result.Tier),
		lead.Response.Fingerprint(),
		responseJSON,
		resultJSON,
		createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert lead: %w", err)
	}

	// audit entries are best effort
	details, err := json.Marshal(map[string]interface{}{
		"readinessScore": lead.Result.ReadinessScore,
		"tier":           lead.Result.Tier,
		"industry":       lead.Response.Industry,
		"topPriority":    lead.Result.HighestPriority(),
	})
	if err != nil {
		details = []byte("{}")
	}
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (entity_type, entity_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		auditEntityLead, leadID, auditActionCreate, details, createdAt,
	); err != nil {
		r.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":  err,
			"leadId": leadID,
		})
	}

	return leadID, nil
}
