// internal/assessment/engine.go
package assessment

import (
	"context"
	"fmt"
	"time"

	"readiness-workers/internal/common/logger"
)

// Engine runs the scoring pipeline. It holds no mutable state after
// construction and is safe for concurrent use.
type Engine struct {
	tables Tables
	rules  []Rule
	now    func() time.Time
	leads  LeadRepository
	logger logger.Logger
}

type Option func(*Engine)

func WithTables(t Tables) Option {
	return func(e *Engine) { e.tables = t.clone() }
}

// WithRules appends rules after the built-in ones.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) { e.rules = append(e.rules, rules...) }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLeadRepository(repo LeadRepository) Option {
	return func(e *Engine) { e.leads = repo }
}

func WithLogger(log logger.Logger) Option {
	return func(e *Engine) { e.logger = log }
}

func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		tables: DefaultTables(),
		rules:  DefaultRules(),
		now:    time.Now,
		leads:  NoopLeadRepository{},
		logger: logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.tables.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) Tables() Tables {
	return e.tables.clone()
}

func (e *Engine) Score(r AssessmentResponse) (int, ScoreBreakdown) {
	return e.tables.Calculate(r)
}

// Evaluate computes score, recommendations and projected metrics in one pass.
func (e *Engine) Evaluate(r AssessmentResponse) ScoreResult {
	score, breakdown := e.tables.Calculate(r)
	return ScoreResult{
		ReadinessScore:   score,
		Tier:             TierFor(score),
		Breakdown:        breakdown,
		Recommendations:  Recommend(r, score, e.rules),
		ProjectedMetrics: e.tables.Project(r, score),
		CalculatedAt:     e.now().UTC(),
	}
}

// Submission is the outcome of a final form submission. Result is always
// populated; a failed save only shows up in Saved, Notice and Err.
type Submission struct {
	Result ScoreResult `json:"result"`
	LeadID string      `json:"leadId,omitempty"`
	Saved  bool        `json:"saved"`
	Notice Notice      `json:"notice"`
	Err    error       `json:"-"`
}

func (e *Engine) Submit(ctx context.Context, r AssessmentResponse, contact ContactInfo) Submission {
	result := e.Evaluate(r)
	lead := Lead{Response: r, Contact: contact, Result: result}

	leadID, notice, err := SaveLead(ctx, e.leads, lead, e.logger)
	return Submission{
		Result: result,
		LeadID: leadID,
		Saved:  err == nil,
		Notice: notice,
		Err:    err,
	}
}

// SaveLead persists a lead and turns the outcome into a user-facing notice.
// The error is returned for logging and metrics only.
func SaveLead(ctx context.Context, repo LeadRepository, lead Lead, log logger.Logger) (string, Notice, error) {
	if repo == nil {
		repo = NoopLeadRepository{}
	}
	leadID, err := repo.SaveLead(ctx, lead)
	if err != nil {
		log.Warn("lead persistence failed, returning results without saving", map[string]interface{}{
			"error":          err.Error(),
			"readinessScore": lead.Result.ReadinessScore,
		})
		return "", LeadFailedNotice(), fmt.Errorf("save lead: %w", err)
	}
	log.Info("lead saved", map[string]interface{}{
		"leadId":         leadID,
		"readinessScore": lead.Result.ReadinessScore,
	})
	return leadID, LeadSavedNotice(), nil
}
