// internal/workers/assessment/save-lead/models.go
package savelead

import "readiness-workers/internal/assessment"

// Input reads the validated response, the contact step and the score
// variables written by calculate-readiness-score.
type Input struct {
	Response *assessment.AssessmentResponse `json:"response"`
	Contact  *assessment.ContactInfo        `json:"contact"`
	assessment.ScoreResult
}

type Output struct {
	LeadID    string            `json:"leadId,omitempty"`
	LeadSaved bool              `json:"leadSaved"`
	Duplicate bool              `json:"duplicateLead"`
	Notice    assessment.Notice `json:"notice"`
	CRMLeadID string            `json:"crmLeadId,omitempty"`
	CRMSynced bool              `json:"crmSynced"`
}

const (
	auditEntityLead   = "assessment_lead"
	auditActionCreate = "lead_created"
	leadSource        = "AI Readiness Assessment"
)
