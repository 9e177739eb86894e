// internal/workers/assessment/export-report/models.go
package exportreport

import (
	"encoding/json"
	"time"

	"readiness-workers/internal/assessment"
)

type Input struct {
	LeadID   string                         `json:"leadId,omitempty"`
	Response *assessment.AssessmentResponse `json:"response"`
	Contact  *assessment.ContactInfo        `json:"contact"`
	assessment.ScoreResult
}

// Output carries the file itself; Content is base64 encoded in job variables.
type Output struct {
	ReportID    string `json:"reportId"`
	FileName    string `json:"reportFileName"`
	ContentType string `json:"reportContentType"`
	Content     []byte `json:"reportContent"`
	SizeBytes   int    `json:"reportSizeBytes"`
	Archived    bool   `json:"reportArchived"`
}

// archiveDocument is what gets indexed; the full report is stored unindexed.
type archiveDocument struct {
	ReportID       string          `json:"reportId"`
	LeadID         string          `json:"leadId,omitempty"`
	GeneratedAt    time.Time       `json:"generatedAt"`
	ReadinessScore int             `json:"readinessScore"`
	Tier           assessment.Tier `json:"tier"`
	Industry       string          `json:"industry"`
	Locale         string          `json:"locale"`
	Report         json.RawMessage `json:"report"`
}
