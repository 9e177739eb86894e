// internal/assessment/report.go
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrReportExportFailed = errors.New("REPORT_EXPORT_FAILED")

// Report is the downloadable summary of one submission.
type Report struct {
	ReportID    string             `json:"reportId"`
	LeadID      string             `json:"leadId,omitempty"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Contact     ContactInfo        `json:"contact"`
	Response    AssessmentResponse `json:"response"`
	Result      ScoreResult        `json:"result"`
}

func NewReport(lead Lead, leadID string, now time.Time) Report {
	return Report{
		ReportID:    uuid.New().String(),
		LeadID:      leadID,
		GeneratedAt: now.UTC(),
		Contact:     lead.Contact,
		Response:    lead.Response,
		Result:      lead.Result,
	}
}

// FileName is the suggested download name for the report.
func (r Report) FileName(ext string) string {
	return fmt.Sprintf("ai-readiness-report-%s.%s", r.GeneratedAt.Format("2006-01-02"), ext)
}

type ReportExporter interface {
	Export(ctx context.Context, report Report) ([]byte, error)
	ContentType() string
	Extension() string
}

type JSONReportExporter struct {
	Indent bool
}

func (e JSONReportExporter) Export(ctx context.Context, report Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		data []byte
		err  error
	)
	if e.Indent {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportExportFailed, err)
	}
	return data, nil
}

func (JSONReportExporter) ContentType() string { return "application/json" }

func (JSONReportExporter) Extension() string { return "json" }
