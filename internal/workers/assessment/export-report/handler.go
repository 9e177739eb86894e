// internal/workers/assessment/export-report/handler.go
package exportreport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"readiness-workers/internal/assessment"
	commonerrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/dustin/go-humanize"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType = "export-assessment-report"
)

type Handler struct {
	config     *Config
	es         *elasticsearch.Client
	exporter   assessment.ReportExporter
	now        func() time.Time
	logger     logger.Logger
	errHandler *commonerrors.ErrorHandler
}

// NewHandler builds the handler. es may be nil, which disables archiving.
func NewHandler(config *Config, es *elasticsearch.Client, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		es:         es,
		exporter:   assessment.JSONReportExporter{Indent: config.Indent},
		now:        time.Now,
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
	if input.Response == nil || input.Contact == nil {
		return nil, commonerrors.NewInvalidInputError("response and contact are required")
	}
	if len(input.Recommendations) == 0 {
		return nil, commonerrors.NewInvalidInputError("score result is required")
	}

	lead := assessment.Lead{
		Response: *input.Response,
		Contact:  *input.Contact,
		Result:   input.ScoreResult,
	}
	report := assessment.NewReport(lead, input.LeadID, h.now())

	content, err := h.exporter.Export(ctx, report)
	if err != nil {
		return nil, commonerrors.NewReportExportFailedError(h.exporter.Extension(), err)
	}

	output := &Output{
		ReportID:    report.ReportID,
		FileName:    report.FileName(h.exporter.Extension()),
		ContentType: h.exporter.ContentType(),
		Content:     content,
		SizeBytes:   len(content),
	}

	if err := h.archive(ctx, report, content); err != nil {
		h.logger.Warn("report archive failed", map[string]interface{}{
			"error":    commonerrors.NewReportArchiveFailedError(h.config.Index, err).Error(),
			"reportId": report.ReportID,
		})
	} else {
		output.Archived = h.archiveEnabled()
	}

	h.logger.Info("report exported", map[string]interface{}{
		"reportId": report.ReportID,
		"leadId":   input.LeadID,
		"fileName": output.FileName,
		"size":     humanize.Bytes(uint64(len(content))),
		"archived": output.Archived,
	})
	return output, nil
}

func (h *Handler) archiveEnabled() bool {
	return h.config.ArchiveEnabled && h.es != nil
}

func (h *Handler) archive(ctx context.Context, report assessment.Report, content []byte) error {
	if !h.archiveEnabled() {
		return nil
	}

	// an indented export is still valid JSON for the raw field
	doc, err := json.Marshal(archiveDocument{
		ReportID:       report.ReportID,
		LeadID:         report.LeadID,
		GeneratedAt:    report.GeneratedAt,
		ReadinessScore: report.Result.ReadinessScore,
		Tier:           report.Result.Tier,
		Industry:       string(report.Response.Industry),
		Locale:         string(report.Contact.Locale),
		Report:         json.RawMessage(content),
	})
	if err != nil {
		return fmt.Errorf("marshal archive document: %w", err)
	}

	res, err := h.es.Index(h.config.Index, bytes.NewReader(doc),
		h.es.Index.WithDocumentID(report.ReportID),
		h.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index response %s: %s", res.Status(), string(body))
	}
	return nil
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
