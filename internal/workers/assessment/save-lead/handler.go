// internal/workers/assessment/save-lead/handler.go
package savelead

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"readiness-workers/internal/assessment"
	commonerrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/common/zoho"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "save-assessment-lead"
)

// LeadStore is the persistence the handler needs beyond assessment.LeadRepository.
type LeadStore interface {
	assessment.LeadRepository
	FindRecent(ctx context.Context, email, fingerprint string, since time.Time) (string, bool, error)
}

type CRMService interface {
	UpsertLead(ctx context.Context, lead *zoho.Lead) (string, error)
}

type Handler struct {
	config     *Config
	store      LeadStore
	crm        CRMService
	now        func() time.Time
	logger     logger.Logger
	errHandler *commonerrors.ErrorHandler
}

// NewHandler builds the handler. crm may be nil when the CRM integration is off.
func NewHandler(config *Config, store LeadStore, crm CRMService, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      store,
		crm:        crm,
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

// execute only errors on malformed input. A storage failure still completes
// the job so the user sees the results together with the failure notice.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Response == nil || input.Contact == nil {
		return nil, commonerrors.NewInvalidInputError("response and contact are required")
	}
	if len(input.Recommendations) == 0 {
		return nil, commonerrors.NewInvalidInputError("score result is required")
	}

	lead := assessment.Lead{
		Response: input.Response.Normalized(),
		Contact:  *input.Contact,
		Result:   input.ScoreResult,
	}

	existingID, found, err := h.store.FindRecent(ctx, lead.Contact.Email, lead.Response.Fingerprint(), h.now().Add(-h.config.DuplicateWindow))
	if err != nil {
		return h.saveFailed(lead, commonerrors.NewDatabaseConnectionFailedError(err)), nil
	}
	if found {
		dup := commonerrors.NewDuplicateLeadError(existingID)
		h.logger.Info("duplicate submission, reusing lead", map[string]interface{}{
			"leadId":    existingID,
			"errorCode": dup.Code,
		})
		return &Output{
			LeadID:    existingID,
			LeadSaved: true,
			Duplicate: true,
			Notice:    assessment.LeadSavedNotice(),
		}, nil
	}

	leadID, notice, err := assessment.SaveLead(ctx, h.store, lead, h.logger)
	if err != nil {
		return h.saveFailed(lead, commonerrors.NewLeadPersistenceFailedError(err)), nil
	}

	output := &Output{
		LeadID:    leadID,
		LeadSaved: true,
		Notice:    notice,
	}
	h.syncCRM(ctx, lead, output)
	return output, nil
}

func (h *Handler) saveFailed(lead assessment.Lead, err *commonerrors.StandardError) *Output {
	metrics.LeadSaveFailures.Inc()
	h.logger.Warn("lead not saved", map[string]interface{}{
		"errorCode":      err.Code,
		"error":          err.Error(),
		"readinessScore": lead.Result.ReadinessScore,
	})
	return &Output{
		LeadSaved: false,
		Notice:    assessment.LeadFailedNotice(),
	}
}

// syncCRM pushes the lead to Zoho. Failures are logged; the lead is already stored.
func (h *Handler) syncCRM(ctx context.Context, lead assessment.Lead, output *Output) {
	if !h.config.CRMEnabled || h.crm == nil {
		return
	}

	crmID, err := h.crm.UpsertLead(ctx, toCRMLead(lead))
	if err != nil {
		h.logger.Warn("crm sync failed", map[string]interface{}{
			"error":  commonerrors.NewCRMSyncFailedError(err).Error(),
			"leadId": output.LeadID,
		})
		return
	}
	output.CRMLeadID = crmID
	output.CRMSynced = true
}

func toCRMLead(lead assessment.Lead) *zoho.Lead {
	first, last := zoho.SplitName(lead.Contact.Name)
	company := lead.Contact.Company
	if company == "" {
		company = lead.Contact.Name
	}

	var description string
	if len(lead.Result.Recommendations) > 0 {
		top := lead.Result.Recommendations[0]
		description = fmt.Sprintf("%s (%s)", top.Title.EN, top.Priority)
	}

	return &zoho.Lead{
		FirstName:      first,
		LastName:       last,
		Email:          lead.Contact.Email,
		Phone:          lead.Contact.Phone,
		Company:        company,
		Industry:       string(lead.Response.Industry),
		Source:         leadSource,
		ReadinessScore: lead.Result.ReadinessScore,
		ReadinessTier:  string(lead.Result.Tier),
		Description:    description,
	}
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
