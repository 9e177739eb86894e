// internal/workers/assessment/validate-response/handler.go
package validateresponse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"readiness-workers/internal/assessment"
	commonerrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-assessment-response"
)

var schema = validation.MustCompile(inputSchema)

type Handler struct {
	config     *Config
	logger     logger.Logger
	errHandler *commonerrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
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

// execute never fails on bad answers; it reports them so the process can
// send the user back to the form.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, commonerrors.NewTimeoutError("validation", err)
	}

	result, err := schema.Validate(input)
	if err != nil {
		return nil, commonerrors.NewInvalidInputError(err.Error())
	}
	if !result.Valid {
		return h.invalid(result.GetErrorMessages()), nil
	}

	collector := assessment.NewCollector().
		SetBusinessBasics(assessment.BusinessBasics{
			Industry:           assessment.Industry(normalizeEnum(input.BusinessBasics.Industry)),
			MonthlyRevenueBand: assessment.RevenueBand(normalizeEnum(input.BusinessBasics.MonthlyRevenueBand)),
			EmployeeCountBand:  assessment.EmployeeBand(normalizeEnum(input.BusinessBasics.EmployeeCountBand)),
		}).
		SetDigitalMaturity(assessment.DigitalMaturity{
			DigitalToolCount:  *input.DigitalMaturity.DigitalToolCount,
			AutomationPercent: *input.DigitalMaturity.AutomationPercent,
			AIFamiliarity:     *input.DigitalMaturity.AIFamiliarity,
		})
	if input.Challenges != nil {
		collector.SetChallenges(*input.Challenges)
	}

	contact := normalizeContact(*input.Contact)
	problems := contactProblems(contact)

	response, err := collector.Response()
	if err != nil {
		var verr *assessment.ValidationError
		if !errors.As(err, &verr) {
			return nil, commonerrors.NewAssessmentValidationFailedError(err.Error())
		}
		problems = append(verr.Messages(), problems...)
	}
	if len(problems) > 0 {
		return h.invalid(problems), nil
	}

	h.logger.Info("assessment response validated", map[string]interface{}{
		"industry":   response.Industry,
		"painPoints": len(response.PainPoints),
		"locale":     contact.Locale,
	})

	return &Output{
		IsValid:             true,
		Response:            &response,
		Contact:             &contact,
		ResponseFingerprint: response.Fingerprint(),
	}, nil
}

func (h *Handler) invalid(problems []string) *Output {
	h.logger.Info("assessment response rejected", map[string]interface{}{
		"errors": problems,
	})
	return &Output{IsValid: false, ValidationErrors: problems}
}

func normalizeEnum(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// normalizeContact trims input and falls back to English for unknown locales.
func normalizeContact(c assessment.ContactInfo) assessment.ContactInfo {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Company = strings.TrimSpace(c.Company)
	switch assessment.Locale(strings.ToLower(string(c.Locale))) {
	case assessment.LocaleAR:
		c.Locale = assessment.LocaleAR
	default:
		c.Locale = assessment.LocaleEN
	}
	return c
}

func contactProblems(c assessment.ContactInfo) []string {
	var problems []string
	if c.Name == "" {
		problems = append(problems, "contact.name: required")
	}
	if !validation.ValidateEmail(c.Email) {
		problems = append(problems, "contact.email: invalid email address")
	}
	if c.Phone != "" && !validation.ValidatePhone(c.Phone) {
		problems = append(problems, "contact.phone: invalid phone number")
	}
	return problems
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
