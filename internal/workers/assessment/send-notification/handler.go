// internal/workers/assessment/send-notification/handler.go
package sendnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"readiness-workers/internal/assessment"
	commonerrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-assessment-notification"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config     *Config
	sesClient  SESService
	snsClient  SNSService
	now        func() time.Time
	logger     logger.Logger
	errHandler *commonerrors.ErrorHandler
}

func NewHandler(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		sesClient:  sesClient,
		snsClient:  snsClient,
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

// execute fails only when every attempted channel failed, so the broker
// retries; partial delivery completes with per-channel statuses.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Contact == nil {
		return nil, commonerrors.NewInvalidInputError("contact is required")
	}
	if len(input.Recommendations) == 0 {
		return nil, commonerrors.NewInvalidInputError("score result is required")
	}

	output := &Output{
		NotificationID: uuid.New().String(),
		EmailStatus:    StatusSkipped,
		SMSStatus:      StatusSkipped,
		OpsAlertStatus: StatusSkipped,
		SentAt:         h.now().UTC().Format(time.RFC3339),
	}

	var attempted, delivered int
	var errs []error
	record := func(channel string, status *string, err error) {
		attempted++
		if err != nil {
			*status = StatusFailed
			errs = append(errs, fmt.Errorf("%s: %w", channel, err))
			h.logger.Error("notification send failed", map[string]interface{}{
				"channel": channel,
				"error":   err,
				"leadId":  input.LeadID,
			})
		} else {
			*status = StatusSent
			delivered++
		}
		metrics.NotificationsSent.WithLabelValues(channel, *status).Inc()
	}

	if h.config.EmailEnabled && h.sesClient != nil && input.Contact.Email != "" {
		record(ChannelEmail, &output.EmailStatus, h.sendEmail(ctx, input))
	}

	if h.config.SMSEnabled && h.snsClient != nil && input.Contact.Phone != "" &&
		input.HighestPriority() == assessment.PriorityUrgent {
		record(ChannelSMS, &output.SMSStatus, h.sendSMS(ctx, input))
	}

	if !input.LeadSaved && h.config.OpsTopicARN != "" && h.snsClient != nil {
		record(ChannelOpsAlert, &output.OpsAlertStatus, h.sendOpsAlert(ctx, input))
	}

	if attempted > 0 && delivered == 0 {
		return nil, commonerrors.NewNotificationSendFailedError(notificationType, errors.Join(errs...))
	}

	h.logger.Info("assessment notification processed", map[string]interface{}{
		"notificationId": output.NotificationID,
		"leadId":         input.LeadID,
		"email":          output.EmailStatus,
		"sms":            output.SMSStatus,
		"opsAlert":       output.OpsAlertStatus,
	})
	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, input *Input) error {
	email, err := renderSummary(input)
	if err != nil {
		return err
	}

	_, err = h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{input.Contact.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(email.Text), Charset: aws.String("UTF-8")},
				Html: &types.Content{Data: aws.String(email.HTML), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, input *Input) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(input.Contact.Phone),
		Message:     aws.String(renderSMS(input)),
	})
	return err
}

func (h *Handler) sendOpsAlert(ctx context.Context, input *Input) error {
	subject, message := renderOpsAlert(input)
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(h.config.OpsTopicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	return err
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
