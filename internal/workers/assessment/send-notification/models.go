// internal/workers/assessment/send-notification/models.go
package sendnotification

import "readiness-workers/internal/assessment"

type Input struct {
	LeadID    string                         `json:"leadId,omitempty"`
	LeadSaved bool                           `json:"leadSaved"`
	Response  *assessment.AssessmentResponse `json:"response"`
	Contact   *assessment.ContactInfo        `json:"contact"`
	assessment.ScoreResult
}

type Output struct {
	NotificationID string `json:"notificationId"`
	EmailStatus    string `json:"emailStatus"`
	SMSStatus      string `json:"smsStatus"`
	OpsAlertStatus string `json:"opsAlertStatus"`
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Channels, used as metric labels
const (
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
	ChannelOpsAlert = "ops_alert"
)

const notificationType = "assessment_summary"
