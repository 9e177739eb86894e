// internal/assessment/repository.go
package assessment

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrLeadStoreUnavailable = errors.New("LEAD_STORE_UNAVAILABLE")
	ErrLeadNotFound         = errors.New("LEAD_NOT_FOUND")
)

// Lead is what gets persisted after a submission.
type Lead struct {
	Response AssessmentResponse `json:"response"`
	Contact  ContactInfo        `json:"contact"`
	Result   ScoreResult        `json:"result"`
}

type LeadRepository interface {
	SaveLead(ctx context.Context, lead Lead) (string, error)
}

// NoopLeadRepository stands in for a datastore that has not been configured.
// Every save fails so callers exercise their failure path.
type NoopLeadRepository struct{}

func (NoopLeadRepository) SaveLead(context.Context, Lead) (string, error) {
	return "", ErrLeadStoreUnavailable
}

type MemoryLeadRepository struct {
	mu    sync.RWMutex
	leads map[string]Lead
	order []string
}

func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{leads: make(map[string]Lead)}
}

func (m *MemoryLeadRepository) SaveLead(ctx context.Context, lead Lead) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.New().String()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads[id] = lead
	m.order = append(m.order, id)
	return id, nil
}

func (m *MemoryLeadRepository) Get(id string) (Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lead, ok := m.leads[id]
	if !ok {
		return Lead{}, ErrLeadNotFound
	}
	return lead, nil
}

func (m *MemoryLeadRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

type NoticeLevel string

const (
	NoticeError   NoticeLevel = "error"
	NoticeSuccess NoticeLevel = "success"
)

// Notice is a non-blocking message for the person who submitted the assessment.
type Notice struct {
	Level   NoticeLevel   `json:"level"`
	Title   LocalizedText `json:"title"`
	Message LocalizedText `json:"message"`
}

var (
	leadSavedNotice = Notice{
		Level:   NoticeSuccess,
		Title:   LocalizedText{EN: "Assessment submitted", AR: "تم إرسال التقييم"},
		Message: LocalizedText{EN: "Our team will contact you shortly.", AR: "سيتواصل معك فريقنا قريباً."},
	}
	leadFailedNotice = Notice{
		Level: NoticeError,
		Title: LocalizedText{EN: "We could not save your details", AR: "تعذر حفظ بياناتك"},
		Message: LocalizedText{
			EN: "Your results are shown below. Please try again or contact us directly.",
			AR: "نتائجك معروضة أدناه. يرجى المحاولة مرة أخرى أو التواصل معنا مباشرة.",
		},
	}
)

func LeadSavedNotice() Notice  { return leadSavedNotice }
func LeadFailedNotice() Notice { return leadFailedNotice }
