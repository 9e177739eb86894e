// internal/assessment/collector.go
package assessment

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIncompleteResponse = errors.New("ASSESSMENT_VALIDATION_FAILED")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every missing or out-of-range answer.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrIncompleteResponse.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrIncompleteResponse
}

func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return out
}

type BusinessBasics struct {
	Industry           Industry     `json:"industry"`
	MonthlyRevenueBand RevenueBand  `json:"monthlyRevenueBand"`
	EmployeeCountBand  EmployeeBand `json:"employeeCountBand"`
}

type DigitalMaturity struct {
	DigitalToolCount  int `json:"digitalToolCount"`
	AutomationPercent int `json:"automationPercent"`
	AIFamiliarity     int `json:"aiFamiliarity"`
}

type Challenges struct {
	PainPoints              []PainPoint `json:"painPoints"`
	CustomerServiceChannels []Channel   `json:"customerServiceChannels"`
}

// Collector accumulates the answers of the multi-step form. Steps may arrive
// in any order and a later call for the same step replaces the earlier one.
// A Collector is not safe for concurrent use.
type Collector struct {
	basics     *BusinessBasics
	maturity   *DigitalMaturity
	challenges Challenges
	contact    *ContactInfo
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) SetBusinessBasics(b BusinessBasics) *Collector {
	c.basics = &b
	return c
}

func (c *Collector) SetDigitalMaturity(m DigitalMaturity) *Collector {
	c.maturity = &m
	return c
}

func (c *Collector) SetChallenges(ch Challenges) *Collector {
	c.challenges = Challenges{
		PainPoints:              append([]PainPoint(nil), ch.PainPoints...),
		CustomerServiceChannels: append([]Channel(nil), ch.CustomerServiceChannels...),
	}
	return c
}

func (c *Collector) SetContact(ci ContactInfo) *Collector {
	c.contact = &ci
	return c
}

// Contact returns the contact step if it was supplied.
func (c *Collector) Contact() (ContactInfo, bool) {
	if c.contact == nil {
		return ContactInfo{}, false
	}
	return *c.contact, true
}

// Complete reports whether Response would succeed.
func (c *Collector) Complete() bool {
	return len(c.missing()) == 0
}

// Response returns the fully formed response. Enumerated values outside the
// known sets are accepted; they only affect scoring through table defaults.
func (c *Collector) Response() (AssessmentResponse, error) {
	if problems := c.missing(); len(problems) > 0 {
		return AssessmentResponse{}, &ValidationError{Fields: problems}
	}

	r := AssessmentResponse{
		Industry:                c.basics.Industry,
		MonthlyRevenueBand:      c.basics.MonthlyRevenueBand,
		EmployeeCountBand:       c.basics.EmployeeCountBand,
		DigitalToolCount:        c.maturity.DigitalToolCount,
		AutomationPercent:       c.maturity.AutomationPercent,
		AIFamiliarity:           c.maturity.AIFamiliarity,
		PainPoints:              c.challenges.PainPoints,
		CustomerServiceChannels: c.challenges.CustomerServiceChannels,
	}
	return r.Normalized(), nil
}

func (c *Collector) missing() []FieldError {
	var problems []FieldError

	if c.basics == nil {
		problems = append(problems,
			FieldError{Field: "industry", Message: "required"},
			FieldError{Field: "monthlyRevenueBand", Message: "required"},
			FieldError{Field: "employeeCountBand", Message: "required"},
		)
	} else {
		if strings.TrimSpace(string(c.basics.Industry)) == "" {
			problems = append(problems, FieldError{Field: "industry", Message: "required"})
		}
		if strings.TrimSpace(string(c.basics.MonthlyRevenueBand)) == "" {
			problems = append(problems, FieldError{Field: "monthlyRevenueBand", Message: "required"})
		}
		if strings.TrimSpace(string(c.basics.EmployeeCountBand)) == "" {
			problems = append(problems, FieldError{Field: "employeeCountBand", Message: "required"})
		}
	}

	if c.maturity == nil {
		problems = append(problems,
			FieldError{Field: "digitalToolCount", Message: "required"},
			FieldError{Field: "automationPercent", Message: "required"},
			FieldError{Field: "aiFamiliarity", Message: "required"},
		)
		return problems
	}

	if v := c.maturity.DigitalToolCount; v < 1 || v > 10 {
		problems = append(problems, FieldError{Field: "digitalToolCount", Message: fmt.Sprintf("must be between 1 and 10, got %d", v)})
	}
	if v := c.maturity.AutomationPercent; v < 0 || v > 100 {
		problems = append(problems, FieldError{Field: "automationPercent", Message: fmt.Sprintf("must be between 0 and 100, got %d", v)})
	}
	if v := c.maturity.AIFamiliarity; v < 1 || v > 5 {
		problems = append(problems, FieldError{Field: "aiFamiliarity", Message: fmt.Sprintf("must be between 1 and 5, got %d", v)})
	}
	return problems
}
