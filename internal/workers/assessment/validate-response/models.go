// internal/workers/assessment/validate-response/models.go
package validateresponse

import "readiness-workers/internal/assessment"

// Input mirrors the four form steps. Numeric answers are pointers so an
// omitted answer can be told apart from zero.
type Input struct {
	BusinessBasics  *BusinessBasicsStep     `json:"businessBasics,omitempty"`
	DigitalMaturity *DigitalMaturityStep    `json:"digitalMaturity,omitempty"`
	Challenges      *assessment.Challenges  `json:"challenges,omitempty"`
	Contact         *assessment.ContactInfo `json:"contact,omitempty"`
}

type BusinessBasicsStep struct {
	Industry           string `json:"industry"`
	MonthlyRevenueBand string `json:"monthlyRevenueBand"`
	EmployeeCountBand  string `json:"employeeCountBand"`
}

type DigitalMaturityStep struct {
	DigitalToolCount  *int `json:"digitalToolCount,omitempty"`
	AutomationPercent *int `json:"automationPercent,omitempty"`
	AIFamiliarity     *int `json:"aiFamiliarity,omitempty"`
}

type Output struct {
	IsValid             bool                           `json:"isValid"`
	Response            *assessment.AssessmentResponse `json:"response,omitempty"`
	Contact             *assessment.ContactInfo        `json:"contact,omitempty"`
	ResponseFingerprint string                         `json:"responseFingerprint,omitempty"`
	ValidationErrors    []string                       `json:"validationErrors,omitempty"`
}

// Structural checks only; ranges and completeness belong to the collector.
const inputSchema = `{
  "type": "object",
  "required": ["businessBasics", "digitalMaturity", "contact"],
  "properties": {
    "businessBasics": {
      "type": "object",
      "required": ["industry", "monthlyRevenueBand", "employeeCountBand"],
      "properties": {
        "industry":           {"type": "string"},
        "monthlyRevenueBand": {"type": "string"},
        "employeeCountBand":  {"type": "string"}
      }
    },
    "digitalMaturity": {
      "type": "object",
      "required": ["digitalToolCount", "automationPercent", "aiFamiliarity"],
      "properties": {
        "digitalToolCount":  {"type": "integer"},
        "automationPercent": {"type": "integer"},
        "aiFamiliarity":     {"type": "integer"}
      }
    },
    "challenges": {
      "type": "object",
      "properties": {
        "painPoints":              {"type": ["array", "null"], "items": {"type": "string"}},
        "customerServiceChannels": {"type": ["array", "null"], "items": {"type": "string"}}
      }
    },
    "contact": {
      "type": "object",
      "required": ["name", "email"],
      "properties": {
        "name":   {"type": "string", "minLength": 1},
        "email":  {"type": "string", "minLength": 1},
        "locale": {"type": "string"}
      }
    }
  }
}`
