// internal/cli/input.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"readiness-workers/internal/assessment"

	"gopkg.in/yaml.v3"
)

type inputDocument struct {
	Response assessment.AssessmentResponse `yaml:"response"`
	Contact  *assessment.ContactInfo       `yaml:"contact"`
}

type submission struct {
	Response assessment.AssessmentResponse
	Contact  assessment.ContactInfo
}

func readSubmission(path string) (*submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc inputDocument
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty response file", path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r := doc.Response
	collector := assessment.NewCollector().
		SetBusinessBasics(assessment.BusinessBasics{
			Industry:           r.Industry,
			MonthlyRevenueBand: r.MonthlyRevenueBand,
			EmployeeCountBand:  r.EmployeeCountBand,
		}).
		SetDigitalMaturity(assessment.DigitalMaturity{
			DigitalToolCount:  r.DigitalToolCount,
			AutomationPercent: r.AutomationPercent,
			AIFamiliarity:     r.AIFamiliarity,
		}).
		SetChallenges(assessment.Challenges{
			PainPoints:              r.PainPoints,
			CustomerServiceChannels: r.CustomerServiceChannels,
		})
	if doc.Contact != nil {
		collector.SetContact(*doc.Contact)
	}

	response, err := collector.Response()
	if err != nil {
		return nil, err
	}
	contact, _ := collector.Contact()
	return &submission{Response: response, Contact: contact}, nil
}
