// internal/workers/assessment/send-notification/templates.go
package sendnotification

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"readiness-workers/internal/assessment"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type labels struct {
	Subject         string
	Greeting        string
	ScoreLabel      string
	TierLabel       string
	Recommendations string
	Metrics         string
	TimeSavings     string
	CostReduction   string
	RevenueIncrease string
	Satisfaction    string
	Payback         string
	Months          string
	Timeline        string
	ROI             string
	Investment      string
	NotSaved        string
	SMS             string
}

var localized = map[assessment.Locale]labels{
	assessment.LocaleEN: {
		Subject:         "Your AI Readiness Assessment Results",
		Greeting:        "Hello %s, thank you for completing the AI readiness assessment.",
		ScoreLabel:      "Readiness score",
		TierLabel:       "Stage",
		Recommendations: "Recommended next steps",
		Metrics:         "Projected monthly impact",
		TimeSavings:     "Time savings",
		CostReduction:   "Cost reduction",
		RevenueIncrease: "Revenue increase",
		Satisfaction:    "Customer satisfaction",
		Payback:         "Payback period",
		Months:          "months",
		Timeline:        "Timeline",
		ROI:             "Expected ROI",
		Investment:      "Investment",
		NotSaved:        "We could not save your details automatically. Reply to this e-mail and our team will follow up.",
		SMS:             "Hi %s, your AI readiness score is %d/100. Top priority: %s. Our team will contact you within 24 hours.",
	},
	assessment.LocaleAR: {
		Subject:         "نتائج تقييم جاهزيتك للذكاء الاصطناعي",
		Greeting:        "مرحباً %s، شكراً لإكمال تقييم الجاهزية للذكاء الاصطناعي.",
		ScoreLabel:      "درجة الجاهزية",
		TierLabel:       "المرحلة",
		Recommendations: "الخطوات الموصى بها",
		Metrics:         "الأثر الشهري المتوقع",
		TimeSavings:     "توفير الوقت",
		CostReduction:   "خفض التكاليف",
		RevenueIncrease: "زيادة الإيرادات",
		Satisfaction:    "رضا العملاء",
		Payback:         "فترة الاسترداد",
		Months:          "أشهر",
		Timeline:        "المدة",
		ROI:             "العائد المتوقع",
		Investment:      "الاستثمار",
		NotSaved:        "تعذر حفظ بياناتك تلقائياً. يرجى الرد على هذه الرسالة وسيتواصل معك فريقنا.",
		SMS:             "مرحباً %s، درجة جاهزيتك للذكاء الاصطناعي %d/100. الأولوية: %s. سيتواصل معك فريقنا خلال 24 ساعة.",
	},
}

var tierNames = map[assessment.Tier]assessment.LocalizedText{
	assessment.TierFoundation:     {EN: "Foundation", AR: "التأسيس"},
	assessment.TierImplementation: {EN: "Implementation", AR: "التطبيق"},
	assessment.TierOptimization:   {EN: "Optimization", AR: "التحسين"},
}

func labelsFor(locale assessment.Locale) labels {
	if l, ok := localized[locale]; ok {
		return l
	}
	return localized[assessment.LocaleEN]
}

const summaryTemplate = `# {{.L.Subject}}

{{.Greeting}}

**{{.L.ScoreLabel}}: {{.Score}}/100** · {{.L.TierLabel}}: {{.Tier}}
{{if .NotSaved}}
> {{.L.NotSaved}}
{{end}}
## {{.L.Recommendations}}
{{range .Recommendations}}
### {{.Title}} ({{.Priority}})

{{.Phase}}. {{.Description}}

- {{$.L.Timeline}}: {{.Timeline}}
- {{$.L.ROI}}: {{.ExpectedROI}}
- {{$.L.Investment}}: {{.InvestmentRange}}
{{end}}
## {{.L.Metrics}}

| | |
|---|---|
| {{.L.TimeSavings}} | {{.Metrics.TimeSavings.Display}} |
| {{.L.CostReduction}} | {{.Metrics.CostReduction.Display}} |
| {{.L.RevenueIncrease}} | {{.Metrics.RevenueIncrease.Display}} |
| {{.L.Satisfaction}} | {{.Metrics.CustomerSatisfactionPercent}}% |
| {{.L.Payback}} | {{.Metrics.PaybackPeriodMonths}} {{.L.Months}} |
`

var summary = template.Must(template.New("summary").Parse(summaryTemplate))

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

type localizedRecommendation struct {
	Title           string
	Priority        assessment.Priority
	Phase           string
	Description     string
	Timeline        string
	ExpectedROI     string
	InvestmentRange string
}

type summaryData struct {
	L               labels
	Greeting        string
	Score           int
	Tier            string
	NotSaved        bool
	Recommendations []localizedRecommendation
	Metrics         assessment.ProjectedMetrics
}

type renderedEmail struct {
	Subject string
	Text    string
	HTML    string
}

// renderSummary builds the e-mail in the contact's locale. The markdown is
// sent as the text part and rendered to HTML for the rich part.
func renderSummary(input *Input) (*renderedEmail, error) {
	locale := input.Contact.Locale
	l := labelsFor(locale)

	data := summaryData{
		L:        l,
		Greeting: fmt.Sprintf(l.Greeting, input.Contact.Name),
		Score:    input.ReadinessScore,
		Tier:     tierNames[input.Tier].In(locale),
		NotSaved: !input.LeadSaved,
		Metrics:  input.ProjectedMetrics,
	}
	if data.Tier == "" {
		data.Tier = string(input.Tier)
	}
	for _, rec := range input.Recommendations {
		data.Recommendations = append(data.Recommendations, localizedRecommendation{
			Title:           rec.Title.In(locale),
			Priority:        rec.Priority,
			Phase:           rec.Phase.In(locale),
			Description:     rec.Description.In(locale),
			Timeline:        rec.Timeline,
			ExpectedROI:     rec.ExpectedROI,
			InvestmentRange: rec.InvestmentRange,
		})
	}

	var md bytes.Buffer
	if err := summary.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}

	var body bytes.Buffer
	if err := markdown.Convert(md.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	dir := "ltr"
	if locale == assessment.LocaleAR {
		dir = "rtl"
	}
	html := fmt.Sprintf(`<div dir="%s" lang="%s">%s</div>`, dir, labelLang(locale), body.String())

	return &renderedEmail{
		Subject: l.Subject,
		Text:    md.String(),
		HTML:    html,
	}, nil
}

func labelLang(locale assessment.Locale) string {
	if locale == assessment.LocaleAR {
		return "ar"
	}
	return "en"
}

func renderSMS(input *Input) string {
	locale := input.Contact.Locale
	var top string
	for _, rec := range input.Recommendations {
		if rec.Priority == input.HighestPriority() {
			top = rec.Title.In(locale)
			break
		}
	}
	return fmt.Sprintf(labelsFor(locale).SMS, firstName(input.Contact.Name), input.ReadinessScore, top)
}

// renderOpsAlert keeps the subject ASCII; SNS rejects anything else there.
func renderOpsAlert(input *Input) (subject, message string) {
	c := input.Contact
	subject = fmt.Sprintf("Unsaved assessment lead (%d/100)", input.ReadinessScore)

	var b strings.Builder
	fmt.Fprintf(&b, "A completed assessment could not be stored. Follow up manually.\n\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\nCompany: %s\nLocale: %s\n", c.Name, c.Email, c.Phone, c.Company, c.Locale)
	if input.Response != nil {
		fmt.Fprintf(&b, "Industry: %s\nRevenue band: %s\n", input.Response.Industry, input.Response.MonthlyRevenueBand)
	}
	fmt.Fprintf(&b, "Score: %d (%s)\nTop priority: %s\n", input.ReadinessScore, input.Tier, input.HighestPriority())
	return subject, b.String()
}

func firstName(full string) string {
	if parts := strings.Fields(full); len(parts) > 0 {
		return parts[0]
	}
	return full
}
