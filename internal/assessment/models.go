// internal/assessment/models.go
package assessment

import (
	"sort"
	"time"
)

type Industry string

const (
	IndustryRestaurant    Industry = "restaurant"
	IndustryRetail        Industry = "retail"
	IndustryLogistics     Industry = "logistics"
	IndustryHealthcare    Industry = "healthcare"
	IndustryRealEstate    Industry = "real-estate"
	IndustryConsulting    Industry = "consulting"
	IndustryManufacturing Industry = "manufacturing"
	IndustryTechnology    Industry = "technology"
	IndustryFinance       Industry = "finance"
	IndustryEducation     Industry = "education"
)

var Industries = []Industry{
	IndustryRestaurant, IndustryRetail, IndustryLogistics, IndustryHealthcare, IndustryRealEstate,
	IndustryConsulting, IndustryManufacturing, IndustryTechnology, IndustryFinance, IndustryEducation,
}

// RevenueBand is a monthly revenue bucket in the local currency.
type RevenueBand string

const (
	RevenueUnder50K   RevenueBand = "under_50k"
	Revenue50KTo100K  RevenueBand = "50k_100k"
	Revenue100KTo250K RevenueBand = "100k_250k"
	Revenue250KTo500K RevenueBand = "250k_500k"
	Revenue500KTo1M   RevenueBand = "500k_1m"
	RevenueOver1M     RevenueBand = "over_1m"
)

// RevenueBands is ordered from lowest to highest revenue.
var RevenueBands = []RevenueBand{
	RevenueUnder50K, Revenue50KTo100K, Revenue100KTo250K, Revenue250KTo500K, Revenue500KTo1M, RevenueOver1M,
}

type EmployeeBand string

const (
	Employees1To5    EmployeeBand = "1_5"
	Employees6To20   EmployeeBand = "6_20"
	Employees21To50  EmployeeBand = "21_50"
	Employees51To200 EmployeeBand = "51_200"
	EmployeesOver200 EmployeeBand = "over_200"
)

var EmployeeBands = []EmployeeBand{
	Employees1To5, Employees6To20, Employees21To50, Employees51To200, EmployeesOver200,
}

type PainPoint string

const (
	PainCustomerService  PainPoint = "customer_service"
	PainInventory        PainPoint = "inventory"
	PainMarketing        PainPoint = "marketing"
	PainStaffEfficiency  PainPoint = "staff_efficiency"
	PainCostControl      PainPoint = "cost_control"
	PainLanguageBarriers PainPoint = "language_barriers"
	PainCompetition      PainPoint = "competition"
	PainTechnology       PainPoint = "technology"
)

var PainPoints = []PainPoint{
	PainCustomerService, PainInventory, PainMarketing, PainStaffEfficiency,
	PainCostControl, PainLanguageBarriers, PainCompetition, PainTechnology,
}

type Channel string

const (
	ChannelPhone       Channel = "phone"
	ChannelWhatsApp    Channel = "whatsapp"
	ChannelEmail       Channel = "email"
	ChannelSocialMedia Channel = "social_media"
	ChannelInPerson    Channel = "in_person"
	ChannelWebsiteChat Channel = "website_chat"
)

var Channels = []Channel{
	ChannelPhone, ChannelWhatsApp, ChannelEmail, ChannelSocialMedia, ChannelInPerson, ChannelWebsiteChat,
}

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

// AssessmentResponse is the complete set of answers submitted by a prospect.
// PainPoints and CustomerServiceChannels are sets; the collector removes duplicates.
type AssessmentResponse struct {
	Industry                Industry     `json:"industry" yaml:"industry"`
	MonthlyRevenueBand      RevenueBand  `json:"monthlyRevenueBand" yaml:"monthlyRevenueBand"`
	EmployeeCountBand       EmployeeBand `json:"employeeCountBand" yaml:"employeeCountBand"`
	DigitalToolCount        int          `json:"digitalToolCount" yaml:"digitalToolCount"`
	AutomationPercent       int          `json:"automationPercent" yaml:"automationPercent"`
	AIFamiliarity           int          `json:"aiFamiliarity" yaml:"aiFamiliarity"`
	PainPoints              []PainPoint  `json:"painPoints" yaml:"painPoints"`
	CustomerServiceChannels []Channel    `json:"customerServiceChannels" yaml:"customerServiceChannels"`
}

func (r AssessmentResponse) HasPainPoint(p PainPoint) bool {
	for _, existing := range r.PainPoints {
		if existing == p {
			return true
		}
	}
	return false
}

// Normalized returns a copy with sorted, de-duplicated sets.
func (r AssessmentResponse) Normalized() AssessmentResponse {
	out := r
	out.PainPoints = uniqueSorted(r.PainPoints)
	out.CustomerServiceChannels = uniqueSorted(r.CustomerServiceChannels)
	return out
}

func uniqueSorted[T ~string](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type ContactInfo struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone,omitempty" yaml:"phone"`
	Company string `json:"company,omitempty" yaml:"company"`
	Locale  Locale `json:"locale,omitempty" yaml:"locale"`
}

// LocalizedText is an English/Arabic pair. Locale selection happens in presentation code.
type LocalizedText struct {
	EN string `json:"en" yaml:"en"`
	AR string `json:"ar" yaml:"ar"`
}

func (t LocalizedText) In(locale Locale) string {
	if locale == LocaleAR && t.AR != "" {
		return t.AR
	}
	return t.EN
}

type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank orders priorities; lower is more pressing.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

type Recommendation struct {
	Priority        Priority        `json:"priority"`
	Phase           LocalizedText   `json:"phase"`
	Title           LocalizedText   `json:"title"`
	Description     LocalizedText   `json:"description"`
	Timeline        string          `json:"timeline"`
	ExpectedROI     string          `json:"expectedROI"`
	InvestmentRange string          `json:"investmentRange"`
	Features        []LocalizedText `json:"features,omitempty"`
}

func (r Recommendation) clone() Recommendation {
	out := r
	if r.Features != nil {
		out.Features = append([]LocalizedText(nil), r.Features...)
	}
	return out
}

// Money keeps the raw amount next to its display form.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Display  string `json:"display"`
}

type ProjectedMetrics struct {
	TimeSavings                 Money `json:"timeSavings"`
	CostReduction               Money `json:"costReduction"`
	RevenueIncrease             Money `json:"revenueIncrease"`
	CustomerSatisfactionPercent int   `json:"customerSatisfactionPercent"`
	PaybackPeriodMonths         int   `json:"paybackPeriodMonths"`
}

type Tier string

const (
	TierFoundation     Tier = "foundation"
	TierImplementation Tier = "implementation"
	TierOptimization   Tier = "optimization"
)

// ScoreBreakdown holds each contribution before rounding and clamping.
type ScoreBreakdown struct {
	DigitalMaturity float64 `json:"digitalMaturity"`
	Revenue         float64 `json:"revenue"`
	Industry        float64 `json:"industry"`
	PainPoints      float64 `json:"painPoints"`
	Raw             float64 `json:"raw"`
}

// ScoreResult is produced once per submission and never modified afterwards.
type ScoreResult struct {
	ReadinessScore   int              `json:"readinessScore"`
	Tier             Tier             `json:"tier"`
	Breakdown        ScoreBreakdown   `json:"breakdown"`
	Recommendations  []Recommendation `json:"recommendations"`
	ProjectedMetrics ProjectedMetrics `json:"projectedMetrics"`
	CalculatedAt     time.Time        `json:"calculatedAt"`
}

// HighestPriority returns the most pressing priority among the recommendations.
func (r ScoreResult) HighestPriority() Priority {
	best := PriorityLow
	for _, rec := range r.Recommendations {
		if rec.Priority.Rank() < best.Rank() {
			best = rec.Priority
		}
	}
	return best
}
