// internal/assessment/recommend.go
package assessment

const (
	implementationThreshold = 30
	optimizationThreshold   = 60
)

// Rule appends at most one recommendation when its guard matches.
type Rule struct {
	Name  string
	Apply func(r AssessmentResponse, score int) (Recommendation, bool)
}

// DefaultRules returns the built-in rules in evaluation order. The tier rule
// always fires, so the generated list is never empty.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "score-tier", Apply: tierRule},
		{Name: "restaurant", Apply: restaurantRule},
		{Name: "customer-service", Apply: customerServiceRule},
	}
}

// TierFor maps a score to its band: [0,30), [30,60), [60,100].
func TierFor(score int) Tier {
	switch {
	case score < implementationThreshold:
		return TierFoundation
	case score < optimizationThreshold:
		return TierImplementation
	default:
		return TierOptimization
	}
}

// Recommend runs the rules in order. Output keeps rule order, with no
// de-duplication or re-ranking.
func Recommend(r AssessmentResponse, score int, rules []Rule) []Recommendation {
	out := make([]Recommendation, 0, len(rules))
	for _, rule := range rules {
		if rule.Apply == nil {
			continue
		}
		if rec, ok := rule.Apply(r, score); ok {
			out = append(out, rec.clone())
		}
	}
	return out
}

func tierRule(_ AssessmentResponse, score int) (Recommendation, bool) {
	switch TierFor(score) {
	case TierFoundation:
		return foundationBuilding, true
	case TierImplementation:
		return aiImplementation, true
	default:
		return aiOptimization, true
	}
}

func restaurantRule(r AssessmentResponse, _ int) (Recommendation, bool) {
	if r.Industry != IndustryRestaurant {
		return Recommendation{}, false
	}
	return restaurantSolutions, true
}

func customerServiceRule(r AssessmentResponse, _ int) (Recommendation, bool) {
	if !r.HasPainPoint(PainCustomerService) {
		return Recommendation{}, false
	}
	return customerServiceAutomation, true
}

var foundationBuilding = Recommendation{
	Priority: PriorityUrgent,
	Phase:    LocalizedText{EN: "Phase 1: Foundation", AR: "المرحلة 1: التأسيس"},
	Title:    LocalizedText{EN: "Foundation Building", AR: "بناء الأساس"},
	Description: LocalizedText{
		EN: "Digitize core operations and organize your data before adopting AI tools.",
		AR: "رقمنة العمليات الأساسية وتنظيم بياناتك قبل اعتماد أدوات الذكاء الاصطناعي.",
	},
	Timeline:        "3-6 months",
	ExpectedROI:     "150-200%",
	InvestmentRange: "SAR 15,000 - 35,000",
}

var aiImplementation = Recommendation{
	Priority: PriorityHigh,
	Phase:    LocalizedText{EN: "Phase 2: Implementation", AR: "المرحلة 2: التنفيذ"},
	Title:    LocalizedText{EN: "AI Implementation", AR: "تطبيق الذكاء الاصطناعي"},
	Description: LocalizedText{
		EN: "Deploy targeted AI solutions in the workflows with the highest impact.",
		AR: "نشر حلول ذكاء اصطناعي موجهة في سير العمل الأعلى تأثيراً.",
	},
	Timeline:        "2-4 months",
	ExpectedROI:     "200-300%",
	InvestmentRange: "SAR 35,000 - 75,000",
}

var aiOptimization = Recommendation{
	Priority: PriorityMedium,
	Phase:    LocalizedText{EN: "Phase 3: Optimization", AR: "المرحلة 3: التحسين"},
	Title:    LocalizedText{EN: "AI Optimization", AR: "تحسين الذكاء الاصطناعي"},
	Description: LocalizedText{
		EN: "Scale and fine-tune existing automation with advanced analytics and predictive models.",
		AR: "توسيع الأتمتة الحالية وضبطها باستخدام التحليلات المتقدمة والنماذج التنبؤية.",
	},
	Timeline:        "1-3 months",
	ExpectedROI:     "300-400%",
	InvestmentRange: "SAR 50,000 - 150,000",
}

var restaurantSolutions = Recommendation{
	Priority: PriorityHigh,
	Phase:    LocalizedText{EN: "Industry Solution", AR: "حل قطاعي"},
	Title:    LocalizedText{EN: "Restaurant AI Solutions", AR: "حلول الذكاء الاصطناعي للمطاعم"},
	Description: LocalizedText{
		EN: "Specialized AI tools for ordering, reservations and kitchen operations.",
		AR: "أدوات ذكاء اصطناعي متخصصة للطلبات والحجوزات وعمليات المطبخ.",
	},
	Timeline:        "1-2 months",
	ExpectedROI:     "250-350%",
	InvestmentRange: "SAR 20,000 - 45,000",
	Features: []LocalizedText{
		{EN: "AI ordering assistant on WhatsApp", AR: "مساعد طلبات ذكي عبر واتساب"},
		{EN: "Smart reservation management", AR: "إدارة ذكية للحجوزات"},
		{EN: "Demand forecasting for inventory", AR: "التنبؤ بالطلب لإدارة المخزون"},
		{EN: "Automated replies to customer reviews", AR: "الرد الآلي على تقييمات العملاء"},
	},
}

var customerServiceAutomation = Recommendation{
	Priority: PriorityUrgent,
	Phase:    LocalizedText{EN: "Quick Win", AR: "مكسب سريع"},
	Title:    LocalizedText{EN: "AI Customer Service Automation", AR: "أتمتة خدمة العملاء بالذكاء الاصطناعي"},
	Description: LocalizedText{
		EN: "A bilingual AI assistant that answers customer inquiries around the clock.",
		AR: "مساعد ذكي ثنائي اللغة يجيب على استفسارات العملاء على مدار الساعة.",
	},
	Timeline:        "2-4 weeks",
	ExpectedROI:     "300-500%",
	InvestmentRange: "SAR 10,000 - 25,000",
	Features: []LocalizedText{
		{EN: "24/7 chat support in Arabic and English", AR: "دعم محادثة على مدار الساعة بالعربية والإنجليزية"},
		{EN: "WhatsApp Business integration", AR: "التكامل مع واتساب للأعمال"},
		{EN: "Automatic ticket routing", AR: "توجيه تلقائي للتذاكر"},
		{EN: "Customer sentiment analysis", AR: "تحليل مشاعر العملاء"},
	},
}
