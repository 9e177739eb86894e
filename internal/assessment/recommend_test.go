package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title.EN
	}
	return out
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score    int
		expected Tier
	}{
		{0, TierFoundation},
		{29, TierFoundation},
		{30, TierImplementation},
		{59, TierImplementation},
		{60, TierOptimization},
		{100, TierOptimization},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TierFor(tt.score), "score=%d", tt.score)
	}
}

func TestRecommend_Scenarios(t *testing.T) {
	tests := []struct {
		name               string
		input              AssessmentResponse
		score              int
		expectedTitles     []string
		expectedPriorities []Priority
	}{
		{
			name:               "restaurant minimum gets tier and industry recommendation",
			input:              restaurantMinimum(),
			score:              25,
			expectedTitles:     []string{"Foundation Building", "Restaurant AI Solutions"},
			expectedPriorities: []Priority{PriorityUrgent, PriorityHigh},
		},
		{
			name:           "restaurant with customer service pain point gets three",
			input:          withPainPoints(restaurantMinimum(), PainCustomerService),
			score:          27,
			expectedTitles: []string{"Foundation Building", "Restaurant AI Solutions", "AI Customer Service Automation"},
			expectedPriorities: []Priority{
				PriorityUrgent, PriorityHigh, PriorityUrgent,
			},
		},
		{
			name:               "technology maximum gets optimization and customer service",
			input:              technologyMaximum(),
			score:              100,
			expectedTitles:     []string{"AI Optimization", "AI Customer Service Automation"},
			expectedPriorities: []Priority{PriorityMedium, PriorityUrgent},
		},
		{
			name: "mid tier without conditional rules",
			input: AssessmentResponse{
				Industry:   IndustryConsulting,
				PainPoints: []PainPoint{PainCostControl},
			},
			score:              45,
			expectedTitles:     []string{"AI Implementation"},
			expectedPriorities: []Priority{PriorityHigh},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Recommend(tt.input, tt.score, DefaultRules())
			assert.Equal(t, tt.expectedTitles, titles(recs))

			priorities := make([]Priority, len(recs))
			for i, r := range recs {
				priorities[i] = r.Priority
			}
			assert.Equal(t, tt.expectedPriorities, priorities)
		})
	}
}

func TestRecommend_NeverEmpty(t *testing.T) {
	for score := 0; score <= MaxScore; score++ {
		recs := Recommend(AssessmentResponse{}, score, DefaultRules())
		require.NotEmpty(t, recs, "score=%d", score)
	}
}

func TestRecommend_ConditionalRulesIgnoreScore(t *testing.T) {
	input := withPainPoints(restaurantMinimum(), PainCustomerService)
	for _, score := range []int{0, 45, 100} {
		recs := Recommend(input, score, DefaultRules())
		assert.Len(t, recs, 3, "score=%d", score)
	}
}

func TestRecommend_NonSolvablePainPointStillTriggersNothingExtra(t *testing.T) {
	input := withPainPoints(restaurantMinimum(), PainCompetition)
	recs := Recommend(input, 25, DefaultRules())
	assert.Equal(t, []string{"Foundation Building", "Restaurant AI Solutions"}, titles(recs))
}

func TestRecommend_ExtraRulesAppendInOrder(t *testing.T) {
	languageRule := Rule{
		Name: "language-barriers",
		Apply: func(r AssessmentResponse, _ int) (Recommendation, bool) {
			if !r.HasPainPoint(PainLanguageBarriers) {
				return Recommendation{}, false
			}
			return Recommendation{
				Priority: PriorityLow,
				Title:    LocalizedText{EN: "Bilingual Content Assistant", AR: "مساعد المحتوى ثنائي اللغة"},
			}, true
		},
	}
	rules := append(DefaultRules(), languageRule, Rule{Name: "empty"})

	input := withPainPoints(restaurantMinimum(), PainCustomerService, PainLanguageBarriers)
	recs := Recommend(input, 27, rules)

	require.Len(t, recs, 4)
	assert.Equal(t, "Bilingual Content Assistant", recs[3].Title.EN)
	assert.Equal(t, PriorityLow, recs[3].Priority)
}

func TestRecommend_ReturnsIndependentCopies(t *testing.T) {
	first := Recommend(restaurantMinimum(), 25, DefaultRules())
	require.NotEmpty(t, first[1].Features)
	first[1].Features[0] = LocalizedText{EN: "changed"}

	second := Recommend(restaurantMinimum(), 25, DefaultRules())
	assert.Equal(t, "AI ordering assistant on WhatsApp", second[1].Features[0].EN)
}

func TestRecommend_BilingualText(t *testing.T) {
	recs := Recommend(withPainPoints(restaurantMinimum(), PainCustomerService), 25, DefaultRules())
	for _, r := range recs {
		assert.NotEmpty(t, r.Title.EN)
		assert.NotEmpty(t, r.Title.AR)
		assert.NotEmpty(t, r.Description.AR)
		assert.NotEmpty(t, r.Phase.AR)
		for _, f := range r.Features {
			assert.NotEmpty(t, f.AR)
		}
	}
	assert.Equal(t, "بناء الأساس", recs[0].Title.In(LocaleAR))
	assert.Equal(t, "Foundation Building", recs[0].Title.In(LocaleEN))
	assert.Equal(t, "Foundation Building", recs[0].Title.In(Locale("fr")))
}

func TestScoreResult_HighestPriority(t *testing.T) {
	tests := []struct {
		name     string
		recs     []Recommendation
		expected Priority
	}{
		{name: "empty defaults to low", recs: nil, expected: PriorityLow},
		{name: "medium and urgent", recs: []Recommendation{{Priority: PriorityMedium}, {Priority: PriorityUrgent}}, expected: PriorityUrgent},
		{name: "high only", recs: []Recommendation{{Priority: PriorityHigh}}, expected: PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScoreResult{Recommendations: tt.recs}.HighestPriority())
		})
	}
}
