package assessment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullCollector() *Collector {
	return NewCollector().
		SetBusinessBasics(BusinessBasics{
			Industry:           IndustryRestaurant,
			MonthlyRevenueBand: RevenueUnder50K,
			EmployeeCountBand:  Employees1To5,
		}).
		SetDigitalMaturity(DigitalMaturity{
			DigitalToolCount:  1,
			AutomationPercent: 0,
			AIFamiliarity:     1,
		}).
		SetChallenges(Challenges{
			PainPoints:              []PainPoint{PainMarketing, PainCustomerService, PainMarketing},
			CustomerServiceChannels: []Channel{ChannelWhatsApp, ChannelPhone},
		})
}

func fieldNames(err error) []string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	out := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		out[i] = f.Field
	}
	return out
}

func TestCollector_CompleteResponse(t *testing.T) {
	c := fullCollector()
	require.True(t, c.Complete())

	r, err := c.Response()
	require.NoError(t, err)

	assert.Equal(t, IndustryRestaurant, r.Industry)
	assert.Equal(t, RevenueUnder50K, r.MonthlyRevenueBand)
	assert.Equal(t, Employees1To5, r.EmployeeCountBand)
	assert.Equal(t, []PainPoint{PainCustomerService, PainMarketing}, r.PainPoints)
	assert.Equal(t, []Channel{ChannelPhone, ChannelWhatsApp}, r.CustomerServiceChannels)
}

func TestCollector_StepsInAnyOrder(t *testing.T) {
	c := NewCollector().
		SetChallenges(Challenges{}).
		SetDigitalMaturity(DigitalMaturity{DigitalToolCount: 4, AutomationPercent: 50, AIFamiliarity: 3}).
		SetBusinessBasics(BusinessBasics{Industry: IndustryRetail, MonthlyRevenueBand: RevenueOver1M, EmployeeCountBand: Employees51To200})

	r, err := c.Response()
	require.NoError(t, err)
	assert.Equal(t, 4, r.DigitalToolCount)
	assert.NotNil(t, r.PainPoints)
	assert.Empty(t, r.PainPoints)
}

func TestCollector_LaterStepReplacesEarlier(t *testing.T) {
	c := fullCollector().SetDigitalMaturity(DigitalMaturity{DigitalToolCount: 9, AutomationPercent: 90, AIFamiliarity: 5})

	r, err := c.Response()
	require.NoError(t, err)
	assert.Equal(t, 9, r.DigitalToolCount)
	assert.Equal(t, 90, r.AutomationPercent)
	assert.Equal(t, 5, r.AIFamiliarity)
}

func TestCollector_ChallengesStepIsOptional(t *testing.T) {
	c := NewCollector().
		SetBusinessBasics(BusinessBasics{Industry: IndustryFinance, MonthlyRevenueBand: Revenue500KTo1M, EmployeeCountBand: Employees21To50}).
		SetDigitalMaturity(DigitalMaturity{DigitalToolCount: 5, AutomationPercent: 10, AIFamiliarity: 2})

	r, err := c.Response()
	require.NoError(t, err)
	assert.Empty(t, r.PainPoints)
	assert.Empty(t, r.CustomerServiceChannels)
}

func TestCollector_SetChallengesCopiesInput(t *testing.T) {
	pains := []PainPoint{PainInventory}
	c := fullCollector().SetChallenges(Challenges{PainPoints: pains})
	pains[0] = PainCompetition

	r, err := c.Response()
	require.NoError(t, err)
	assert.Equal(t, []PainPoint{PainInventory}, r.PainPoints)
}

func TestCollector_Incomplete(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *Collector
		expected []string
	}{
		{
			name:  "nothing answered",
			build: NewCollector,
			expected: []string{
				"industry", "monthlyRevenueBand", "employeeCountBand",
				"digitalToolCount", "automationPercent", "aiFamiliarity",
			},
		},
		{
			name: "missing maturity step",
			build: func() *Collector {
				return NewCollector().SetBusinessBasics(BusinessBasics{
					Industry: IndustryRetail, MonthlyRevenueBand: RevenueUnder50K, EmployeeCountBand: Employees1To5,
				})
			},
			expected: []string{"digitalToolCount", "automationPercent", "aiFamiliarity"},
		},
		{
			name: "blank industry",
			build: func() *Collector {
				return fullCollector().SetBusinessBasics(BusinessBasics{
					Industry: "  ", MonthlyRevenueBand: RevenueUnder50K, EmployeeCountBand: Employees1To5,
				})
			},
			expected: []string{"industry"},
		},
		{
			name: "out of range maturity answers",
			build: func() *Collector {
				return fullCollector().SetDigitalMaturity(DigitalMaturity{
					DigitalToolCount: 0, AutomationPercent: 101, AIFamiliarity: 6,
				})
			},
			expected: []string{"digitalToolCount", "automationPercent", "aiFamiliarity"},
		},
		{
			name: "negative automation",
			build: func() *Collector {
				return fullCollector().SetDigitalMaturity(DigitalMaturity{
					DigitalToolCount: 10, AutomationPercent: -1, AIFamiliarity: 5,
				})
			},
			expected: []string{"automationPercent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.build()
			assert.False(t, c.Complete())

			_, err := c.Response()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIncompleteResponse)
			assert.Equal(t, tt.expected, fieldNames(err))
		})
	}
}

func TestCollector_UnknownEnumsAccepted(t *testing.T) {
	c := fullCollector().SetBusinessBasics(BusinessBasics{
		Industry:           Industry("aerospace"),
		MonthlyRevenueBand: RevenueBand("billions"),
		EmployeeCountBand:  EmployeeBand("thousands"),
	})

	r, err := c.Response()
	require.NoError(t, err)
	assert.Equal(t, Industry("aerospace"), r.Industry)
}

func TestCollector_Contact(t *testing.T) {
	c := fullCollector()
	_, ok := c.Contact()
	assert.False(t, ok)

	c.SetContact(ContactInfo{Name: "Sara", Email: "sara@example.com", Locale: LocaleAR})
	contact, ok := c.Contact()
	require.True(t, ok)
	assert.Equal(t, "sara@example.com", contact.Email)
	assert.Equal(t, LocaleAR, contact.Locale)
}

func TestValidationError_Messages(t *testing.T) {
	_, err := fullCollector().SetDigitalMaturity(DigitalMaturity{DigitalToolCount: 11, AIFamiliarity: 1}).Response()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"digitalToolCount: must be between 1 and 10, got 11"}, verr.Messages())
	assert.Contains(t, err.Error(), "ASSESSMENT_VALIDATION_FAILED")
}
