package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_Scenarios(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name                 string
		input                AssessmentResponse
		score                int
		expectedTimeSavings  int64
		expectedCost         int64
		expectedRevenue      int64
		expectedSatisfaction int
		expectedPayback      int
	}{
		{
			name:                 "technology over 1m at full score",
			input:                technologyMaximum(),
			score:                100,
			expectedTimeSavings:  504000, // 1,200,000 * 0.30 * 1.4
			expectedCost:         420000,
			expectedRevenue:      336000,
			expectedSatisfaction: 95,
			expectedPayback:      1,
		},
		{
			name:                 "restaurant under 50k at 25",
			input:                restaurantMinimum(),
			score:                25,
			expectedTimeSavings:  2250, // 25,000 * 0.30 * 1.2 * 0.25
			expectedCost:         1875,
			expectedRevenue:      1500,
			expectedSatisfaction: 80,
			expectedPayback:      5, // 6 - 1.25 = 4.75
		},
		{
			name:                 "restaurant under 50k at 27",
			input:                restaurantMinimum(),
			score:                27,
			expectedTimeSavings:  2430,
			expectedCost:         2025,
			expectedRevenue:      1620,
			expectedSatisfaction: 80, // 80.4
			expectedPayback:      5,  // 4.65
		},
		{
			name:                 "payback half rounds up",
			input:                restaurantMinimum(),
			score:                10,
			expectedTimeSavings:  900,
			expectedCost:         750,
			expectedRevenue:      600,
			expectedSatisfaction: 77,
			expectedPayback:      6, // 5.5
		},
		{
			name:                 "zero score",
			input:                restaurantMinimum(),
			score:                0,
			expectedSatisfaction: 75,
			expectedPayback:      6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tables.Project(tt.input, tt.score)
			assert.Equal(t, tt.expectedTimeSavings, m.TimeSavings.Amount)
			assert.Equal(t, tt.expectedCost, m.CostReduction.Amount)
			assert.Equal(t, tt.expectedRevenue, m.RevenueIncrease.Amount)
			assert.Equal(t, tt.expectedSatisfaction, m.CustomerSatisfactionPercent)
			assert.Equal(t, tt.expectedPayback, m.PaybackPeriodMonths)
		})
	}
}

func TestProject_Formatting(t *testing.T) {
	m := DefaultTables().Project(technologyMaximum(), 100)

	assert.Equal(t, "SAR 504,000", m.TimeSavings.Display)
	assert.Equal(t, "SAR 420,000", m.CostReduction.Display)
	assert.Equal(t, "SAR 336,000", m.RevenueIncrease.Display)
	assert.Equal(t, "SAR", m.TimeSavings.Currency)
}

func TestProject_CustomCurrency(t *testing.T) {
	tables := DefaultTables().Merge(TableOverrides{Currency: "aed"})
	m := tables.Project(technologyMaximum(), 100)
	assert.Equal(t, "AED 504,000", m.TimeSavings.Display)
	assert.Equal(t, int64(504000), m.TimeSavings.Amount)
}

func TestProject_Bounds(t *testing.T) {
	tables := DefaultTables()
	for score := 0; score <= MaxScore; score++ {
		m := tables.Project(technologyMaximum(), score)
		assert.LessOrEqual(t, m.CustomerSatisfactionPercent, 98)
		assert.GreaterOrEqual(t, m.CustomerSatisfactionPercent, 75)
		assert.GreaterOrEqual(t, m.PaybackPeriodMonths, 1)
		assert.LessOrEqual(t, m.PaybackPeriodMonths, 6)
	}
}

func TestProject_UnknownValues(t *testing.T) {
	tables := DefaultTables()

	t.Run("unknown industry uses neutral multiplier", func(t *testing.T) {
		r := technologyMaximum()
		r.Industry = Industry("aerospace")
		m := tables.Project(r, 100)
		assert.Equal(t, int64(360000), m.TimeSavings.Amount)
	})

	t.Run("unknown band has no monetary impact", func(t *testing.T) {
		r := technologyMaximum()
		r.MonthlyRevenueBand = RevenueBand("billions")
		m := tables.Project(r, 100)
		assert.Zero(t, m.TimeSavings.Amount)
		assert.Equal(t, "SAR 0", m.TimeSavings.Display)
		assert.Equal(t, 95, m.CustomerSatisfactionPercent)
	})
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "SAR 0"},
		{999, "SAR 999"},
		{1000, "SAR 1,000"},
		{1200000, "SAR 1,200,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatMoney("SAR", tt.amount))
	}
}
