// internal/assessment/projection.go
package assessment

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const maxSatisfactionPercent = 98

var (
	hundred          = decimal.NewFromInt(100)
	satisfactionBase = decimal.NewFromInt(75)
	satisfactionStep = decimal.NewFromFloat(0.2)
	paybackBase      = decimal.NewFromInt(6)
	paybackStep      = decimal.NewFromFloat(0.05)
)

// Project estimates business impact from the firmographic answers and the score.
func (t Tables) Project(r AssessmentResponse, score int) ProjectedMetrics {
	base := decimal.NewFromInt(t.BaseRevenue[r.MonthlyRevenueBand])
	scaled := base.Mul(dec(t.multiplier(r.Industry))).
		Mul(decimal.NewFromInt(int64(score))).
		Div(hundred)

	s := decimal.NewFromInt(int64(score))

	satisfaction := satisfactionBase.Add(s.Mul(satisfactionStep)).Round(0).IntPart()
	if satisfaction > maxSatisfactionPercent {
		satisfaction = maxSatisfactionPercent
	}

	payback := paybackBase.Sub(s.Mul(paybackStep)).Round(0).IntPart()
	if payback < 1 {
		payback = 1
	}

	return ProjectedMetrics{
		TimeSavings:                 t.money(scaled.Mul(dec(t.TimeSavingsRate))),
		CostReduction:               t.money(scaled.Mul(dec(t.CostReductionRate))),
		RevenueIncrease:             t.money(scaled.Mul(dec(t.RevenueIncreaseRate))),
		CustomerSatisfactionPercent: int(satisfaction),
		PaybackPeriodMonths:         int(payback),
	}
}

func (t Tables) money(d decimal.Decimal) Money {
	amount := d.Round(0).IntPart()
	return Money{
		Amount:   amount,
		Currency: t.Currency,
		Display:  FormatMoney(t.Currency, amount),
	}
}

// FormatMoney renders an amount as "<currency> 1,234,567".
func FormatMoney(currency string, amount int64) string {
	return fmt.Sprintf("%s %s", currency, humanize.Comma(amount))
}
