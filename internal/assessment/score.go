// internal/assessment/score.go
package assessment

import "github.com/shopspring/decimal"

const MaxScore = 100

var half = decimal.NewFromFloat(0.5)

// Calculate maps a response to a readiness score in [0, 100] together with
// the contribution of each factor. Unknown bands and industries fall back to
// zero points and the default industry points respectively.
func (t Tables) Calculate(r AssessmentResponse) (int, ScoreBreakdown) {
	digital := dec(t.DigitalToolWeight).Mul(decimal.NewFromInt(int64(r.DigitalToolCount))).
		Add(dec(t.AutomationWeight).Mul(decimal.NewFromInt(int64(r.AutomationPercent)))).
		Add(dec(t.FamiliarityWeight).Mul(decimal.NewFromInt(int64(r.AIFamiliarity))))

	revenue := dec(t.RevenuePoints[r.MonthlyRevenueBand])
	industry := dec(t.industryPoints(r.Industry))

	solvable := 0
	seen := make(map[PainPoint]struct{}, len(r.PainPoints))
	for _, p := range r.PainPoints {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if t.aiSolvable(p) {
			solvable++
		}
	}
	pain := dec(t.PainPointWeight).Mul(decimal.NewFromInt(int64(solvable)))

	raw := digital.Add(revenue).Add(industry).Add(pain)

	breakdown := ScoreBreakdown{
		DigitalMaturity: digital.InexactFloat64(),
		Revenue:         revenue.InexactFloat64(),
		Industry:        industry.InexactFloat64(),
		PainPoints:      pain.InexactFloat64(),
		Raw:             raw.InexactFloat64(),
	}

	return clampScore(roundHalfDown(raw)), breakdown
}

// roundHalfDown rounds to the nearest integer; an exact half goes to the lower one.
func roundHalfDown(d decimal.Decimal) int64 {
	return d.Sub(half).Ceil().IntPart()
}

func clampScore(v int64) int {
	switch {
	case v > MaxScore:
		return MaxScore
	case v < 0:
		return 0
	default:
		return int(v)
	}
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
