// internal/assessment/tables.go
package assessment

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTables = errors.New("INVALID_SCORING_TABLES")

// Tables holds every tuning constant used by the scoring pipeline.
type Tables struct {
	DigitalToolWeight   float64
	AutomationWeight    float64
	FamiliarityWeight   float64
	PainPointWeight     float64
	RevenuePoints       map[RevenueBand]float64
	IndustryPoints      map[Industry]float64
	DefaultIndustry     float64
	AISolvable          []PainPoint
	BaseRevenue         map[RevenueBand]int64
	IndustryMultipliers map[Industry]float64
	DefaultMultiplier   float64
	TimeSavingsRate     float64
	CostReductionRate   float64
	RevenueIncreaseRate float64
	Currency            string
}

func DefaultTables() Tables {
	return Tables{
		DigitalToolWeight: 2,
		AutomationWeight:  0.2,
		FamiliarityWeight: 6,
		PainPointWeight:   2.5,
		RevenuePoints: map[RevenueBand]float64{
			RevenueUnder50K:   5,
			Revenue50KTo100K:  10,
			Revenue100KTo250K: 15,
			Revenue250KTo500K: 20,
			Revenue500KTo1M:   25,
			RevenueOver1M:     30,
		},
		IndustryPoints: map[Industry]float64{
			IndustryTechnology:    20,
			IndustryFinance:       18,
			IndustryRetail:        15,
			IndustryHealthcare:    14,
			IndustryLogistics:     14,
			IndustryConsulting:    13,
			IndustryRestaurant:    12,
			IndustryRealEstate:    11,
			IndustryManufacturing: 10,
			IndustryEducation:     8,
		},
		DefaultIndustry: 5,
		AISolvable:      []PainPoint{PainCustomerService, PainStaffEfficiency, PainMarketing, PainInventory},
		BaseRevenue: map[RevenueBand]int64{
			RevenueUnder50K:   25000,
			Revenue50KTo100K:  75000,
			Revenue100KTo250K: 175000,
			Revenue250KTo500K: 375000,
			Revenue500KTo1M:   750000,
			RevenueOver1M:     1200000,
		},
		IndustryMultipliers: map[Industry]float64{
			IndustryTechnology:    1.4,
			IndustryFinance:       1.3,
			IndustryRetail:        1.2,
			IndustryRestaurant:    1.2,
			IndustryHealthcare:    1.15,
			IndustryLogistics:     1.1,
			IndustryConsulting:    1.1,
			IndustryRealEstate:    1.0,
			IndustryManufacturing: 1.0,
			IndustryEducation:     0.9,
		},
		DefaultMultiplier:   1.0,
		TimeSavingsRate:     0.30,
		CostReductionRate:   0.25,
		RevenueIncreaseRate: 0.20,
		Currency:            "SAR",
	}
}

// TableOverrides is the configuration shape of Tables. Nil scalars, empty
// strings and missing keys keep the defaults; a set pointer applies even when
// it points at zero.
type TableOverrides struct {
	Currency            string             `mapstructure:"currency"`
	DigitalToolWeight   *float64           `mapstructure:"digital_tool_weight"`
	AutomationWeight    *float64           `mapstructure:"automation_weight"`
	FamiliarityWeight   *float64           `mapstructure:"familiarity_weight"`
	PainPointWeight     *float64           `mapstructure:"pain_point_weight"`
	RevenuePoints       map[string]float64 `mapstructure:"revenue_points"`
	IndustryPoints      map[string]float64 `mapstructure:"industry_points"`
	DefaultIndustry     *float64           `mapstructure:"default_industry_points"`
	AISolvable          []string           `mapstructure:"ai_solvable_pain_points"`
	BaseRevenue         map[string]int64   `mapstructure:"base_revenue"`
	IndustryMultipliers map[string]float64 `mapstructure:"industry_multipliers"`
	DefaultMultiplier   *float64           `mapstructure:"default_multiplier"`
	TimeSavingsRate     *float64           `mapstructure:"time_savings_rate"`
	CostReductionRate   *float64           `mapstructure:"cost_reduction_rate"`
	RevenueIncreaseRate *float64           `mapstructure:"revenue_increase_rate"`
}

// Merge returns a copy of t with the overrides applied.
func (t Tables) Merge(o TableOverrides) Tables {
	out := t.clone()
	if o.Currency != "" {
		out.Currency = strings.ToUpper(o.Currency)
	}
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{o.DigitalToolWeight, &out.DigitalToolWeight},
		{o.AutomationWeight, &out.AutomationWeight},
		{o.FamiliarityWeight, &out.FamiliarityWeight},
		{o.PainPointWeight, &out.PainPointWeight},
		{o.DefaultIndustry, &out.DefaultIndustry},
		{o.DefaultMultiplier, &out.DefaultMultiplier},
		{o.TimeSavingsRate, &out.TimeSavingsRate},
		{o.CostReductionRate, &out.CostReductionRate},
		{o.RevenueIncreaseRate, &out.RevenueIncreaseRate},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	for k, v := range o.RevenuePoints {
		out.RevenuePoints[RevenueBand(k)] = v
	}
	for k, v := range o.IndustryPoints {
		out.IndustryPoints[Industry(k)] = v
	}
	for k, v := range o.BaseRevenue {
		out.BaseRevenue[RevenueBand(k)] = v
	}
	for k, v := range o.IndustryMultipliers {
		out.IndustryMultipliers[Industry(k)] = v
	}
	if len(o.AISolvable) > 0 {
		out.AISolvable = make([]PainPoint, 0, len(o.AISolvable))
		for _, p := range o.AISolvable {
			out.AISolvable = append(out.AISolvable, PainPoint(p))
		}
	}
	return out
}

// Validate rejects tables that would break the score bounds or the
// monotonicity of the revenue contribution.
func (t Tables) Validate() error {
	for name, w := range map[string]float64{
		"digitalToolWeight": t.DigitalToolWeight,
		"automationWeight":  t.AutomationWeight,
		"familiarityWeight": t.FamiliarityWeight,
		"painPointWeight":   t.PainPointWeight,
		"defaultIndustry":   t.DefaultIndustry,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidTables, name)
		}
	}

	prev := -1.0
	for _, band := range RevenueBands {
		pts, ok := t.RevenuePoints[band]
		if !ok {
			return fmt.Errorf("%w: revenue points missing for band %s", ErrInvalidTables, band)
		}
		if pts < prev {
			return fmt.Errorf("%w: revenue points must not decrease (band %s)", ErrInvalidTables, band)
		}
		prev = pts
	}

	for industry, pts := range t.IndustryPoints {
		if pts < 0 {
			return fmt.Errorf("%w: industry points for %s must not be negative", ErrInvalidTables, industry)
		}
	}

	for _, band := range RevenueBands {
		if t.BaseRevenue[band] <= 0 {
			return fmt.Errorf("%w: base revenue missing for band %s", ErrInvalidTables, band)
		}
	}

	for industry, m := range t.IndustryMultipliers {
		if m < 0.9 || m > 1.5 {
			return fmt.Errorf("%w: multiplier for %s must be within [0.9, 1.5], got %v", ErrInvalidTables, industry, m)
		}
	}
	if t.DefaultMultiplier < 0.9 || t.DefaultMultiplier > 1.5 {
		return fmt.Errorf("%w: default multiplier must be within [0.9, 1.5]", ErrInvalidTables)
	}

	for name, r := range map[string]float64{
		"timeSavingsRate":     t.TimeSavingsRate,
		"costReductionRate":   t.CostReductionRate,
		"revenueIncreaseRate": t.RevenueIncreaseRate,
	} {
		if r <= 0 || r > 1 {
			return fmt.Errorf("%w: %s must be within (0, 1]", ErrInvalidTables, name)
		}
	}

	if strings.TrimSpace(t.Currency) == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidTables)
	}
	return nil
}

func (t Tables) industryPoints(i Industry) float64 {
	if pts, ok := t.IndustryPoints[i]; ok {
		return pts
	}
	return t.DefaultIndustry
}

func (t Tables) multiplier(i Industry) float64 {
	if m, ok := t.IndustryMultipliers[i]; ok {
		return m
	}
	return t.DefaultMultiplier
}

func (t Tables) aiSolvable(p PainPoint) bool {
	for _, s := range t.AISolvable {
		if s == p {
			return true
		}
	}
	return false
}

func (t Tables) clone() Tables {
	out := t
	out.RevenuePoints = make(map[RevenueBand]float64, len(t.RevenuePoints))
	for k, v := range t.RevenuePoints {
		out.RevenuePoints[k] = v
	}
	out.IndustryPoints = make(map[Industry]float64, len(t.IndustryPoints))
	for k, v := range t.IndustryPoints {
		out.IndustryPoints[k] = v
	}
	out.BaseRevenue = make(map[RevenueBand]int64, len(t.BaseRevenue))
	for k, v := range t.BaseRevenue {
		out.BaseRevenue[k] = v
	}
	out.IndustryMultipliers = make(map[Industry]float64, len(t.IndustryMultipliers))
	for k, v := range t.IndustryMultipliers {
		out.IndustryMultipliers[k] = v
	}
	out.AISolvable = append([]PainPoint(nil), t.AISolvable...)
	return out
}
