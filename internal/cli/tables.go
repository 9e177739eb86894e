// internal/cli/tables.go
package cli

import (
	"readiness-workers/internal/assessment"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type tablesView struct {
	Version string `yaml:"version"`
	Weights struct {
		DigitalTool float64 `yaml:"digital_tool"`
		Automation  float64 `yaml:"automation"`
		Familiarity float64 `yaml:"familiarity"`
		PainPoint   float64 `yaml:"pain_point"`
	} `yaml:"weights"`
	RevenuePoints         map[string]float64 `yaml:"revenue_points"`
	IndustryPoints        map[string]float64 `yaml:"industry_points"`
	DefaultIndustryPoints float64            `yaml:"default_industry_points"`
	AISolvable            []string           `yaml:"ai_solvable_pain_points"`
	BaseRevenue           map[string]int64   `yaml:"base_revenue"`
	IndustryMultipliers   map[string]float64 `yaml:"industry_multipliers"`
	DefaultMultiplier     float64            `yaml:"default_multiplier"`
	Rates                 struct {
		TimeSavings     float64 `yaml:"time_savings"`
		CostReduction   float64 `yaml:"cost_reduction"`
		RevenueIncrease float64 `yaml:"revenue_increase"`
	} `yaml:"rates"`
	Currency string `yaml:"currency"`
}

func newTablesView(t assessment.Tables) tablesView {
	var v tablesView
	v.Version = t.Version()
	v.Weights.DigitalTool = t.DigitalToolWeight
	v.Weights.Automation = t.AutomationWeight
	v.Weights.Familiarity = t.FamiliarityWeight
	v.Weights.PainPoint = t.PainPointWeight
	v.RevenuePoints = stringKeys(t.RevenuePoints)
	v.IndustryPoints = stringKeys(t.IndustryPoints)
	v.DefaultIndustryPoints = t.DefaultIndustry
	for _, p := range t.AISolvable {
		v.AISolvable = append(v.AISolvable, string(p))
	}
	v.BaseRevenue = stringKeys(t.BaseRevenue)
	v.IndustryMultipliers = stringKeys(t.IndustryMultipliers)
	v.DefaultMultiplier = t.DefaultMultiplier
	v.Rates.TimeSavings = t.TimeSavingsRate
	v.Rates.CostReduction = t.CostReductionRate
	v.Rates.RevenueIncrease = t.RevenueIncreaseRate
	v.Currency = t.Currency
	return v
}

func stringKeys[K ~string, V any](in map[K]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func newTablesCommand(load func() (assessment.Tables, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the effective scoring tables as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := load()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(newTablesView(tables))
		},
	}
}
