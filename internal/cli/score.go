// internal/cli/score.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"readiness-workers/internal/assessment"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type engineFactory func() (*assessment.Engine, error)

func newScoreCommand(newEngine engineFactory) *cobra.Command {
	var (
		file   string
		locale string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a response file and print recommendations",
		Example: `  assessctl score -f response.yaml
  assessctl score -f response.yaml --locale ar
  assessctl score -f response.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := readSubmission(file)
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}

			result := engine.Evaluate(sub.Response)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			loc := assessment.Locale(locale)
			if loc == "" {
				loc = sub.Contact.Locale
			}
			printResult(out, result, loc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Response file (YAML or JSON)")
	cmd.Flags().StringVar(&locale, "locale", "", "Output language (en|ar), defaults to the contact locale")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw score result as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

var (
	tierColors = map[assessment.Tier]*color.Color{
		assessment.TierFoundation:     color.New(color.FgRed, color.Bold),
		assessment.TierImplementation: color.New(color.FgYellow, color.Bold),
		assessment.TierOptimization:   color.New(color.FgGreen, color.Bold),
	}
	priorityColors = map[assessment.Priority]*color.Color{
		assessment.PriorityUrgent: color.New(color.FgRed, color.Bold),
		assessment.PriorityHigh:   color.New(color.FgYellow),
		assessment.PriorityMedium: color.New(color.FgCyan),
		assessment.PriorityLow:    color.New(color.FgWhite),
	}
	heading = color.New(color.FgCyan, color.Bold)
)

func printResult(w io.Writer, result assessment.ScoreResult, locale assessment.Locale) {
	tc, ok := tierColors[result.Tier]
	if !ok {
		tc = color.New(color.Reset)
	}

	heading.Fprintln(w, "AI Readiness Score")
	tc.Fprintf(w, "  %d/100 (%s)\n", result.ReadinessScore, result.Tier)

	b := result.Breakdown
	fmt.Fprintf(w, "  digital maturity %.1f, revenue %.1f, industry %.1f, pain points %.1f\n\n",
		b.DigitalMaturity, b.Revenue, b.Industry, b.PainPoints)

	heading.Fprintln(w, "Recommendations")
	for _, rec := range result.Recommendations {
		pc, ok := priorityColors[rec.Priority]
		if !ok {
			pc = color.New(color.Reset)
		}
		pc.Fprintf(w, "  [%s]", rec.Priority)
		fmt.Fprintf(w, " %s (%s)\n", rec.Title.In(locale), rec.Phase.In(locale))
		fmt.Fprintf(w, "      %s\n", rec.Description.In(locale))
		fmt.Fprintf(w, "      Timeline: %s | ROI: %s | Investment: %s\n", rec.Timeline, rec.ExpectedROI, rec.InvestmentRange)
		for _, f := range rec.Features {
			fmt.Fprintf(w, "      - %s\n", f.In(locale))
		}
	}
	fmt.Fprintln(w)

	m := result.ProjectedMetrics
	heading.Fprintln(w, "Projected monthly impact")
	fmt.Fprintf(w, "  %-22s %s\n", "Time savings", m.TimeSavings.Display)
	fmt.Fprintf(w, "  %-22s %s\n", "Cost reduction", m.CostReduction.Display)
	fmt.Fprintf(w, "  %-22s %s\n", "Revenue increase", m.RevenueIncrease.Display)
	fmt.Fprintf(w, "  %-22s %d%%\n", "Customer satisfaction", m.CustomerSatisfactionPercent)
	fmt.Fprintf(w, "  %-22s %d months\n", "Payback period", m.PaybackPeriodMonths)
}
