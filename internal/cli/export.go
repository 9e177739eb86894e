// internal/cli/export.go
package cli

import (
	"fmt"
	"os"
	"time"

	"readiness-workers/internal/assessment"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newExportCommand(newEngine engineFactory) *cobra.Command {
	var (
		file    string
		output  string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the JSON report for a response file",
		Example: `  assessctl export -f response.yaml
  assessctl export -f response.yaml -o report.json`,
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

			lead := assessment.Lead{
				Response: sub.Response,
				Contact:  sub.Contact,
				Result:   engine.Evaluate(sub.Response),
			}
			report := assessment.NewReport(lead, "", time.Now())
			exporter := assessment.JSONReportExporter{Indent: !compact}

			data, err := exporter.Export(cmd.Context(), report)
			if err != nil {
				return err
			}
			if output == "" {
				output = report.FileName(exporter.Extension())
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report %s written to %s (%s)\n",
				report.ReportID, output, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Response file (YAML or JSON)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default ai-readiness-report-<date>.json)")
	cmd.Flags().BoolVar(&compact, "compact", false, "Write the report without indentation")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
