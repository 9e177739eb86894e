// internal/cli/root.go
package cli

import (
	"fmt"

	"readiness-workers/internal/assessment"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the assessctl command tree.
func NewRootCommand() *cobra.Command {
	var tablesPath string

	root := &cobra.Command{
		Use:   "assessctl",
		Short: "Score AI readiness assessments offline",
		Long: `assessctl runs the same scoring engine as the workers against a response file.

Response files are YAML (or JSON) with a "response" section and an optional
"contact" section. Scoring tables default to the built-in values; pass
--tables with a config file to apply the "scoring" overrides from it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&tablesPath, "tables", "", "YAML file with scoring table overrides (e.g. configs/config.yaml)")

	engine := func() (*assessment.Engine, error) {
		tables, err := loadTables(tablesPath)
		if err != nil {
			return nil, err
		}
		return assessment.NewEngine(assessment.WithTables(tables))
	}

	root.AddCommand(
		newScoreCommand(engine),
		newExportCommand(engine),
		newTablesCommand(func() (assessment.Tables, error) { return loadTables(tablesPath) }),
	)
	return root
}

// loadTables merges the overrides in path over the defaults. A file with a
// top level "scoring" key is read from that key, so the worker config works as is.
func loadTables(path string) (assessment.Tables, error) {
	if path == "" {
		return assessment.DefaultTables(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return assessment.Tables{}, fmt.Errorf("read tables %s: %w", path, err)
	}
	if v.IsSet("scoring") {
		v = v.Sub("scoring")
	}

	var overrides assessment.TableOverrides
	if err := v.Unmarshal(&overrides); err != nil {
		return assessment.Tables{}, fmt.Errorf("decode tables %s: %w", path, err)
	}

	tables := assessment.DefaultTables().Merge(overrides)
	if err := tables.Validate(); err != nil {
		return assessment.Tables{}, err
	}
	return tables, nil
}
