package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cli/internal/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file",
	Long: `Check a configuration file against the schema, the semantic rules,
and every seed entry, including seeds pulled in through seedFiles globs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	cfg, resolved, err := resolveConfig(path)
	if err != nil {
		return describeConfigError(resolved, err)
	}
	if resolved == "" {
		return fmt.Errorf("no configuration file found (looked for %s)", DefaultConfigFile)
	}

	seeds := map[string]int{
		"tasks":     len(cfg.Lists.Tasks.Seeds),
		"groceries": len(cfg.Lists.Groceries.Seeds),
		"cards":     len(cfg.Lists.Cards.Seeds),
	}

	if jsonOutput {
		return output.JSON(map[string]interface{}{
			"file":  resolved,
			"valid": true,
			"seeds": seeds,
		})
	}
	fmt.Printf("%s is valid\n", resolved)
	fmt.Printf("Seeds: %d task(s), %d grocery(s), %d card(s)\n",
		seeds["tasks"], seeds["groceries"], seeds["cards"])
	return nil
}
