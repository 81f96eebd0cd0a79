package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/console"
	"github.com/getlistd/listd/pkg/server"
)

var consoleConfigFile string

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive console over local in-memory lists",
	Long: `Run the interactive menu console. No daemon is involved: lists are
seeded from the configuration file and live only for the session.`,
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().StringVarP(&consoleConfigFile, "config", "c", "", "Configuration file (default: $LISTD_CONFIG or ./listd.yaml)")
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, path, err := resolveConfig(consoleConfigFile)
	if err != nil {
		return describeConfigError(path, err)
	}

	stores, registry, err := server.BuildStores(cfg)
	if err != nil {
		return fmt.Errorf("seed lists: %w", err)
	}

	session := console.New(stores, registry, os.Stdin, os.Stdout)
	return session.Run()
}
