// Package cli implements the listd command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cliconfig"
)

var (
	// Persistent flags available to all subcommands
	serverURL  string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "listd",
	Short: "listd is a local-first list keeper",
	Long: `listd keeps tasks, groceries, and quiz cards in fast in-memory lists.

Run 'listd serve' to start the daemon, then manage lists with the other
commands, or skip the daemon entirely with 'listd console' and 'listd quiz'.
Ids are assigned once and never reused, even after deletes.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server-url", cliconfig.GetServerURL(), "Daemon base URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// newClient builds the daemon client from the persistent flags and
// environment. Swappable in tests.
var newClient = func() ListClient {
	return NewClientWithAuth(serverURL)
}
