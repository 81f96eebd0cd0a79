package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cli/internal/output"
	"github.com/getlistd/listd/pkg/config"
)

var (
	initForce bool
	initFile  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter configuration file",
	Long: `Write an annotated listd.yaml with example seeds for every list.

Edit the seeds, then 'listd serve' or 'listd console' to use them.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	initCmd.Flags().StringVarP(&initFile, "output", "o", DefaultConfigFile, "File to write")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initFile); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initFile)
	}

	if err := os.WriteFile(initFile, []byte(config.StarterYAML), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", initFile, err)
	}

	if jsonOutput {
		return output.JSON(map[string]string{"created": initFile})
	}
	fmt.Printf("Created %s\n", initFile)
	fmt.Println("Edit the seeds, then run 'listd serve' to start the daemon.")
	return nil
}
