package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cli/internal/output"
	"github.com/getlistd/listd/pkg/portability"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Upload a previously exported snapshot",
	Long: `Import a JSON or YAML export document. Items are re-created through
the normal lifecycle, so they receive fresh ids; the ids in the document
are ignored. With --replace, each list in the document is emptied first.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Clear each imported list first")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	format := portability.FormatFromPath(path)
	if format == portability.FormatXML {
		return errors.New("XML documents cannot be imported (use json or yaml)")
	}

	client := newClient()
	summary, err := client.Import(data, format, importReplace)
	if err != nil {
		return errors.New(FormatConnectionError(err))
	}

	if jsonOutput {
		return output.JSON(summary)
	}
	fmt.Printf("Imported %d item(s)", summary.Total)
	if summary.Replaced {
		fmt.Print(" (lists replaced)")
	}
	fmt.Println()
	for _, name := range kindNames() {
		if n, ok := summary.Created[name]; ok {
			fmt.Printf("  %s: %d\n", name, n)
		}
	}
	return nil
}
