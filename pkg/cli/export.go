package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/portability"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a snapshot of every list",
	Long: `Export all lists as a portable document. JSON and YAML exports can
be imported again; XML is for consumption by other tools.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "File to write (default: stdout)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Format: json, yaml, or xml (default: from file extension, else json)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := exportFormat
	if format == "" {
		if exportOutput != "" {
			format = portability.FormatFromPath(exportOutput)
		} else {
			format = portability.FormatJSON
		}
	}

	client := newClient()
	data, err := client.Export(format)
	if err != nil {
		return errors.New(FormatConnectionError(err))
	}

	if exportOutput == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOutput, err)
	}
	fmt.Printf("Exported to %s (%s)\n", exportOutput, format)
	return nil
}
