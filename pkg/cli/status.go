package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cli/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status and list overview",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := newClient()
	status, err := client.Status()
	if err != nil {
		return errors.New(FormatConnectionError(err))
	}

	if jsonOutput {
		return output.JSON(status)
	}

	fmt.Printf("%s %s, up %s\n", status.Name, status.Version, status.Uptime)
	w := output.Table()
	fmt.Fprintln(w, "LIST\tKIND\tITEMS\tDONE\tSEEDS\tLAST ID")
	for _, info := range status.Lists.Lists {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
			info.Name, info.Kind, info.Items, info.Done, info.Seeds, info.LastID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d item(s) total, %d done\n", status.Lists.TotalItems, status.Lists.TotalDone)
	return nil
}
