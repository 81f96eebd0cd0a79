package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cli/internal/output"
)

var doneCmd = &cobra.Command{
	Use:   "done <kind> <id>",
	Short: "Mark an item done",
	Long: `Set the item's lifecycle flag: tasks are completed, groceries
purchased, cards answered. The flag is one-way; marking an already-done
item changes nothing and says so.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: kindNames(),
	RunE:      runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	kind, err := resolveKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseIDArg(args[1])
	if err != nil {
		return err
	}

	client := newClient()
	it, err := client.Done(kind.Plural, id)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode == "already_done" {
			// Not a failure: the flag is already where the user wants it.
			if jsonOutput {
				return output.JSON(map[string]interface{}{
					"id":      id,
					"changed": false,
					"message": apiErr.Message,
				})
			}
			fmt.Printf("%s; nothing changed.\n", apiErr.Message)
			return nil
		}
		return errors.New(FormatConnectionError(err))
	}

	return printResult(it, func() string {
		verb := map[string]string{"task": "completed", "grocery": "purchased", "card": "answered"}[kind.Singular]
		return fmt.Sprintf("%s #%d %s: %s", heading(kind.Singular), it.ID(), verb, fieldSummary(kind.Singular, it))
	})
}
