package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete an item",
	Long: `Remove an item from its list. The id is retired permanently;
no later item will ever reuse it.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: kindNames(),
	RunE:      runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	kind, err := resolveKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseIDArg(args[1])
	if err != nil {
		return err
	}

	client := newClient()
	it, err := client.Delete(kind.Plural, id)
	if err != nil {
		return errors.New(FormatConnectionError(err))
	}

	return printResult(it, func() string {
		return fmt.Sprintf("Deleted %s #%d: %s (id retired)", kind.Singular, id, fieldSummary(kind.Singular, it))
	})
}
