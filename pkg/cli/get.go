package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var getSelect string

var getCmd = &cobra.Command{
	Use:       "get <kind> <id>",
	Short:     "Show one item",
	Args:      cobra.ExactArgs(2),
	ValidArgs: kindNames(),
	RunE:      runGet,
}

func init() {
	getCmd.Flags().StringVar(&getSelect, "select", "", "JSONPath applied to the item")
	rootCmd.AddCommand(getCmd)
}

// parseIDArg parses a positional id argument.
func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("id must be a positive integer, got %q", arg)
	}
	return id, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	kind, err := resolveKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseIDArg(args[1])
	if err != nil {
		return err
	}

	client := newClient()
	it, err := client.Get(kind.Plural, id)
	if err != nil {
		return errors.New(FormatConnectionError(err))
	}

	if getSelect != "" {
		return printSelected(it, getSelect)
	}

	return printResult(it, func() string {
		line := itemLine(kind.Singular, it)
		if created, ok := it["createdAt"].(string); ok {
			line += "\ncreated: " + created
		}
		if completed, ok := it["completedAt"].(string); ok {
			line += "\ncompleted: " + completed
		}
		return line
	})
}
