package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cli/internal/output"
)

var (
	resetAll bool
	clearAll bool
)

var resetCmd = &cobra.Command{
	Use:   "reset [kind]",
	Short: "Restore a list to its configured seeds",
	Long: `Drop a list's items and re-create its seed entries. Restored items
get fresh ids; the ids of dropped items are never reissued.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: kindNames(),
	RunE:      runReset,
}

var clearCmd = &cobra.Command{
	Use:       "clear [kind]",
	Short:     "Remove all items from a list",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: kindNames(),
	RunE:      runClear,
}

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Reset every list")
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "Clear every list")
	rootCmd.AddCommand(resetCmd, clearCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	client := newClient()

	if resetAll {
		counts, err := client.ResetAll()
		if err != nil {
			return errors.New(FormatConnectionError(err))
		}
		if jsonOutput {
			return output.JSON(map[string]interface{}{"reset": counts})
		}
		for _, name := range kindNames() {
			fmt.Printf("Reset %s: %d seed item(s) restored\n", name, counts[name])
		}
		return nil
	}

	if len(args) != 1 {
		return errors.New("specify a kind or use --all")
	}
	kind, err := resolveKind(args[0])
	if err != nil {
		return err
	}

	n, err := client.Reset(kind.Plural)
	if err != nil {
		return errors.New(FormatConnectionError(err))
	}
	if jsonOutput {
		return output.JSON(map[string]interface{}{"list": kind.Plural, "items": n})
	}
	fmt.Printf("Reset %s: %d seed item(s) restored with fresh ids\n", kind.Plural, n)
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	client := newClient()

	if clearAll {
		counts, err := client.ClearAll()
		if err != nil {
			return errors.New(FormatConnectionError(err))
		}
		if jsonOutput {
			return output.JSON(map[string]interface{}{"cleared": counts})
		}
		for _, name := range kindNames() {
			fmt.Printf("Cleared %s: %d item(s) removed\n", name, counts[name])
		}
		return nil
	}

	if len(args) != 1 {
		return errors.New("specify a kind or use --all")
	}
	kind, err := resolveKind(args[0])
	if err != nil {
		return err
	}

	n, err := client.Clear(kind.Plural)
	if err != nil {
		return errors.New(FormatConnectionError(err))
	}
	if jsonOutput {
		return output.JSON(map[string]interface{}{"list": kind.Plural, "removed": n})
	}
	fmt.Printf("Cleared %s: %d item(s) removed\n", kind.Plural, n)
	return nil
}
