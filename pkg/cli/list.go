package cli

import (
	"errors"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cli/internal/output"
)

var (
	listWhere  string
	listDone   bool
	listOpen   bool
	listSort   string
	listOrder  string
	listLimit  int
	listOffset int
	listSelect string
)

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List items of a kind",
	Long: `List items from one list, with optional filtering and paging.

The --where expression runs on the daemon against each item (fields are
addressable both nested and at the top level):

  listd list groceries --where 'quantity > 1'
  listd list tasks --where 'fields.title contains "report"'

The --select JSONPath runs locally on the returned items:

  listd list tasks --select '$[*].fields.title'`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE:      runList,
}

func init() {
	listCmd.Flags().StringVar(&listWhere, "where", "", "Filter expression evaluated per item")
	listCmd.Flags().BoolVar(&listDone, "done", false, "Only items marked done")
	listCmd.Flags().BoolVar(&listOpen, "open", false, "Only items not yet done")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort field (id, done, createdAt, updatedAt, or an entry field)")
	listCmd.Flags().StringVar(&listOrder, "order", "asc", "Sort order: asc or desc")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum items to return")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Items to skip")
	listCmd.Flags().StringVar(&listSelect, "select", "", "JSONPath applied to the returned items")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	kind, err := resolveKind(args[0])
	if err != nil {
		return err
	}
	if listDone && listOpen {
		return errors.New("--done and --open are mutually exclusive")
	}

	params := QueryParams{
		Where:  listWhere,
		Sort:   listSort,
		Order:  listOrder,
		Limit:  listLimit,
		Offset: listOffset,
	}
	if listDone {
		v := true
		params.Done = &v
	}
	if listOpen {
		v := false
		params.Done = &v
	}

	client := newClient()
	page, err := client.Query(kind.Plural, params)
	if err != nil {
		return errors.New(FormatConnectionError(err))
	}

	if listSelect != "" {
		return printSelected(page.Items, listSelect)
	}

	return printResult(page, func() string {
		if len(page.Items) == 0 {
			return fmt.Sprintf("No %s found.", kind.Plural)
		}
		text := heading(kind.Plural) + ":"
		for _, it := range page.Items {
			text += "\n" + itemLine(kind.Singular, it)
		}
		if page.Meta.Total > page.Meta.Count {
			text += fmt.Sprintf("\n(%d of %d; use --offset/--limit to page)",
				page.Meta.Count, page.Meta.Total)
		}
		return text
	})
}

// printSelected applies a JSONPath to a response payload and prints the
// result as JSON, regardless of --json: a projection has no canonical text
// form.
func printSelected(v interface{}, expr string) error {
	x, err := jp.ParseString(expr)
	if err != nil {
		return fmt.Errorf("invalid --select expression: %w", err)
	}

	// Round-trip through ojg's parser so the path sees plain generic data.
	data, err := oj.Parse([]byte(oj.JSON(v)))
	if err != nil {
		return fmt.Errorf("prepare payload for selection: %w", err)
	}

	return output.JSON(x.Get(data))
}
