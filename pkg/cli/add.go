package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addTaskNotes   string
	addGroceryQty  int
	addGroceryUnit string
	addCardAnswer  string
	addCardPoints  int
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item to a list",
}

var addTaskCmd = &cobra.Command{
	Use:   "task <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addItem("tasks", "task", map[string]interface{}{
			"title": args[0],
			"notes": addTaskNotes,
		})
	},
}

var addGroceryCmd = &cobra.Command{
	Use:   "grocery <name>",
	Short: "Add a grocery item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addItem("groceries", "grocery", map[string]interface{}{
			"name":     args[0],
			"quantity": addGroceryQty,
			"unit":     addGroceryUnit,
		})
	},
}

var addCardCmd = &cobra.Command{
	Use:   "card <prompt>",
	Short: "Add a quiz card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if addCardAnswer == "" {
			return errors.New("--answer is required")
		}
		return addItem("cards", "card", map[string]interface{}{
			"prompt": args[0],
			"answer": addCardAnswer,
			"points": addCardPoints,
		})
	},
}

func init() {
	addTaskCmd.Flags().StringVar(&addTaskNotes, "notes", "", "Free-form notes")
	addGroceryCmd.Flags().IntVar(&addGroceryQty, "quantity", 1, "Quantity (must be positive)")
	addGroceryCmd.Flags().StringVar(&addGroceryUnit, "unit", "", "Unit, e.g. l or kg")
	addCardCmd.Flags().StringVar(&addCardAnswer, "answer", "", "Expected answer (required)")
	addCardCmd.Flags().IntVar(&addCardPoints, "points", 1, "Points for a correct answer")

	addCmd.AddCommand(addTaskCmd, addGroceryCmd, addCardCmd)
	rootCmd.AddCommand(addCmd)
}

func addItem(plural, singular string, fields map[string]interface{}) error {
	client := newClient()
	it, err := client.Create(plural, fields)
	if err != nil {
		return errors.New(FormatConnectionError(err))
	}
	return printResult(it, func() string {
		return fmt.Sprintf("Created %s #%d: %s", singular, it.ID(), fieldSummary(singular, it))
	})
}
