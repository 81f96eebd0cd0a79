package cli

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/getlistd/listd/pkg/cli/internal/output"
)

// printResult writes v as JSON when --json is set, otherwise the
// human-readable text. Every command that produces a result goes through
// this so the two modes stay consistent.
func printResult(v interface{}, text func() string) error {
	if jsonOutput {
		return output.JSON(v)
	}
	fmt.Println(text())
	return nil
}

var titleCaser = cases.Title(language.English)

// itemLine renders an item map as a one-line summary for text output.
func itemLine(singular string, it Item) string {
	box := "[ ]"
	if done, ok := it["done"].(bool); ok && done {
		box = "[x]"
	}
	return fmt.Sprintf("%s #%d %s", box, it.ID(), fieldSummary(singular, it))
}

// fieldSummary mirrors the entry Summary renderings from the wire form.
func fieldSummary(singular string, it Item) string {
	fields, _ := it["fields"].(map[string]interface{})
	str := func(key string) string {
		s, _ := fields[key].(string)
		return s
	}
	num := func(key string) int {
		if f, ok := fields[key].(float64); ok {
			return int(f)
		}
		return 0
	}

	switch singular {
	case "task":
		if notes := str("notes"); notes != "" {
			return str("title") + " — " + notes
		}
		return str("title")
	case "grocery":
		s := fmt.Sprintf("%s x%d", str("name"), num("quantity"))
		if unit := str("unit"); unit != "" {
			s += " " + unit
		}
		return s
	case "card":
		return fmt.Sprintf("%s (%d pt)", str("prompt"), num("points"))
	default:
		parts := make([]string, 0, len(fields))
		for k, v := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
		return strings.Join(parts, " ")
	}
}

// heading renders a table heading like "Tasks" from a plural kind name.
func heading(plural string) string {
	return titleCaser.String(plural)
}
