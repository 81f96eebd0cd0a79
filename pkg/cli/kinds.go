package cli

import "fmt"

// kindInfo maps a user-supplied kind argument onto API routes and wording.
type kindInfo struct {
	Singular string
	Plural   string
}

var kinds = []kindInfo{
	{Singular: "task", Plural: "tasks"},
	{Singular: "grocery", Plural: "groceries"},
	{Singular: "card", Plural: "cards"},
}

// resolveKind accepts either the singular or plural kind name.
func resolveKind(arg string) (kindInfo, error) {
	for _, k := range kinds {
		if arg == k.Singular || arg == k.Plural {
			return k, nil
		}
	}
	return kindInfo{}, fmt.Errorf("unknown kind %q (valid: task, grocery, card)", arg)
}

// kindNames returns the plural kind names for help text and completion.
func kindNames() []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Plural
	}
	return names
}
