package portability

import (
	"fmt"

	"github.com/getlistd/listd/pkg/entry"
	"github.com/getlistd/listd/pkg/keeper"
)

// ImportSummary reports what an import did, per list and in total.
type ImportSummary struct {
	Created  map[string]int `json:"created"`
	Total    int            `json:"total"`
	Replaced bool           `json:"replaced"`
}

// Import re-creates a document's items in the stores. Every item goes
// through Create, so imported items get fresh ids from each keeper's
// counter; document ids are ignored. Items exported as done are marked
// done again after creation. With replace set, each store named in the
// document is cleared first.
//
// Validation runs before any store is touched: a document with a bad item
// or a kind mismatch imports nothing.
func Import(stores *Stores, doc *Document, replace bool) (*ImportSummary, error) {
	if doc == nil {
		return nil, fmt.Errorf("import document is nil")
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("unsupported document version %q (want %q)", doc.Version, DocumentVersion)
	}

	tasks, err := decodeDump[entry.Task](doc, "tasks")
	if err != nil {
		return nil, err
	}
	groceries, err := decodeDump[entry.Grocery](doc, "groceries")
	if err != nil {
		return nil, err
	}
	cards, err := decodeDump[entry.Card](doc, "cards")
	if err != nil {
		return nil, err
	}
	for name := range doc.Lists {
		switch name {
		case "tasks", "groceries", "cards":
		default:
			return nil, fmt.Errorf("unknown list %q in document", name)
		}
	}

	summary := &ImportSummary{Created: make(map[string]int), Replaced: replace}

	if n, err := restore(stores.Tasks, tasks, replace); err != nil {
		return nil, fmt.Errorf("import tasks: %w", err)
	} else if has(doc, "tasks") {
		summary.Created["tasks"] = n
		summary.Total += n
	}
	if n, err := restore(stores.Groceries, groceries, replace); err != nil {
		return nil, fmt.Errorf("import groceries: %w", err)
	} else if has(doc, "groceries") {
		summary.Created["groceries"] = n
		summary.Total += n
	}
	if n, err := restore(stores.Cards, cards, replace); err != nil {
		return nil, fmt.Errorf("import cards: %w", err)
	} else if has(doc, "cards") {
		summary.Created["cards"] = n
		summary.Total += n
	}

	return summary, nil
}

func has(doc *Document, name string) bool {
	_, ok := doc.Lists[name]
	return ok
}

// decoded pairs a typed entry with the done flag it was exported with.
type decoded[T keeper.Entry] struct {
	fields T
	done   bool
}

func decodeDump[T keeper.Entry](doc *Document, name string) ([]decoded[T], error) {
	dump, ok := doc.Lists[name]
	if !ok {
		return nil, nil
	}

	var zero T
	if dump.Kind != zero.Kind() {
		return nil, fmt.Errorf("list %q declares kind %q, want %q", name, dump.Kind, zero.Kind())
	}

	out := make([]decoded[T], 0, len(dump.Items))
	for i, it := range dump.Items {
		e, err := entry.Decode[T](it.Fields)
		if err != nil {
			return nil, fmt.Errorf("list %q item %d: %w", name, i, err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("list %q item %d: %w", name, i, err)
		}
		out = append(out, decoded[T]{fields: e, done: it.Done})
	}
	return out, nil
}

func restore[T keeper.Entry](k *keeper.Keeper[T], items []decoded[T], replace bool) (int, error) {
	if items == nil && !replace {
		return 0, nil
	}
	if replace && items != nil {
		k.Clear()
	}

	for _, d := range items {
		it, err := k.Create(d.fields)
		if err != nil {
			return 0, err
		}
		if d.done {
			if _, err := k.MarkDone(it.ID); err != nil {
				return 0, err
			}
		}
	}
	return len(items), nil
}
