package portability

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/getlistd/listd/pkg/keeper"
)

// Export snapshots all three stores into a Document.
func Export(stores *Stores) (*Document, error) {
	doc := &Document{
		Version:    DocumentVersion,
		ExportedAt: time.Now().UTC(),
		Lists:      make(map[string]ListDump, len(ListNames)),
	}

	tasks, err := dumpKeeper(stores.Tasks)
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	doc.Lists["tasks"] = tasks

	groceries, err := dumpKeeper(stores.Groceries)
	if err != nil {
		return nil, fmt.Errorf("export groceries: %w", err)
	}
	doc.Lists["groceries"] = groceries

	cards, err := dumpKeeper(stores.Cards)
	if err != nil {
		return nil, fmt.Errorf("export cards: %w", err)
	}
	doc.Lists["cards"] = cards

	return doc, nil
}

func dumpKeeper[T keeper.Entry](k *keeper.Keeper[T]) (ListDump, error) {
	items := k.List()
	dump := ListDump{
		Kind:  k.Kind(),
		Items: make([]ItemDump, 0, len(items)),
	}

	for _, it := range items {
		fields, err := fieldMap(it.Fields)
		if err != nil {
			return ListDump{}, fmt.Errorf("item %d: %w", it.ID, err)
		}
		dump.Items = append(dump.Items, ItemDump{
			ID:          it.ID,
			Done:        it.Done,
			CreatedAt:   it.CreatedAt,
			CompletedAt: it.CompletedAt,
			Fields:      fields,
		})
	}
	return dump, nil
}

// fieldMap converts a typed entry to a generic map via a JSON round-trip,
// mirroring the decode direction in the entry package.
func fieldMap(e keeper.Entry) (map[string]interface{}, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
