package keeper

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultLimit is the page size used when a query specifies no limit.
const DefaultLimit = 100

// FilterDone keeps only the items whose lifecycle flag matches done.
// A nil done keeps everything.
func FilterDone[T Entry](items []*Item[T], done *bool) []*Item[T] {
	if done == nil {
		return items
	}
	out := make([]*Item[T], 0, len(items))
	for _, it := range items {
		if it.Done == *done {
			out = append(out, it)
		}
	}
	return out
}

// SortItems sorts items in place by the given field and order. Supported
// fields: id, done, createdAt, updatedAt, or any entry field name. The sort
// is stable, so items equal under the key keep insertion order. Order is
// "asc" (default) or "desc".
func SortItems[T Entry](items []*Item[T], field, order string) {
	if field == "" {
		return
	}

	desc := strings.EqualFold(order, "desc")
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return lessByField(items[i], items[j], field)
	})
}

func lessByField[T Entry](a, b *Item[T], field string) bool {
	switch field {
	case "id":
		return a.ID < b.ID
	case "done":
		return !a.Done && b.Done
	case "createdAt":
		return a.CreatedAt.Before(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Before(b.UpdatedAt)
	}
	return CompareValues(fieldValue(a, field), fieldValue(b, field))
}

func fieldValue[T Entry](it *Item[T], field string) interface{} {
	env := itemEnv(it)
	if fields, ok := env["fields"].(map[string]interface{}); ok {
		if v, ok := fields[field]; ok {
			return v
		}
	}
	return env[field]
}

// CompareValues reports whether a sorts before b. Strings, numbers, bools,
// and times compare natively; everything else falls back to the string
// rendering.
func CompareValues(a, b interface{}) bool {
	switch va := a.(type) {
	case string:
		if vb, ok := b.(string); ok {
			return va < vb
		}
	case float64:
		if vb, ok := b.(float64); ok {
			return va < vb
		}
	case int64:
		if vb, ok := b.(int64); ok {
			return va < vb
		}
	case bool:
		if vb, ok := b.(bool); ok {
			return !va && vb
		}
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Before(vb)
		}
	}
	return fmt.Sprintf("%v", a) < fmt.Sprintf("%v", b)
}

// Paginate applies offset and limit to items, returning the page and the
// total count before pagination. Negative offsets are treated as 0; a
// non-positive limit uses DefaultLimit.
func Paginate[T Entry](items []*Item[T], offset, limit int) ([]*Item[T], int) {
	total := len(items)

	start := offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	end := start + limit
	if end > total {
		end = total
	}

	return items[start:end], total
}
