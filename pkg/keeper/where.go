package keeper

import (
	"encoding/json"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// whereCache holds compiled where-expressions. Expressions are compiled
// against an open environment, so the program depends only on the source
// text and one cache serves every keeper.
var (
	whereMu    sync.RWMutex
	whereCache = make(map[string]*vm.Program)
)

// Where filters items with an expr-lang expression evaluated against each
// item's environment: id, done, createdAt, updatedAt, completedAt, fields
// (the nested field map), plus the field names splatted at the top level
// for convenience (envelope keys win on collision).
//
// Compile and runtime errors are reported as *ValidationError on the
// "where" field, never as a panic.
func Where[T Entry](items []*Item[T], expression string) ([]*Item[T], error) {
	program, err := compileWhere(expression)
	if err != nil {
		return nil, &ValidationError{Field: "where", Message: err.Error()}
	}

	out := make([]*Item[T], 0, len(items))
	for _, it := range items {
		result, err := expr.Run(program, itemEnv(it))
		if err != nil {
			return nil, &ValidationError{Field: "where", Message: err.Error()}
		}
		if keep, ok := result.(bool); ok && keep {
			out = append(out, it)
		}
	}
	return out, nil
}

func compileWhere(expression string) (*vm.Program, error) {
	whereMu.RLock()
	if program, ok := whereCache[expression]; ok {
		whereMu.RUnlock()
		return program, nil
	}
	whereMu.RUnlock()

	program, err := expr.Compile(expression, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, err
	}

	whereMu.Lock()
	// Double-check in case another goroutine compiled the same expression.
	if existing, ok := whereCache[expression]; ok {
		whereMu.Unlock()
		return existing, nil
	}
	whereCache[expression] = program
	whereMu.Unlock()

	return program, nil
}

// itemEnv builds the expression environment for an item via a JSON
// round-trip, so entry fields appear under their JSON names with plain
// map/float64 types.
func itemEnv[T Entry](it *Item[T]) map[string]interface{} {
	env := make(map[string]interface{})

	raw, err := json.Marshal(it)
	if err != nil {
		return env
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return env
	}

	// Splat entry fields at the top level; envelope keys win.
	if fields, ok := env["fields"].(map[string]interface{}); ok {
		for name, v := range fields {
			if _, taken := env[name]; !taken {
				env[name] = v
			}
		}
	}
	return env
}
