package entry

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/getlistd/listd/pkg/keeper"
)

// Decode converts a generic field map (from YAML seeds, import documents,
// or request bodies) into a typed entry via a JSON round-trip. Unknown
// fields are rejected so seed typos surface instead of silently dropping.
func Decode[T keeper.Entry](fields map[string]interface{}) (T, error) {
	var out T

	raw, err := json.Marshal(fields)
	if err != nil {
		return out, fmt.Errorf("encode %s fields: %w", out.Kind(), err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, &keeper.ValidationError{Kind: out.Kind(), Message: err.Error()}
	}
	return out, nil
}

// DecodeSeeds converts a slice of field maps, validating each entry.
func DecodeSeeds[T keeper.Entry](seeds []map[string]interface{}) ([]T, error) {
	out := make([]T, 0, len(seeds))
	for i, fields := range seeds {
		e, err := Decode[T](fields)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
