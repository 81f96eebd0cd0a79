package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema is the structural contract for listd.yaml. Semantic rules
// (port range, seed entry validity) live in Validate.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "server": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "host": {"type": "string"},
        "port": {"type": "integer"},
        "apiKey": {"type": "string"}
      }
    },
    "logging": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"type": "string"},
        "format": {"type": "string"}
      }
    },
    "lists": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "tasks": {"$ref": "#/$defs/list"},
        "groceries": {"$ref": "#/$defs/list"},
        "cards": {"$ref": "#/$defs/list"}
      }
    }
  },
  "$defs": {
    "list": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "seeds": {
          "type": "array",
          "items": {"type": "object"}
        },
        "seedFiles": {
          "type": "array",
          "items": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compileConfigSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("listd-config.json", strings.NewReader(configSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("listd-config.json")
	})
	return compiledSchema, schemaErr
}

// validateSchema checks a decoded config document against the embedded
// schema. The document is normalized through a JSON round-trip first so
// YAML-decoded values carry JSON types.
func validateSchema(doc interface{}) error {
	schema, err := compileConfigSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := schema.Validate(normalized); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("%w: %s", ErrValidation, flattenSchemaError(verr))
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// flattenSchemaError picks the deepest cause for a readable one-line
// message instead of the full validation tree.
func flattenSchemaError(err *jsonschema.ValidationError) string {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	loc := err.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, err.Message)
}
