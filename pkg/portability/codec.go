package portability

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported document formats. XML is export-only.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
)

// FormatFromPath infers the document format from a file extension.
// An empty or unknown extension defaults to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".xml":
		return FormatXML
	default:
		return FormatJSON
	}
}

// Encode renders a document in the given format.
func Encode(doc *Document, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(doc)
	case FormatYAML:
		return EncodeYAML(doc)
	case FormatXML:
		return EncodeXML(doc)
	default:
		return nil, fmt.Errorf("unsupported export format %q (valid: json, yaml, xml)", format)
	}
}

// Decode parses a document in the given format. XML import is not
// supported; XML exports are for consumption by other tools.
func Decode(data []byte, format string) (*Document, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatXML:
		return nil, fmt.Errorf("XML documents cannot be imported (use json or yaml)")
	default:
		return nil, fmt.Errorf("unsupported import format %q (valid: json, yaml)", format)
	}
}

// EncodeJSON renders the document as indented JSON.
func EncodeJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeJSON parses a JSON document.
func DecodeJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// EncodeYAML renders the document as YAML.
func EncodeYAML(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// DecodeYAML parses a YAML document.
func DecodeYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
