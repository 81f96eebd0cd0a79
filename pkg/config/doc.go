// Package config loads, validates, and saves the listd project
// configuration (listd.yaml). Validation happens in two passes: structural
// checks against an embedded JSON Schema, then semantic checks (port
// range, log levels, seed entry validity).
package config
