package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/getlistd/listd/pkg/entry"
)

// LoadSeedFiles expands each list's seedFiles globs relative to baseDir and
// appends the parsed entries after the inline seeds. Matches are processed
// in sorted path order for deterministic ids. Globs support ** via
// doublestar. A pattern that matches nothing is an error: a misspelled
// seed path should not silently seed nothing.
func (c *Config) LoadSeedFiles(baseDir string) error {
	lists := []struct {
		name string
		lc   *ListConfig
	}{
		{"tasks", &c.Lists.Tasks},
		{"groceries", &c.Lists.Groceries},
		{"cards", &c.Lists.Cards},
	}

	for _, l := range lists {
		for _, pattern := range l.lc.SeedFiles {
			resolved := pattern
			if !filepath.IsAbs(pattern) {
				resolved = filepath.Join(baseDir, pattern)
			}

			matches, err := doublestar.FilepathGlob(resolved)
			if err != nil {
				return fmt.Errorf("lists.%s: bad seed glob %q: %w", l.name, pattern, err)
			}
			if len(matches) == 0 {
				return fmt.Errorf("lists.%s: seed glob %q matched no files", l.name, pattern)
			}
			sort.Strings(matches)

			for _, path := range matches {
				seeds, err := loadSeedFile(path)
				if err != nil {
					return fmt.Errorf("lists.%s: %w", l.name, err)
				}
				l.lc.Seeds = append(l.lc.Seeds, seeds...)
			}
		}
		l.lc.SeedFiles = nil
	}

	// File-loaded seeds get the same validation as inline ones.
	return validateSeeds(c)
}

// loadSeedFile parses one seed file: a YAML or JSON array of field maps.
func loadSeedFile(path string) ([]map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	var seeds []map[string]interface{}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &seeds); err != nil {
			return nil, fmt.Errorf("seed file %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &seeds); err != nil {
			return nil, fmt.Errorf("seed file %s: %w", path, err)
		}
	}
	return seeds, nil
}

// validateSeeds runs every inline seed through its kind's decoder and
// Validate so bad seeds fail at load time, not at Reset time.
func validateSeeds(c *Config) error {
	if _, err := entry.DecodeSeeds[entry.Task](c.Lists.Tasks.Seeds); err != nil {
		return fmt.Errorf("%w: lists.tasks: %v", ErrValidation, err)
	}
	if _, err := entry.DecodeSeeds[entry.Grocery](c.Lists.Groceries.Seeds); err != nil {
		return fmt.Errorf("%w: lists.groceries: %v", ErrValidation, err)
	}
	if _, err := entry.DecodeSeeds[entry.Card](c.Lists.Cards.Seeds); err != nil {
		return fmt.Errorf("%w: lists.cards: %v", ErrValidation, err)
	}
	return nil
}
