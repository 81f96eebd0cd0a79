package entry

import (
	"strings"

	"github.com/getlistd/listd/pkg/keeper"
)

// Task is a to-do entry. Title is required; Notes is free text.
type Task struct {
	Title string `json:"title" yaml:"title"`
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Kind returns "task".
func (t Task) Kind() string { return "task" }

// Validate checks that the title is non-empty after trimming.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &keeper.ValidationError{Kind: "task", Field: "title", Message: "title is required"}
	}
	return nil
}

// Summary returns a one-line rendering for console and CLI output.
func (t Task) Summary() string {
	if t.Notes != "" {
		return t.Title + " — " + t.Notes
	}
	return t.Title
}

// DoneVerb returns "completed".
func (t Task) DoneVerb() string { return "completed" }
