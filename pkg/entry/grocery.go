package entry

import (
	"fmt"
	"strings"

	"github.com/getlistd/listd/pkg/keeper"
)

// Grocery is a shopping-list entry. Name is required and Quantity must be
// positive; Unit is optional ("l", "kg", ...).
type Grocery struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	Unit     string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Kind returns "grocery".
func (g Grocery) Kind() string { return "grocery" }

// Validate checks the name and the positive-quantity constraint.
func (g Grocery) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return &keeper.ValidationError{Kind: "grocery", Field: "name", Message: "name is required"}
	}
	if g.Quantity <= 0 {
		return &keeper.ValidationError{Kind: "grocery", Field: "quantity", Message: "quantity must be positive"}
	}
	return nil
}

// Summary returns a one-line rendering like "Milk x2 l".
func (g Grocery) Summary() string {
	s := fmt.Sprintf("%s x%d", g.Name, g.Quantity)
	if g.Unit != "" {
		s += " " + g.Unit
	}
	return s
}

// DoneVerb returns "purchased".
func (g Grocery) DoneVerb() string { return "purchased" }
