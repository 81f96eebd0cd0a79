package entry

import (
	"fmt"
	"strings"

	"github.com/getlistd/listd/pkg/keeper"
)

// Card is a quiz entry. Prompt and Answer are required; Points must be
// positive and scores a correct answer in the quiz runner.
type Card struct {
	Prompt string `json:"prompt" yaml:"prompt"`
	Answer string `json:"answer" yaml:"answer"`
	Points int    `json:"points" yaml:"points"`
}

// NewCard builds a card, defaulting points to 1 when omitted. The default
// is constructor convenience only; Validate still rejects non-positive
// points on cards built directly.
func NewCard(prompt, answer string, points int) Card {
	if points == 0 {
		points = 1
	}
	return Card{Prompt: prompt, Answer: answer, Points: points}
}

// Kind returns "card".
func (c Card) Kind() string { return "card" }

// Validate checks prompt, answer, and the positive-points constraint.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Prompt) == "" {
		return &keeper.ValidationError{Kind: "card", Field: "prompt", Message: "prompt is required"}
	}
	if strings.TrimSpace(c.Answer) == "" {
		return &keeper.ValidationError{Kind: "card", Field: "answer", Message: "answer is required"}
	}
	if c.Points <= 0 {
		return &keeper.ValidationError{Kind: "card", Field: "points", Message: "points must be positive"}
	}
	return nil
}

// Summary returns the prompt with its point value.
func (c Card) Summary() string {
	return fmt.Sprintf("%s (%d pt)", c.Prompt, c.Points)
}

// DoneVerb returns "answered".
func (c Card) DoneVerb() string { return "answered" }
