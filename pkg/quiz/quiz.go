// Package quiz runs an interactive question round over the open cards in a
// keeper. Answers arrive on a reader and prompts go to a writer, so the
// runner is testable without a terminal.
package quiz

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/getlistd/listd/pkg/entry"
	"github.com/getlistd/listd/pkg/keeper"
)

// Options configures a quiz round.
type Options struct {
	// Shuffle randomizes question order.
	Shuffle bool
	// Seed fixes the shuffle order when non-zero, for reproducible rounds.
	Seed int64
}

// Result summarizes a finished round.
type Result struct {
	// Asked is the number of questions presented.
	Asked int `json:"asked"`
	// Correct is the number answered correctly.
	Correct int `json:"correct"`
	// Score is the points earned from correct answers.
	Score int `json:"score"`
	// Possible is the points available across all presented questions.
	Possible int `json:"possible"`
}

// Run asks every open card on the keeper in turn. A correct answer marks
// the card done; answers are compared case-insensitively after trimming.
// EOF on the input ends the round early without error, scoring only the
// questions asked so far.
func Run(k *keeper.Keeper[entry.Card], in io.Reader, out io.Writer, opts Options) (*Result, error) {
	open := make([]*keeper.Item[entry.Card], 0)
	for _, it := range k.List() {
		if !it.Done {
			open = append(open, it)
		}
	}
	if len(open) == 0 {
		fmt.Fprintln(out, "No open cards. Add some with 'listd add card' or reset the list.")
		return &Result{}, nil
	}

	if opts.Shuffle {
		seed := opts.Seed
		if seed == 0 {
			seed = rand.Int63()
		}
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	}

	scanner := bufio.NewScanner(in)
	result := &Result{}

	for i, it := range open {
		fmt.Fprintf(out, "[%d/%d] %s\n> ", i+1, len(open), it.Fields.Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		result.Asked++
		result.Possible += it.Fields.Points

		answer := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(answer, strings.TrimSpace(it.Fields.Answer)) {
			result.Correct++
			result.Score += it.Fields.Points
			if _, err := k.MarkDone(it.ID); err != nil {
				return nil, fmt.Errorf("mark card %d done: %w", it.ID, err)
			}
			fmt.Fprintf(out, "Correct! +%d\n", it.Fields.Points)
		} else {
			fmt.Fprintf(out, "Wrong. The answer is: %s\n", it.Fields.Answer)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	fmt.Fprintf(out, "\nRound over: %d/%d correct, %d/%d points.\n",
		result.Correct, result.Asked, result.Score, result.Possible)
	return result, nil
}
