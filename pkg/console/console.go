// Package console is the interactive terminal frontend. Forms gather input
// with huh; the actions behind them are plain methods returning message
// strings, so every behavior is testable without a terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/getlistd/listd/pkg/entry"
	"github.com/getlistd/listd/pkg/keeper"
	"github.com/getlistd/listd/pkg/portability"
	"github.com/getlistd/listd/pkg/quiz"
)

// Session is one interactive console run over a stores bundle.
type Session struct {
	stores   *portability.Stores
	registry *keeper.Registry
	in       io.Reader
	out      io.Writer
}

// New creates a console session writing to out. Quiz answers are read from
// in (os.Stdin in normal use).
func New(stores *portability.Stores, registry *keeper.Registry, in io.Reader, out io.Writer) *Session {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Session{stores: stores, registry: registry, in: in, out: out}
}

// menuEntry pairs a menu label with the form that drives it.
type menuEntry struct {
	label string
	run   func(*Session) (string, error)
}

const exitLabel = "Exit"

func menu() []menuEntry {
	return []menuEntry{
		{"Show overview", (*Session).overviewAction},
		{"List items", (*Session).listForm},
		{"Add a task", (*Session).addTaskForm},
		{"Add a grocery", (*Session).addGroceryForm},
		{"Add a card", (*Session).addCardForm},
		{"Mark item done", (*Session).doneForm},
		{"Delete item", (*Session).deleteForm},
		{"Reset a list to its seeds", (*Session).resetForm},
		{"Run a quiz round", (*Session).quizAction},
	}
}

// Run loops the main menu until the user exits or the form is aborted.
func (s *Session) Run() error {
	entries := menu()
	labels := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		labels = append(labels, e.label)
	}
	labels = append(labels, exitLabel)

	for {
		var choice string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("listd").
				Options(huh.NewOptions(labels...)...).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if choice == exitLabel {
			return nil
		}

		for _, e := range entries {
			if e.label != choice {
				continue
			}
			msg, err := e.run(s)
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					break
				}
				fmt.Fprintf(s.out, "Error: %v\n", err)
				break
			}
			if msg != "" {
				fmt.Fprintln(s.out, msg)
			}
		}
	}
}

func (s *Session) addTaskForm() (string, error) {
	var title, notes string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&title).
			Validate(func(v string) error {
				return entry.Task{Title: v}.Validate()
			}),
		huh.NewInput().Title("Notes (optional)").Value(&notes),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return s.AddTask(title, notes)
}

func (s *Session) addGroceryForm() (string, error) {
	var name, quantity, unit string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&name).
			Validate(func(v string) error {
				return entry.Grocery{Name: v, Quantity: 1}.Validate()
			}),
		huh.NewInput().Title("Quantity").Value(&quantity).
			Validate(validatePositiveInt),
		huh.NewInput().Title("Unit (optional)").Value(&unit),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return s.AddGrocery(name, quantity, unit)
}

func (s *Session) addCardForm() (string, error) {
	var prompt, answer, points string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Prompt").Value(&prompt).
			Validate(notBlank("prompt")),
		huh.NewInput().Title("Answer").Value(&answer).
			Validate(notBlank("answer")),
		huh.NewInput().Title("Points (default 1)").Value(&points).
			Validate(validateOptionalPositiveInt),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return s.AddCard(prompt, answer, points)
}

func (s *Session) listForm() (string, error) {
	list, err := s.pickList("Which list?")
	if err != nil {
		return "", err
	}
	return s.ListItems(list)
}

func (s *Session) doneForm() (string, error) {
	list, id, err := s.pickItem("Mark done in which list?")
	if err != nil {
		return "", err
	}
	return s.MarkDone(list, id)
}

func (s *Session) deleteForm() (string, error) {
	list, id, err := s.pickItem("Delete from which list?")
	if err != nil {
		return "", err
	}

	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete item #%s from %s? The id will not be reused.", id, list)).
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	if !confirmed {
		return "Nothing deleted.", nil
	}
	return s.Delete(list, id)
}

func (s *Session) resetForm() (string, error) {
	list, err := s.pickList("Reset which list?")
	if err != nil {
		return "", err
	}
	return s.Reset(list)
}

func (s *Session) quizAction() (string, error) {
	_, err := quiz.Run(s.stores.Cards, s.in, s.out, quiz.Options{Shuffle: true})
	return "", err
}

func (s *Session) overviewAction() (string, error) {
	return s.Overview(), nil
}

func (s *Session) pickList(title string) (string, error) {
	var list string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(s.registry.Names()...)...).
			Value(&list),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return list, nil
}

func (s *Session) pickItem(title string) (list, id string, err error) {
	list, err = s.pickList(title)
	if err != nil {
		return "", "", err
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Item id").Value(&id).
			Validate(validatePositiveInt),
	))
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return list, id, nil
}

func notBlank(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validatePositiveInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateOptionalPositiveInt(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return validatePositiveInt(v)
}
