package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getlistd/listd/pkg/entry"
	"github.com/getlistd/listd/pkg/keeper"
)

// AddTask creates a task and returns the confirmation message.
func (s *Session) AddTask(title, notes string) (string, error) {
	it, err := s.stores.Tasks.Create(entry.Task{Title: title, Notes: notes})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created task #%d: %s", it.ID, it.Fields.Summary()), nil
}

// AddGrocery creates a grocery item from form values.
func (s *Session) AddGrocery(name, quantity, unit string) (string, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return "", &keeper.ValidationError{Kind: "grocery", Field: "quantity", Message: "quantity must be a number"}
	}
	it, err := s.stores.Groceries.Create(entry.Grocery{Name: name, Quantity: qty, Unit: unit})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created grocery #%d: %s", it.ID, it.Fields.Summary()), nil
}

// AddCard creates a quiz card. An empty points value defaults to 1.
func (s *Session) AddCard(prompt, answer, points string) (string, error) {
	pts := 0
	if strings.TrimSpace(points) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(points))
		if err != nil {
			return "", &keeper.ValidationError{Kind: "card", Field: "points", Message: "points must be a number"}
		}
		pts = parsed
	}
	it, err := s.stores.Cards.Create(entry.NewCard(prompt, answer, pts))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created card #%d: %s", it.ID, it.Fields.Summary()), nil
}

// MarkDone transitions an item's done flag. A fresh transition and an
// already-done item get deliberately different wording; only the former
// changed anything.
func (s *Session) MarkDone(list, idStr string) (string, error) {
	id, err := parseID(idStr)
	if err != nil {
		return "", err
	}

	var msg string
	err = withKeeper(s, list, func(k doneTarget) error {
		m, err := k.done(id)
		msg = m
		return err
	})
	if err != nil {
		return "", err
	}
	return msg, nil
}

// Delete removes an item and confirms with its summary. The id is retired
// for good.
func (s *Session) Delete(list, idStr string) (string, error) {
	id, err := parseID(idStr)
	if err != nil {
		return "", err
	}

	var msg string
	err = withKeeper(s, list, func(k doneTarget) error {
		m, err := k.remove(id)
		msg = m
		return err
	})
	if err != nil {
		return "", err
	}
	return msg, nil
}

// ListItems renders a list's items as checkbox lines.
func (s *Session) ListItems(list string) (string, error) {
	var lines []string
	err := withKeeper(s, list, func(k doneTarget) error {
		lines = k.render()
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return fmt.Sprintf("The %s list is empty.", list), nil
	}
	return strings.Join(lines, "\n"), nil
}

// Reset restores a list to its configured seeds.
func (s *Session) Reset(list string) (string, error) {
	l := s.registry.Get(list)
	if l == nil {
		return "", fmt.Errorf("unknown list %q", list)
	}
	n := l.Reset()
	return fmt.Sprintf("Reset %s: %d seed item(s) restored with fresh ids.", list, n), nil
}

// Overview renders one line per registered list.
func (s *Session) Overview() string {
	ov := s.registry.Overview()
	lines := make([]string, 0, len(ov.Lists)+1)
	for _, info := range ov.Lists {
		lines = append(lines, fmt.Sprintf("%-10s %3d item(s), %d done", info.Name, info.Items, info.Done))
	}
	lines = append(lines, fmt.Sprintf("%d list(s), %d item(s) total", ov.Total, ov.TotalItems))
	return strings.Join(lines, "\n")
}

func parseID(idStr string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("id must be a positive integer, got %q", idStr)
	}
	return id, nil
}

// doneTarget is the type-erased slice of keeper behavior the console needs
// per list. kindOps builds one per concrete keeper.
type doneTarget struct {
	done   func(int64) (string, error)
	remove func(int64) (string, error)
	render func() []string
}

func withKeeper(s *Session, list string, fn func(doneTarget) error) error {
	switch list {
	case "tasks":
		return fn(kindOps(s.stores.Tasks))
	case "groceries":
		return fn(kindOps(s.stores.Groceries))
	case "cards":
		return fn(kindOps(s.stores.Cards))
	default:
		return fmt.Errorf("unknown list %q", list)
	}
}

func kindOps[T keeper.Entry](k *keeper.Keeper[T]) doneTarget {
	return doneTarget{
		done: func(id int64) (string, error) {
			it, err := k.MarkDone(id)
			if err != nil {
				var already *keeper.AlreadyDoneError
				if errors.As(err, &already) {
					return fmt.Sprintf("%s #%d was already %s; nothing changed.",
						titleKind(already.Kind), already.ID, already.Verb), nil
				}
				return "", err
			}
			return fmt.Sprintf("%s #%d %s: %s",
				titleKind(k.Kind()), it.ID, it.Fields.DoneVerb(), it.Fields.Summary()), nil
		},
		remove: func(id int64) (string, error) {
			it, err := k.Delete(id)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted %s #%d: %s (id retired)",
				k.Kind(), it.ID, it.Fields.Summary()), nil
		},
		render: func() []string {
			items := k.List()
			lines := make([]string, 0, len(items))
			for _, it := range items {
				box := "[ ]"
				if it.Done {
					box = "[x]"
				}
				lines = append(lines, fmt.Sprintf("%s #%d %s", box, it.ID, it.Fields.Summary()))
			}
			return lines
		},
	}
}

func titleKind(kind string) string {
	if kind == "" {
		return kind
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
