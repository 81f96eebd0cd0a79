package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getlistd/listd/pkg/entry"
	"github.com/getlistd/listd/pkg/keeper"
	"github.com/getlistd/listd/pkg/portability"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	stores := &portability.Stores{
		Tasks:     keeper.New[entry.Task]("tasks"),
		Groceries: keeper.New[entry.Grocery]("groceries"),
		Cards:     keeper.New[entry.Card]("cards"),
	}
	registry := keeper.NewRegistry()
	require.NoError(t, registry.Register(stores.Tasks))
	require.NoError(t, registry.Register(stores.Groceries))
	require.NoError(t, registry.Register(stores.Cards))
	return New(stores, registry, strings.NewReader(""), &strings.Builder{})
}

func TestAddTask(t *testing.T) {
	s := newSession(t)
	msg, err := s.AddTask("Write report", "by Friday")
	require.NoError(t, err)
	assert.Equal(t, "Created task #1: Write report — by Friday", msg)

	_, err = s.AddTask("   ", "")
	require.Error(t, err)
	var verr *keeper.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestAddGrocery(t *testing.T) {
	s := newSession(t)
	msg, err := s.AddGrocery("Milk", "2", "l")
	require.NoError(t, err)
	assert.Equal(t, "Created grocery #1: Milk x2 l", msg)

	_, err = s.AddGrocery("Milk", "two", "")
	require.Error(t, err)
	_, err = s.AddGrocery("Milk", "0", "")
	require.Error(t, err)
}

func TestAddCardDefaultsPoints(t *testing.T) {
	s := newSession(t)
	msg, err := s.AddCard("2+2?", "4", "")
	require.NoError(t, err)
	assert.Equal(t, "Created card #1: 2+2? (1 pt)", msg)

	msg, err = s.AddCard("3+3?", "6", "5")
	require.NoError(t, err)
	assert.Contains(t, msg, "(5 pt)")
}

func TestMarkDoneWordsTheTwoOutcomes(t *testing.T) {
	s := newSession(t)
	_, err := s.AddGrocery("Milk", "2", "l")
	require.NoError(t, err)

	msg, err := s.MarkDone("groceries", "1")
	require.NoError(t, err)
	assert.Equal(t, "Grocery #1 purchased: Milk x2 l", msg)

	// Second transition changes nothing and says so.
	msg, err = s.MarkDone("groceries", "1")
	require.NoError(t, err)
	assert.Equal(t, "Grocery #1 was already purchased; nothing changed.", msg)

	it, err := s.stores.Groceries.Get(1)
	require.NoError(t, err)
	assert.True(t, it.Done, "flag stays set")
}

func TestMarkDoneErrors(t *testing.T) {
	s := newSession(t)
	_, err := s.MarkDone("groceries", "99")
	require.Error(t, err)
	var nf *keeper.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = s.MarkDone("groceries", "abc")
	require.Error(t, err)

	_, err = s.MarkDone("chores", "1")
	require.Error(t, err)
}

func TestDeleteRetiresID(t *testing.T) {
	s := newSession(t)
	_, err := s.AddTask("temp", "")
	require.NoError(t, err)

	msg, err := s.Delete("tasks", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted task #1: temp (id retired)", msg)

	// Deleting again is a not-found, and the next create skips the id.
	_, err = s.Delete("tasks", "1")
	require.Error(t, err)
	msg, err = s.AddTask("next", "")
	require.NoError(t, err)
	assert.Contains(t, msg, "#2")
}

func TestListItems(t *testing.T) {
	s := newSession(t)
	msg, err := s.ListItems("tasks")
	require.NoError(t, err)
	assert.Equal(t, "The tasks list is empty.", msg)

	_, err = s.AddTask("one", "")
	require.NoError(t, err)
	_, err = s.AddTask("two", "")
	require.NoError(t, err)
	_, err = s.MarkDone("tasks", "2")
	require.NoError(t, err)

	msg, err = s.ListItems("tasks")
	require.NoError(t, err)
	assert.Equal(t, "[ ] #1 one\n[x] #2 two", msg)
}

func TestResetAndOverview(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.stores.Tasks.SetSeeds([]entry.Task{{Title: "seeded"}}))

	_, err := s.AddTask("scratch", "")
	require.NoError(t, err)

	msg, err := s.Reset("tasks")
	require.NoError(t, err)
	assert.Equal(t, "Reset tasks: 1 seed item(s) restored with fresh ids.", msg)

	_, err = s.Reset("chores")
	require.Error(t, err)

	ov := s.Overview()
	assert.Contains(t, ov, "tasks")
	assert.Contains(t, ov, "3 list(s), 1 item(s) total")
}
