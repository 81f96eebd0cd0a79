package keeper

import (
	"errors"
	"strings"
	"testing"
)

// note is a minimal entry used to exercise the keeper without depending on
// the concrete kinds in pkg/entry.
type note struct {
	Text string `json:"text"`
	Rank int    `json:"rank,omitempty"`
}

func (n note) Kind() string { return "note" }

func (n note) Validate() error {
	if strings.TrimSpace(n.Text) == "" {
		return &ValidationError{Kind: "note", Field: "text", Message: "text is required"}
	}
	return nil
}

func (n note) Summary() string  { return n.Text }
func (n note) DoneVerb() string { return "filed" }

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	k := New[note]("notes")

	for i := 1; i <= 5; i++ {
		it, err := k.Create(note{Text: "n"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if it.ID != int64(i) {
			t.Errorf("create %d: got id %d", i, it.ID)
		}
	}
	if k.Count() != 5 {
		t.Errorf("count = %d, want 5", k.Count())
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := New[note]("notes")
			if _, err := k.Create(note{Text: "keep"}); err != nil {
				t.Fatal(err)
			}

			_, err := k.Create(note{Text: tt.text})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want *ValidationError", err)
			}
			if verr.Field != "text" {
				t.Errorf("field = %q, want text", verr.Field)
			}
			if k.Count() != 1 {
				t.Errorf("count = %d after rejected create, want 1", k.Count())
			}
		})
	}
}

func TestRejectedCreateDoesNotAdvanceIDs(t *testing.T) {
	k := New[note]("notes")

	if _, err := k.Create(note{Text: "first"}); err != nil {
		t.Fatal(err)
	}
	if _, err := k.Create(note{}); err == nil {
		t.Fatal("expected validation error")
	}
	it, err := k.Create(note{Text: "second"})
	if err != nil {
		t.Fatal(err)
	}
	if it.ID != 2 {
		t.Errorf("id after rejected create = %d, want 2", it.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	k := New[note]("notes")

	_, err := k.Get(42)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want *NotFoundError", err)
	}
	if nf.Kind != "note" || nf.ID != 42 {
		t.Errorf("NotFoundError = %+v", nf)
	}
}

func TestListInsertionOrder(t *testing.T) {
	k := New[note]("notes")
	if got := k.List(); len(got) != 0 {
		t.Fatalf("fresh keeper list = %d items", len(got))
	}

	texts := []string{"c", "a", "b"}
	for _, s := range texts {
		if _, err := k.Create(note{Text: s}); err != nil {
			t.Fatal(err)
		}
	}

	got := k.List()
	if len(got) != len(texts) {
		t.Fatalf("len = %d, want %d", len(got), len(texts))
	}
	for i, it := range got {
		if it.Fields.Text != texts[i] {
			t.Errorf("item %d = %q, want %q", i, it.Fields.Text, texts[i])
		}
	}
}

func TestListReturnsCopies(t *testing.T) {
	k := New[note]("notes")
	if _, err := k.Create(note{Text: "original"}); err != nil {
		t.Fatal(err)
	}

	k.List()[0].Fields.Text = "mutated"

	it, err := k.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if it.Fields.Text != "original" {
		t.Error("caller mutation leaked into keeper state")
	}
}

func TestMarkDoneTwice(t *testing.T) {
	k := New[note]("notes")
	if _, err := k.Create(note{Text: "n"}); err != nil {
		t.Fatal(err)
	}

	it, err := k.MarkDone(1)
	if err != nil {
		t.Fatalf("first MarkDone: %v", err)
	}
	if !it.Done || it.CompletedAt == nil {
		t.Errorf("first MarkDone: done=%v completedAt=%v", it.Done, it.CompletedAt)
	}

	_, err = k.MarkDone(1)
	var already *AlreadyDoneError
	if !errors.As(err, &already) {
		t.Fatalf("second MarkDone: got %v, want *AlreadyDoneError", err)
	}
	if already.Verb != "filed" {
		t.Errorf("verb = %q", already.Verb)
	}

	// Flag stays true after both calls.
	got, err := k.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Done {
		t.Error("done flag lost after AlreadyDoneError")
	}
}

func TestMarkDoneNotFound(t *testing.T) {
	k := New[note]("notes")
	var nf *NotFoundError
	if _, err := k.MarkDone(7); !errors.As(err, &nf) {
		t.Fatalf("got %v, want *NotFoundError", err)
	}
}

func TestDeleteRetiresID(t *testing.T) {
	k := New[note]("notes")
	if _, err := k.Create(note{Text: "doomed"}); err != nil {
		t.Fatal(err)
	}

	removed, err := k.Delete(1)
	if err != nil {
		t.Fatal(err)
	}
	if removed.Fields.Text != "doomed" {
		t.Errorf("delete snapshot = %+v", removed.Fields)
	}

	var nf *NotFoundError
	if _, err := k.Get(1); !errors.As(err, &nf) {
		t.Fatalf("Get after delete: got %v, want *NotFoundError", err)
	}
	if _, err := k.Delete(1); !errors.As(err, &nf) {
		t.Fatalf("second delete: got %v, want *NotFoundError", err)
	}

	// Id 1 is never reissued.
	it, err := k.Create(note{Text: "next"})
	if err != nil {
		t.Fatal(err)
	}
	if it.ID != 2 {
		t.Errorf("id after delete = %d, want 2", it.ID)
	}
}

func TestUpdate(t *testing.T) {
	k := New[note]("notes")
	if _, err := k.Create(note{Text: "before"}); err != nil {
		t.Fatal(err)
	}

	it, err := k.Update(1, note{Text: "after", Rank: 3})
	if err != nil {
		t.Fatal(err)
	}
	if it.Fields.Text != "after" || it.Fields.Rank != 3 {
		t.Errorf("updated fields = %+v", it.Fields)
	}

	var verr *ValidationError
	if _, err := k.Update(1, note{}); !errors.As(err, &verr) {
		t.Fatalf("invalid update: got %v, want *ValidationError", err)
	}
	var nf *NotFoundError
	if _, err := k.Update(9, note{Text: "x"}); !errors.As(err, &nf) {
		t.Fatalf("missing update: got %v, want *NotFoundError", err)
	}
}

// TestTaskScenario walks the canonical create/complete/delete sequence.
func TestLifecycleScenario(t *testing.T) {
	k := New[note]("notes")

	it, err := k.Create(note{Text: "Write code"})
	if err != nil {
		t.Fatal(err)
	}
	if it.ID != 1 || it.Fields.Text != "Write code" {
		t.Fatalf("created = %+v", it)
	}

	if _, err := k.Create(note{Text: ""}); err == nil {
		t.Fatal("blank create accepted")
	}
	if k.Count() != 1 {
		t.Fatalf("count = %d, want 1", k.Count())
	}

	if it, err = k.MarkDone(1); err != nil || !it.Done {
		t.Fatalf("MarkDone: item=%+v err=%v", it, err)
	}
	var already *AlreadyDoneError
	if _, err := k.MarkDone(1); !errors.As(err, &already) {
		t.Fatalf("repeat MarkDone: %v", err)
	}

	removed, err := k.Delete(1)
	if err != nil || removed.ID != 1 {
		t.Fatalf("Delete: item=%+v err=%v", removed, err)
	}
	var nf *NotFoundError
	if _, err := k.Get(1); !errors.As(err, &nf) {
		t.Fatalf("Get after delete: %v", err)
	}
}

func TestSeedsAndReset(t *testing.T) {
	k := New[note]("notes")
	if err := k.SetSeeds([]note{{Text: "a"}, {Text: "b"}}); err != nil {
		t.Fatal(err)
	}

	if n := k.Reset(); n != 2 {
		t.Fatalf("reset = %d, want 2", n)
	}
	if _, err := k.Create(note{Text: "c"}); err != nil {
		t.Fatal(err)
	}

	// Second reset drops the extra item and continues the counter.
	if n := k.Reset(); n != 2 {
		t.Fatalf("second reset = %d, want 2", n)
	}
	items := k.List()
	if items[0].ID != 4 || items[1].ID != 5 {
		t.Errorf("reset ids = %d, %d (counter must not rewind)", items[0].ID, items[1].ID)
	}
}

func TestSetSeedsRejectsInvalid(t *testing.T) {
	k := New[note]("notes")
	err := k.SetSeeds([]note{{Text: "ok"}, {Text: "  "}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *ValidationError", err)
	}
}

func TestClear(t *testing.T) {
	k := New[note]("notes")
	for _, s := range []string{"a", "b", "c"} {
		if _, err := k.Create(note{Text: s}); err != nil {
			t.Fatal(err)
		}
	}
	if n := k.Clear(); n != 3 {
		t.Errorf("clear = %d, want 3", n)
	}
	if k.Count() != 0 {
		t.Errorf("count after clear = %d", k.Count())
	}
}

func TestInfo(t *testing.T) {
	k := New[note]("inbox")
	if err := k.SetSeeds([]note{{Text: "s"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := k.Create(note{Text: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := k.Create(note{Text: "b"}); err != nil {
		t.Fatal(err)
	}
	if _, err := k.MarkDone(1); err != nil {
		t.Fatal(err)
	}

	info := k.Info()
	want := ListInfo{Name: "inbox", Kind: "note", Items: 2, Done: 1, Seeds: 1, LastID: 2}
	if info != want {
		t.Errorf("info = %+v, want %+v", info, want)
	}
}
