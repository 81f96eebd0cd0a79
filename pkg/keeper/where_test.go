package keeper

import (
	"errors"
	"testing"
)

func TestWhere(t *testing.T) {
	k := seedNotes(t)

	tests := []struct {
		name string
		expr string
		want []int64
	}{
		{"by field", `text == "apple"`, []int64{2}},
		{"by envelope", `done`, []int64{2}},
		{"by id", `id > 1`, []int64{2, 3}},
		{"numeric field", `rank >= 2`, []int64{1, 2}},
		{"nested fields map", `fields.rank == 1`, []int64{3}},
		{"no match", `text == "durian"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Where(k.List(), tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", gotIDs, tt.want)
			}
			for i := range tt.want {
				if gotIDs[i] != tt.want[i] {
					t.Fatalf("ids = %v, want %v", gotIDs, tt.want)
				}
			}
		})
	}
}

func TestWhereCompileError(t *testing.T) {
	k := seedNotes(t)

	_, err := Where(k.List(), `text ==`)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *ValidationError", err)
	}
	if verr.Field != "where" {
		t.Errorf("field = %q", verr.Field)
	}
}

func TestWhereCacheReuse(t *testing.T) {
	k := seedNotes(t)

	// Same expression twice; the second run must hit the compile cache and
	// still evaluate correctly.
	for i := 0; i < 2; i++ {
		got, err := Where(k.List(), `rank > 1`)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("run %d: got %v", i, ids(got))
		}
	}
}
