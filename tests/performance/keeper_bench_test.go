package performance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getlistd/listd/pkg/entry"
	"github.com/getlistd/listd/pkg/keeper"
)

func seededKeeper(n int) *keeper.Keeper[entry.Task] {
	k := keeper.New[entry.Task]("tasks")
	for i := 0; i < n; i++ {
		_, _ = k.Create(entry.Task{
			Title: fmt.Sprintf("Task %d", i),
			Notes: fmt.Sprintf("batch-%d", i/1000),
		})
	}
	return k
}

// BenchmarkList10000Items measures a full-list snapshot at 10,000 items.
func BenchmarkList10000Items(b *testing.B) {
	k := seededKeeper(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		items := k.List()
		if len(items) != 10000 {
			b.Fatalf("expected 10000 items, got %d", len(items))
		}
	}
}

// BenchmarkQueryFiltered10000Items measures a where-filtered query over
// 10,000 items.
func BenchmarkQueryFiltered10000Items(b *testing.B) {
	k := seededKeeper(10000)
	filter := &keeper.QueryFilter{Where: `fields.notes == "batch-3"`}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		page, err := k.Query(filter)
		if err != nil {
			b.Fatalf("query failed: %v", err)
		}
		if page.Meta.Total != 1000 {
			b.Fatalf("expected 1000 matches, got %d", page.Meta.Total)
		}
	}
}

func BenchmarkCreate(b *testing.B) {
	k := keeper.New[entry.Task]("tasks")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := k.Create(entry.Task{Title: "bench"}); err != nil {
			b.Fatalf("create failed: %v", err)
		}
	}
}

func BenchmarkFindByID(b *testing.B) {
	k := seededKeeper(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := k.Get(int64(i%10000) + 1); err != nil {
			b.Fatalf("get failed: %v", err)
		}
	}
}

// BenchmarkReset10000Items measures restoring seeds over a fully loaded
// list. Reset must stay fast regardless of how many items accumulated.
func BenchmarkReset10000Items(b *testing.B) {
	k := seededKeeper(10000)
	if err := k.SetSeeds([]entry.Task{{Title: "seed"}}); err != nil {
		b.Fatalf("set seeds: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		start := time.Now()
		if restored := k.Reset(); restored != 1 {
			b.Fatalf("expected 1 seed restored, got %d", restored)
		}
		if d := time.Since(start); d > 100*time.Millisecond {
			b.Errorf("reset took too long: %v", d)
		}
		// Refill so every iteration resets a loaded list.
		b.StopTimer()
		for j := 0; j < 10000; j++ {
			_, _ = k.Create(entry.Task{Title: "refill"})
		}
		b.StartTimer()
	}
}

// TestQueryPerformance10000Items validates that a filtered query over 10K
// items stays under half a second.
func TestQueryPerformance10000Items(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	k := seededKeeper(10000)
	filter := &keeper.QueryFilter{Where: `fields.notes == "batch-5"`, Sort: "title"}

	var total time.Duration
	iterations := 5
	for i := 0; i < iterations; i++ {
		start := time.Now()
		page, err := k.Query(filter)
		total += time.Since(start)
		require.NoError(t, err)
		require.Equal(t, 1000, page.Meta.Total)
	}

	avg := total / time.Duration(iterations)
	t.Logf("average filtered query time for 10K items: %v", avg)
	assert.Less(t, avg, 500*time.Millisecond)
}
