package keeper

import (
	"fmt"
	"sort"
	"sync"
)

// List is the type-erased view of a keeper that the registry manages.
// *Keeper[T] satisfies it for any entry kind.
type List interface {
	Name() string
	Kind() string
	Count() int
	DoneCount() int
	Reset() int
	Clear() int
	Info() ListInfo
}

// Registry is a named collection of keepers of mixed entry kinds.
type Registry struct {
	mu    sync.RWMutex
	lists map[string]List
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{lists: make(map[string]List)}
}

// Register adds a list under its name. Duplicate names are rejected.
func (r *Registry) Register(l List) error {
	if l == nil {
		return fmt.Errorf("list cannot be nil")
	}
	if l.Name() == "" {
		return fmt.Errorf("list name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.lists[l.Name()]; exists {
		return fmt.Errorf("list %q already registered", l.Name())
	}
	r.lists[l.Name()] = l
	return nil
}

// Get returns the list with the given name, or nil.
func (r *Registry) Get(name string) List {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lists[name]
}

// Names returns all registered list names in sorted order for
// deterministic output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.lists))
	for name := range r.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Overview summarizes every registered list.
func (r *Registry) Overview() *Overview {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.lists))
	for name := range r.lists {
		names = append(names, name)
	}
	sort.Strings(names)

	ov := &Overview{Total: len(names)}
	for _, name := range names {
		info := r.lists[name].Info()
		ov.Lists = append(ov.Lists, info)
		ov.TotalItems += info.Items
		ov.TotalDone += info.Done
	}
	return ov
}

// ResetAll resets every list to its seeds and returns per-list new counts.
func (r *Registry) ResetAll() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int, len(r.lists))
	for name, l := range r.lists {
		counts[name] = l.Reset()
	}
	return counts
}

// ClearAll clears every list and returns per-list removed counts.
func (r *Registry) ClearAll() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int, len(r.lists))
	for name, l := range r.lists {
		counts[name] = l.Clear()
	}
	return counts
}

// TotalItems returns the number of live items across all lists.
func (r *Registry) TotalItems() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, l := range r.lists {
		total += l.Count()
	}
	return total
}
