package keeper

import (
	"fmt"
	"sync"
	"time"
)

// Keeper owns the authoritative in-memory collection of items of one entry
// kind. Items are held in insertion order and indexed by id. The id counter
// is a per-instance field: it starts at 0, every Create assigns lastID+1,
// and it never decreases, so ids are unique for the lifetime of the keeper
// even across deletions.
//
// The keeper is safe for concurrent use, but the intended usage is a single
// logical owner (one console session, one server registry).
type Keeper[T Entry] struct {
	mu     sync.RWMutex
	name   string
	kind   string
	lastID int64
	order  []*Item[T]
	index  map[int64]*Item[T]
	seeds  []T
}

// New creates an empty keeper with the given list name. The entry kind is
// taken from the zero value of T.
func New[T Entry](name string) *Keeper[T] {
	var zero T
	return &Keeper[T]{
		name:  name,
		kind:  zero.Kind(),
		index: make(map[int64]*Item[T]),
	}
}

// Create validates fields and, on success, appends a new item with the next
// id. On validation failure the collection is unchanged and the returned
// error is a *ValidationError.
func (k *Keeper[T]) Create(fields T) (*Item[T], error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.lastID++
	now := time.Now()
	it := &Item[T]{
		ID:        k.lastID,
		CreatedAt: now,
		UpdatedAt: now,
		Fields:    fields,
	}
	k.order = append(k.order, it)
	k.index[it.ID] = it
	return it.clone(), nil
}

// List returns all live items in insertion order. The returned items are
// copies; mutating them does not affect keeper state.
func (k *Keeper[T]) List() []*Item[T] {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]*Item[T], len(k.order))
	for i, it := range k.order {
		out[i] = it.clone()
	}
	return out
}

// Query filters, sorts, and paginates the live items.
func (k *Keeper[T]) Query(filter *QueryFilter) (*Page[T], error) {
	if filter == nil {
		filter = DefaultQueryFilter()
	}

	items := k.List()
	items = FilterDone(items, filter.Done)

	if filter.Where != "" {
		var err error
		items, err = Where(items, filter.Where)
		if err != nil {
			return nil, err
		}
	}

	if filter.Sort != "" {
		SortItems(items, filter.Sort, filter.Order)
	}

	page, total := Paginate(items, filter.Offset, filter.Limit)
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	return &Page[T]{
		Items: page,
		Meta: PageMeta{
			Total:  total,
			Limit:  limit,
			Offset: offset,
			Count:  len(page),
		},
	}, nil
}

// Get returns a copy of the item with the given id, or a *NotFoundError.
func (k *Keeper[T]) Get(id int64) (*Item[T], error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	it, ok := k.index[id]
	if !ok {
		return nil, &NotFoundError{Kind: k.kind, ID: id}
	}
	return it.clone(), nil
}

// Update replaces the item's fields after validating the replacement.
// The id, done flag, and CreatedAt are preserved; UpdatedAt is bumped.
func (k *Keeper[T]) Update(id int64, fields T) (*Item[T], error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	it, ok := k.index[id]
	if !ok {
		return nil, &NotFoundError{Kind: k.kind, ID: id}
	}
	it.Fields = fields
	it.UpdatedAt = time.Now()
	return it.clone(), nil
}

// MarkDone sets the item's lifecycle flag. Marking an already-done item is
// a data no-op reported as *AlreadyDoneError so callers can word the two
// outcomes differently; the flag stays true either way.
func (k *Keeper[T]) MarkDone(id int64) (*Item[T], error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	it, ok := k.index[id]
	if !ok {
		return nil, &NotFoundError{Kind: k.kind, ID: id}
	}
	if it.Done {
		return nil, &AlreadyDoneError{Kind: k.kind, ID: id, Verb: it.Fields.DoneVerb()}
	}

	now := time.Now()
	it.Done = true
	it.CompletedAt = &now
	it.UpdatedAt = now
	return it.clone(), nil
}

// Delete removes the item and returns a snapshot of it for confirmation
// messaging. The id is permanently retired: the counter never rolls back,
// so no later Create reuses it.
func (k *Keeper[T]) Delete(id int64) (*Item[T], error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	it, ok := k.index[id]
	if !ok {
		return nil, &NotFoundError{Kind: k.kind, ID: id}
	}
	delete(k.index, id)
	for i, o := range k.order {
		if o.ID == id {
			k.order = append(k.order[:i], k.order[i+1:]...)
			break
		}
	}
	return it, nil
}

// Count returns the number of live items.
func (k *Keeper[T]) Count() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.order)
}

// DoneCount returns the number of live items with the done flag set.
func (k *Keeper[T]) DoneCount() int {
	k.mu.RLock()
	defer k.mu.RUnlock()

	n := 0
	for _, it := range k.order {
		if it.Done {
			n++
		}
	}
	return n
}

// Name returns the list name.
func (k *Keeper[T]) Name() string { return k.name }

// Kind returns the entry kind the keeper holds.
func (k *Keeper[T]) Kind() string { return k.kind }

// Info returns a snapshot of the keeper's state.
func (k *Keeper[T]) Info() ListInfo {
	k.mu.RLock()
	defer k.mu.RUnlock()

	done := 0
	for _, it := range k.order {
		if it.Done {
			done++
		}
	}
	return ListInfo{
		Name:   k.name,
		Kind:   k.kind,
		Items:  len(k.order),
		Done:   done,
		Seeds:  len(k.seeds),
		LastID: k.lastID,
	}
}

// SetSeeds validates and stores the seed entries used by Reset. Invalid
// seeds are rejected up front so Reset cannot fail later.
func (k *Keeper[T]) SetSeeds(seeds []T) error {
	for i, s := range seeds {
		if err := s.Validate(); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				verr.Message = fmt.Sprintf("%s (seed index %d)", verr.Message, i)
				return verr
			}
			return err
		}
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.seeds = seeds
	return nil
}

// Reset drops all items and re-creates the seed entries. Fresh ids continue
// from the current counter; ids of dropped items are never reissued.
// Returns the new item count.
func (k *Keeper[T]) Reset() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.order = nil
	k.index = make(map[int64]*Item[T])

	now := time.Now()
	for _, s := range k.seeds {
		k.lastID++
		it := &Item[T]{
			ID:        k.lastID,
			CreatedAt: now,
			UpdatedAt: now,
			Fields:    s,
		}
		k.order = append(k.order, it)
		k.index[it.ID] = it
	}
	return len(k.order)
}

// Clear drops all items without restoring seeds. Returns the number removed.
func (k *Keeper[T]) Clear() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	n := len(k.order)
	k.order = nil
	k.index = make(map[int64]*Item[T])
	return n
}
