package userdata

import (
	"sync"
)

// Handle is an opaque reference to a boxed value in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Table boxes host values behind uint32 handles so they can cross the
// native boundary as opaque user-data. Slots freed by Remove are reused.
type Table struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
}

type entry struct {
	value any
	valid bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// Insert boxes a value and returns its handle.
func (t *Table) Insert(value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := entry{value: value, valid: true}

	if len(t.freeList) > 0 {
		handle := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
		return handle
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

// Get retrieves a boxed value by handle.
func (t *Table) Get(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// Remove unboxes a value and frees its slot, returning (value, true) if found.
// The slot is recycled by a later Insert; a handle held past Remove
// would alias the new occupant and must not be used again.
func (t *Table) Remove(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}

	t.entries[idx] = entry{}
	t.freeList = append(t.freeList, handle)
	return e.value, true
}

// Len returns the number of boxed values.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// Clear removes all boxed values. All outstanding handles are dead
// after Clear and later Inserts reissue the same handle values.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = t.entries[:0]
	t.freeList = t.freeList[:0]
}

var defaultTable = NewTable()

// Default returns the process-wide table used when no explicit table
// is wired through the boundary.
func Default() *Table {
	return defaultTable
}
