package container

import "fmt"

// Memory is a slice-backed container with remove-then-reinsert move
// semantics, the same contract a real playlist service exposes. Tests use
// it to simulate applying a plan; the snapshot store reuses its splice
// helper so "apply one move" is defined in exactly one place.
type Memory struct {
	entries []Entry
}

// NewMemory builds an in-memory container from entries in listing order.
// Positions are assigned from the slice order; any Position values on the
// input are ignored.
func NewMemory(entries ...Entry) *Memory {
	m := &Memory{entries: make([]Entry, len(entries))}
	copy(m.entries, entries)
	for i := range m.entries {
		m.entries[i].Position = i
	}
	return m
}

func (m *Memory) Count() int {
	return len(m.entries)
}

func (m *Memory) EntryKind(i int) Kind {
	return m.entries[i].Kind
}

func (m *Memory) EntryName(i int) string {
	return m.entries[i].Name
}

func (m *Memory) IsLoaded(i int) bool {
	return m.entries[i].Loaded
}

// Move relocates the entry at from so it ends up at to.
func (m *Memory) Move(from, to int) error {
	if err := splice(m.entries, from, to); err != nil {
		return err
	}
	for i := range m.entries {
		m.entries[i].Position = i
	}
	return nil
}

// Entries returns a copy of the current listing.
func (m *Memory) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Names returns the entry names in current listing order. Markers without
// a name contribute an empty string.
func (m *Memory) Names() []string {
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.Name
	}
	return names
}

// splice removes entries[from] and reinserts it at to, shifting the
// entries in between by one. This is the single definition of the move
// primitive's semantics.
func splice(entries []Entry, from, to int) error {
	n := len(entries)
	if from < 0 || from >= n {
		return fmt.Errorf("move source %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return fmt.Errorf("move destination %d out of range [0,%d)", to, n)
	}
	e := entries[from]
	switch {
	case from < to:
		copy(entries[from:to], entries[from+1:to+1])
	case from > to:
		copy(entries[to+1:from+1], entries[to:from])
	}
	entries[to] = e
	return nil
}
