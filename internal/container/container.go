// Package container models the external ordered collection of playlists
// and playlist folders that a reorder pass reads from and applies moves to.
package container

// Kind classifies one slot of the flat container listing.
type Kind int

const (
	KindItem Kind = iota
	KindFolderStart
	KindFolderEnd
	KindPlaceholder
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindItem:
		return "playlist"
	case KindFolderStart:
		return "folder start"
	case KindFolderEnd:
		return "folder end"
	case KindPlaceholder:
		return "placeholder"
	}
	return "unknown"
}

// Entry is one slot of the flat listing. Position is 0-based and contiguous
// across the whole listing. Name is meaningful for items and folder starts.
type Entry struct {
	Position int
	Kind     Kind
	Name     string
	Loaded   bool
}

// Container is the read side of the external collection: a flat, ordered
// listing where folders appear as paired start/end markers.
type Container interface {
	Count() int
	EntryKind(i int) Kind
	EntryName(i int) string
	IsLoaded(i int) bool
}

// Mover is the write side: relocate the element currently at from so it
// ends up at to, shifting everything in between by one slot.
type Mover interface {
	Move(from, to int) error
}

// Item returns a loaded playlist entry. Position is assigned by the
// container the entry is added to.
func Item(name string) Entry {
	return Entry{Kind: KindItem, Name: name, Loaded: true}
}

// UnloadedItem returns a playlist entry whose metadata has not arrived yet.
func UnloadedItem(name string) Entry {
	return Entry{Kind: KindItem, Name: name}
}

// FolderStart returns a folder start marker.
func FolderStart(name string) Entry {
	return Entry{Kind: KindFolderStart, Name: name, Loaded: true}
}

// FolderEnd returns a folder end marker.
func FolderEnd() Entry {
	return Entry{Kind: KindFolderEnd, Loaded: true}
}

// Placeholder returns an unresolvable slot. Placeholders never sort and
// never move.
func Placeholder() Entry {
	return Entry{Kind: KindPlaceholder, Loaded: true}
}
