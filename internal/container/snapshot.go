package container

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	dbutil "github.com/llehouerou/crate/internal/db"
)

const (
	appName    = "crate"
	dbFileName = "crate.db"
)

// Snapshot is a sqlite-backed container holding the last synced listing of
// the external collection. It implements both Container and Mover: moves
// are applied to the stored listing so a reorder survives across runs.
//
// Placeholders are never written to the listing, so stored positions match
// the active view the move planner works in.
type Snapshot struct {
	db       *sql.DB
	entries  []Entry
	syncedAt time.Time
}

// DefaultPath returns the snapshot database path under the xdg data dir.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// OpenSnapshot opens (creating if needed) the snapshot database at path.
// An empty path means the default xdg location.
func OpenSnapshot(path string) (*Snapshot, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Snapshot{db: db}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Snapshot) Close() error {
	return s.db.Close()
}

func (s *Snapshot) Count() int {
	return len(s.entries)
}

func (s *Snapshot) EntryKind(i int) Kind {
	return s.entries[i].Kind
}

func (s *Snapshot) EntryName(i int) string {
	return s.entries[i].Name
}

func (s *Snapshot) IsLoaded(i int) bool {
	return s.entries[i].Loaded
}

// SyncedAt returns when the listing was last replaced. Zero if the
// snapshot has never been seeded.
func (s *Snapshot) SyncedAt() time.Time {
	return s.syncedAt
}

// Entries returns a copy of the stored listing in position order.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Replace overwrites the stored listing with entries, in slice order.
// Placeholder entries are dropped; positions are reassigned contiguously.
func (s *Snapshot) Replace(entries []Entry) error {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == KindPlaceholder {
			continue
		}
		e.Position = len(kept)
		kept = append(kept, e)
	}

	now := time.Now()
	err := dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM container_entries`); err != nil {
			return err
		}
		if err := insertEntries(tx, kept); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO container_meta (id, synced_at) VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET synced_at = excluded.synced_at
		`, now.Unix())
		return err
	})
	if err != nil {
		return err
	}

	s.entries = kept
	s.syncedAt = now
	return nil
}

// Move relocates the stored entry at from so it ends up at to and persists
// the resulting order.
func (s *Snapshot) Move(from, to int) error {
	reordered := make([]Entry, len(s.entries))
	copy(reordered, s.entries)
	if err := splice(reordered, from, to); err != nil {
		return err
	}
	for i := range reordered {
		reordered[i].Position = i
	}

	err := dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM container_entries`); err != nil {
			return err
		}
		return insertEntries(tx, reordered)
	})
	if err != nil {
		return err
	}

	s.entries = reordered
	return nil
}

func insertEntries(tx *sql.Tx, entries []Entry) error {
	stmt, err := tx.Prepare(`
		INSERT INTO container_entries (position, kind, name, loaded)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Position, int(e.Kind), e.Name, boolToInt(e.Loaded)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Snapshot) load() error {
	rows, err := s.db.Query(`
		SELECT position, kind, name, loaded
		FROM container_entries
		ORDER BY position
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, loaded int
		if err := rows.Scan(&e.Position, &kind, &e.Name, &loaded); err != nil {
			return err
		}
		e.Kind = Kind(kind)
		e.Loaded = loaded != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i, e := range entries {
		if e.Position != i {
			return fmt.Errorf("snapshot listing has gap at position %d (stored %d)", i, e.Position)
		}
	}

	var syncedAt sql.NullInt64
	err = s.db.QueryRow(`SELECT synced_at FROM container_meta WHERE id = 1`).Scan(&syncedAt)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	s.entries = entries
	s.syncedAt = time.Time{}
	if v := dbutil.NullInt64Value(syncedAt); v > 0 {
		s.syncedAt = time.Unix(v, 0)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
