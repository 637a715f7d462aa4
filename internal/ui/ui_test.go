package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crate/internal/container"
)

// memStore wraps the in-memory container with a synced timestamp.
type memStore struct {
	*container.Memory
	syncedAt time.Time
}

func (s *memStore) SyncedAt() time.Time {
	return s.syncedAt
}

func newTestStore(entries ...container.Entry) *memStore {
	return &memStore{
		Memory:   container.NewMemory(entries...),
		syncedAt: time.Now().Add(-time.Hour),
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_PlansImmediately(t *testing.T) {
	m := New(newTestStore(container.Item("b"), container.Item("a")), false)

	if m.Plan() == nil {
		t.Fatal("expected a plan")
	}
	if len(m.Plan().Moves) != 1 {
		t.Errorf("len(Moves) = %d, want 1", len(m.Plan().Moves))
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	m := New(newTestStore(container.Item("a")), false)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("cmd() = %v, want tea.QuitMsg", msg)
	}
}

func TestUpdate_ApplyReorders(t *testing.T) {
	store := newTestStore(
		container.Item("cherry"),
		container.Item("apple"),
		container.Item("banana"),
	)
	m := New(store, false)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	wantNames := []string{"apple", "banana", "cherry"}
	for i, want := range wantNames {
		if got := store.EntryName(i); got != want {
			t.Errorf("store[%d] = %q, want %q", i, got, want)
		}
	}
	if !m.Plan().InOrder() {
		t.Error("plan after apply should be in order")
	}
	if !strings.Contains(m.status, "Applied 2 moves") {
		t.Errorf("status = %q, want applied message", m.status)
	}
}

func TestUpdate_DryRunDoesNotApply(t *testing.T) {
	store := newTestStore(container.Item("b"), container.Item("a"))
	m := New(store, true)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)

	if got := store.EntryName(0); got != "b" {
		t.Errorf("store[0] = %q, dry run must not mutate", got)
	}
	if !strings.Contains(m.status, "Dry run") {
		t.Errorf("status = %q, want dry run message", m.status)
	}
}

func TestUpdate_ReplanAfterExternalChange(t *testing.T) {
	store := newTestStore(container.Item("a"), container.Item("b"))
	m := New(store, false)

	if !m.Plan().InOrder() {
		t.Fatal("initial listing should already be in order")
	}

	// Simulate an external mutation, then replan.
	if err := store.Move(1, 0); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	updated, _ := m.Update(keyMsg("r"))
	m = updated.(Model)

	if m.Plan().InOrder() {
		t.Error("replan should pick up the external change")
	}
}

func TestView_ShowsListingAndPlan(t *testing.T) {
	m := New(newTestStore(
		container.FolderStart("mixes"),
		container.Item("workout"),
		container.FolderEnd(),
		container.Item("ambient"),
	), false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"mixes", "workout", "ambient", "Current", "Planned", "moves planned"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_NotReadyError(t *testing.T) {
	m := New(newTestStore(container.UnloadedItem("pending")), false)

	view := m.View()
	if !strings.Contains(view, "Failed to plan reorder") {
		t.Errorf("view should surface the plan error, got %q", view)
	}
}
