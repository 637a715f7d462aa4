// Package ui is the interactive preview for a reorder pass: current
// listing on the left, planned alphabetical order on the right, apply on
// confirmation.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/crate/internal/container"
	"github.com/llehouerou/crate/internal/errmsg"
	"github.com/llehouerou/crate/internal/sorter"
)

// Store is the container the preview reads and applies moves to.
type Store interface {
	container.Container
	container.Mover
	SyncedAt() time.Time
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	folderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	columnStyle = lipgloss.NewStyle().
			PaddingRight(3)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Apply  key.Binding
	Replan key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Replan: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "replan"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// row is one rendered line of a listing column.
type row struct {
	name   string
	kind   container.Kind
	depth  int
	loaded bool
}

type Model struct {
	store  Store
	dryRun bool

	plan    *sorter.Plan
	planErr error
	status  string

	scroll int
	width  int
	height int
}

// New builds the preview model and computes the initial plan.
func New(store Store, dryRun bool) Model {
	m := Model{store: store, dryRun: dryRun}
	m.replan()
	return m
}

func (m *Model) replan() {
	m.plan, m.planErr = sorter.PlanReorder(m.store)
	m.scroll = 0
}

// Plan returns the current plan, nil when planning failed.
func (m Model) Plan() *sorter.Plan {
	return m.plan
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.scroll > 0 {
				m.scroll--
			}

		case key.Matches(msg, keys.Down):
			if m.scroll < m.maxScroll() {
				m.scroll++
			}

		case key.Matches(msg, keys.Replan):
			m.replan()
			m.status = ""

		case key.Matches(msg, keys.Apply):
			m.apply()
		}
	}
	return m, nil
}

func (m *Model) apply() {
	if m.plan == nil {
		return
	}
	if m.plan.InOrder() {
		m.status = "Already in alphabetical order"
		return
	}
	if m.dryRun {
		m.status = fmt.Sprintf("Dry run: %d moves not applied", len(m.plan.Moves))
		return
	}

	n := len(m.plan.Moves)
	if err := m.plan.Apply(m.store); err != nil {
		m.status = errmsg.Format(errmsg.OpApplyMoves, err)
		m.replan()
		return
	}
	m.replan()
	m.status = fmt.Sprintf("Applied %d moves", n)
}

func (m Model) maxScroll() int {
	n := activeCount(m.store) - m.listHeight()
	if n < 0 {
		return 0
	}
	return n
}

const chromeHeight = 4 // title + column headers + status + hints

func (m Model) listHeight() int {
	h := m.height - chromeHeight
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) View() string {
	var b strings.Builder

	synced := "never synced"
	if !m.store.SyncedAt().IsZero() {
		synced = "synced " + humanize.Time(m.store.SyncedAt())
	}
	title := fmt.Sprintf("crate — %d entries · %s", m.store.Count(), synced)
	if m.dryRun {
		title += " · dry run"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	current := listingRows(m.store)
	left := renderColumn("Current", current, m.scroll, m.listHeight())

	var right string
	if m.plan != nil {
		right = renderColumn("Planned", plannedRows(current, m.plan.Target), m.scroll, m.listHeight())
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columnStyle.Render(left), right))
	b.WriteString("\n")

	switch {
	case m.planErr != nil:
		b.WriteString(errorStyle.Render(errmsg.Format(errmsg.OpPlanReorder, m.planErr)))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	case m.plan.InOrder():
		b.WriteString(statusStyle.Render("Already in alphabetical order"))
	default:
		b.WriteString(statusStyle.Render(fmt.Sprintf("%d moves planned", len(m.plan.Moves))))
	}
	b.WriteString("\n")

	hints := []string{}
	for _, kb := range []key.Binding{keys.Apply, keys.Replan, keys.Up, keys.Down, keys.Quit} {
		h := kb.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	b.WriteString(hintStyle.Render(strings.Join(hints, "  ·  ")))

	return b.String()
}

// listingRows converts the active view of the container (placeholders
// excluded) into display rows with folder depth.
func listingRows(c container.Container) []row {
	var rows []row
	depth := 0
	for i := 0; i < c.Count(); i++ {
		switch c.EntryKind(i) {
		case container.KindItem:
			rows = append(rows, row{name: c.EntryName(i), kind: container.KindItem, depth: depth, loaded: c.IsLoaded(i)})
		case container.KindFolderStart:
			rows = append(rows, row{name: c.EntryName(i), kind: container.KindFolderStart, depth: depth, loaded: true})
			depth++
		case container.KindFolderEnd:
			if depth > 0 {
				depth--
			}
			rows = append(rows, row{kind: container.KindFolderEnd, depth: depth, loaded: true})
		case container.KindPlaceholder:
			// Not part of the active view.
		}
	}
	return rows
}

// plannedRows reorders the active rows by the target permutation and
// recomputes folder depth in the new order.
func plannedRows(active []row, target []int) []row {
	rows := make([]row, 0, len(target))
	depth := 0
	for _, pos := range target {
		r := active[pos]
		switch r.kind {
		case container.KindFolderEnd:
			if depth > 0 {
				depth--
			}
			r.depth = depth
		case container.KindFolderStart:
			r.depth = depth
			depth++
		default:
			r.depth = depth
		}
		rows = append(rows, r)
	}
	return rows
}

func renderColumn(header string, rows []row, scroll, height int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(header))

	end := scroll + height
	if end > len(rows) {
		end = len(rows)
	}
	for _, r := range rows[scroll:end] {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("  ", r.depth))
		switch r.kind {
		case container.KindFolderStart:
			b.WriteString(folderStyle.Render("▸ " + r.name))
		case container.KindFolderEnd:
			b.WriteString(hintStyle.Render("▪"))
		default:
			if r.loaded {
				b.WriteString(r.name)
			} else {
				b.WriteString(hintStyle.Render(r.name + " (loading)"))
			}
		}
	}
	return b.String()
}

func activeCount(c container.Container) int {
	n := 0
	for i := 0; i < c.Count(); i++ {
		if c.EntryKind(i) != container.KindPlaceholder {
			n++
		}
	}
	return n
}
