package sorter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/crate/internal/container"
)

func TestPlanReorder_FlatPlaylists(t *testing.T) {
	c := container.NewMemory(
		container.Item("banana"),
		container.Item("apple"),
		container.Item("cherry"),
		container.Item("date"),
		container.Item("apple"),
	)

	plan, err := PlanReorder(c)
	require.NoError(t, err)

	// Stable: the two "apple" entries keep listing order 1 before 4.
	assert.Equal(t, []int{1, 4, 0, 2, 3}, plan.Target)
	assert.Equal(t, []Move{{From: 1, To: 0}, {From: 4, To: 1}}, plan.Moves)

	require.NoError(t, plan.Apply(c))
	assert.Equal(t, []string{"apple", "apple", "banana", "cherry", "date"}, c.Names())
}

func TestPlanReorder_FolderSortsAsUnit(t *testing.T) {
	c := container.NewMemory(
		container.FolderStart("B"),
		container.Item("x"),
		container.FolderEnd(),
		container.Item("a"),
	)

	plan, err := PlanReorder(c)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 0, 1, 2}, plan.Target)
	assert.Equal(t, []Move{{From: 3, To: 0}}, plan.Moves)

	require.NoError(t, plan.Apply(c))
	got := c.Entries()
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, container.KindFolderStart, got[1].Kind)
	assert.Equal(t, "x", got[2].Name)
	assert.Equal(t, container.KindFolderEnd, got[3].Kind)
}

func TestPlanReorder_NestedFolders(t *testing.T) {
	c := container.NewMemory(
		container.FolderStart("zoo"),
		container.Item("tiger"),
		container.FolderStart("birds"),
		container.Item("wren"),
		container.Item("crow"),
		container.FolderEnd(),
		container.Item("ant"),
		container.FolderEnd(),
		container.Item("aardvark"),
	)

	plan, err := PlanReorder(c)
	require.NoError(t, err)
	require.NoError(t, plan.Apply(c))

	want := []container.Entry{
		{Position: 0, Kind: container.KindItem, Name: "aardvark", Loaded: true},
		{Position: 1, Kind: container.KindFolderStart, Name: "zoo", Loaded: true},
		{Position: 2, Kind: container.KindItem, Name: "ant", Loaded: true},
		{Position: 3, Kind: container.KindFolderStart, Name: "birds", Loaded: true},
		{Position: 4, Kind: container.KindItem, Name: "crow", Loaded: true},
		{Position: 5, Kind: container.KindItem, Name: "wren", Loaded: true},
		{Position: 6, Kind: container.KindFolderEnd, Loaded: true},
		{Position: 7, Kind: container.KindItem, Name: "tiger", Loaded: true},
		{Position: 8, Kind: container.KindFolderEnd, Loaded: true},
	}
	assert.Equal(t, want, c.Entries())
}

func TestPlanReorder_Idempotent(t *testing.T) {
	c := container.NewMemory(
		container.Item("cherry"),
		container.FolderStart("fruit"),
		container.Item("pear"),
		container.Item("fig"),
		container.FolderEnd(),
		container.Item("apple"),
	)

	plan, err := PlanReorder(c)
	require.NoError(t, err)
	require.NoError(t, plan.Apply(c))

	again, err := PlanReorder(c)
	require.NoError(t, err)
	assert.True(t, again.InOrder(), "second pass should plan zero moves, got %v", again.Moves)
	for i, pos := range again.Target {
		assert.Equal(t, i, pos, "target[%d]", i)
	}
}

func TestPlanReorder_NotReady(t *testing.T) {
	c := container.NewMemory(
		container.Item("a"),
		container.UnloadedItem("b"),
		container.UnloadedItem("c"),
	)

	plan, err := PlanReorder(c)
	assert.Nil(t, plan)

	var notReady NotReadyError
	require.ErrorAs(t, err, &notReady)
	assert.Equal(t, 2, notReady.Unloaded)
}

func TestPlanReorder_Unbalanced(t *testing.T) {
	c := container.NewMemory(
		container.FolderStart("open"),
		container.Item("a"),
	)

	plan, err := PlanReorder(c)
	assert.Nil(t, plan)
	require.ErrorIs(t, err, ErrUnbalanced)
}

func TestPlanReorder_PlaceholdersExcludedFromActiveView(t *testing.T) {
	// Placeholders occupy listing slots but are absent from the live
	// collection the moves act on, so planned indices are ranked over
	// the active view only.
	c := container.NewMemory(
		container.Item("b"),
		container.Placeholder(),
		container.Item("a"),
	)

	plan, err := PlanReorder(c)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0}, plan.Target)
	assert.Equal(t, []Move{{From: 1, To: 0}}, plan.Moves)

	// Apply against the active view.
	live := container.NewMemory(container.Item("b"), container.Item("a"))
	require.NoError(t, plan.Apply(live))
	assert.Equal(t, []string{"a", "b"}, live.Names())
}

func TestPlanReorder_PermutationProperty(t *testing.T) {
	c := container.NewMemory(
		container.FolderStart("m"),
		container.Item("z"),
		container.Placeholder(),
		container.Item("y"),
		container.FolderEnd(),
		container.Item("k"),
		container.FolderStart("a"),
		container.FolderEnd(),
	)

	plan, err := PlanReorder(c)
	require.NoError(t, err)

	// 8 slots minus 1 placeholder.
	require.Len(t, plan.Target, 7)
	seen := make(map[int]bool)
	for _, pos := range plan.Target {
		assert.GreaterOrEqual(t, pos, 0)
		assert.Less(t, pos, 7)
		assert.False(t, seen[pos], "duplicate position %d", pos)
		seen[pos] = true
	}
}

func TestPlanReorder_Empty(t *testing.T) {
	plan, err := PlanReorder(container.NewMemory())
	require.NoError(t, err)
	assert.True(t, plan.InOrder())
}
