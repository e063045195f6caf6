package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/loadplan/internal/catalog"
	"github.com/skylane/loadplan/internal/model"
)

func slotRange(deck string, n int) []model.Slot {
	slots := make([]model.Slot, n)
	for i := range slots {
		slots[i] = model.Slot{Deck: deck, Index: i}
	}
	return slots
}

func TestSplitRows_FirstAndLastAlone(t *testing.T) {
	rows := splitRows(slotRange("main", 8))

	// 1 + (3 + 3) interior + 1
	require.Len(t, rows, 4)
	assert.Len(t, rows[0], 1)
	assert.Len(t, rows[1], 3)
	assert.Len(t, rows[2], 3)
	assert.Len(t, rows[3], 1)
	assert.Equal(t, 0, rows[0][0].Index)
	assert.Equal(t, 7, rows[3][0].Index)
}

func TestSplitRows_SmallDecks(t *testing.T) {
	assert.Len(t, splitRows(slotRange("main", 1)), 1)

	rows := splitRows(slotRange("main", 2))
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 1)
	assert.Len(t, rows[1], 1)
}

func TestGroupRow_MergesSameOccupant(t *testing.T) {
	row := []model.Slot{
		{Index: 1, Occupied: true, OccupantID: "PMC1", AllocatedWeight: 50},
		{Index: 2, Occupied: true, OccupantID: "PMC1", AllocatedWeight: 50},
		{Index: 3, Occupied: true, OccupantID: "AKE9", AllocatedWeight: 30},
	}

	groups := groupRow(row)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].slots, 2)
	assert.Len(t, groups[1].slots, 1)

	assert.Equal(t, "#2-#3", numberText(groups[0]))
	assert.Equal(t, "#4", numberText(groups[1]))
	assert.Equal(t, "100", weightText(groups[0]))
}

func TestGroupRow_EmptySlotsNeverMerge(t *testing.T) {
	row := []model.Slot{
		{Index: 0},
		{Index: 1},
	}
	assert.Len(t, groupRow(row), 2)
}

func TestIdText(t *testing.T) {
	types := catalog.ContainerTypes{{Prefix: "AKE", Type: "LD3"}}

	occupied := cellGroup{slots: []model.Slot{{Occupied: true, OccupantID: "AKE123"}}}
	assert.Equal(t, "AKE123[LD3]", idText(occupied, types))

	nose := cellGroup{slots: []model.Slot{{Zone: model.ZoneNose}}}
	assert.Equal(t, "  N", idText(nose, types))

	tail := cellGroup{slots: []model.Slot{{Zone: model.ZoneTail}}}
	assert.Equal(t, "  T", idText(tail, types))

	normal := cellGroup{slots: []model.Slot{{}}}
	assert.Equal(t, "", idText(normal, types))
}

func TestDeckLines_Header(t *testing.T) {
	g := model.DeckGeometry{Slots: 4, RowLength: 8, NoseSlots: 1, TailSlots: 1}
	slots := []model.Slot{
		{Index: 0, Zone: model.ZoneNose},
		{Index: 1, Occupied: true, OccupantID: "AKE1", AllocatedWeight: 120.7},
		{Index: 2},
		{Index: 3, Zone: model.ZoneTail},
	}

	lines := DeckLines("Main", g, slots, nil)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "=== Main Deck Load Plan (slots=4) ===")
	assert.Contains(t, joined, "AKE1")
	assert.Contains(t, joined, "#2")
	assert.Contains(t, joined, "120") // integer-truncated weight
	assert.Contains(t, joined, "  N")
	assert.Contains(t, joined, "  T")
}

func TestDeckLines_EmptyDeck(t *testing.T) {
	lines := DeckLines("Lower", model.DeckGeometry{Slots: 0}, nil, nil)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "slots=0")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abc      ", fit("abc", 9))
	assert.Equal(t, "abcdefghi", fit("abcdefghijkl", 9))
	assert.Len(t, fit("", 9), 9)
}

func samplePlan() model.PlanResult {
	return model.PlanResult{
		Aircraft: model.Aircraft{
			Model:    "TEST",
			MainDeck: model.DeckGeometry{Slots: 2, RowLength: 8},
		},
		MainSlots: []model.Slot{
			{Deck: "main", Index: 0, Occupied: true, OccupantID: "AKE1", AllocatedWeight: 100},
			{Deck: "main", Index: 1},
		},
		Assignments: []model.Assignment{
			{Container: model.Container{ID: "AKE1", Weight: 100}, Placed: true, Deck: "main", StartIndex: 0, Width: 1},
			{Container: model.Container{ID: "AKE2", Weight: 55}},
		},
		TotalWeight: 100,
		TotalMoment: 1000,
	}
}

func TestAssignmentLines(t *testing.T) {
	lines := AssignmentLines(samplePlan())
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "=== Assignment Results ===")
	assert.Contains(t, joined, "AKE1")
	assert.Contains(t, joined, "main[1]")
	assert.Contains(t, joined, "UNASSIGNED")
}

func TestSummaryLines(t *testing.T) {
	lines := SummaryLines(samplePlan())
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "Placed 1 of 2 containers")
	assert.Contains(t, joined, "Total weight: 100.0 kg")
	assert.Contains(t, joined, "Center of gravity: 10.00")
	assert.NotContains(t, joined, "WARNING")
}

func TestSummaryLines_OverMTW(t *testing.T) {
	r := samplePlan()
	r.Aircraft.MTW = 50
	joined := strings.Join(SummaryLines(r), "\n")
	assert.Contains(t, joined, "exceeds MTW")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadplan.txt")
	require.NoError(t, WriteFile(path, []string{"line one", "line two"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}

func TestWriteFile_BadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "loadplan.txt"), []string{"x"})
	assert.Error(t, err)
}
