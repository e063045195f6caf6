// Package render turns a finished plan into its text artifacts: the per-deck
// bay diagram, the assignment table, and the load summary. All functions
// return lines; writing them to console or file is the caller's business.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/skylane/loadplan/internal/catalog"
	"github.com/skylane/loadplan/internal/model"
)

// cellWidth is the interior character width of one slot cell.
const cellWidth = 9

// DeckLines renders one deck as rows of boxed slot cells. The first and last
// slot always get their own row; interior slots are grouped up to three per
// row. Adjacent cells in a row holding the same container merge into one
// wide cell.
func DeckLines(deckName string, g model.DeckGeometry, slots []model.Slot, types catalog.ContainerTypes) []string {
	lines := []string{fmt.Sprintf("\n=== %s Deck Load Plan (slots=%d) ===", deckName, g.Slots)}
	if len(slots) == 0 {
		return lines
	}

	rowLength := g.RowLength
	if rowLength <= 0 {
		rowLength = 8
	}

	for _, row := range splitRows(slots) {
		lines = append(lines, renderRow(row, rowLength, types)...)
	}
	return lines
}

// splitRows groups a deck's slots into display rows: first alone, interior
// in chunks of up to three, last alone.
func splitRows(slots []model.Slot) [][]model.Slot {
	var rows [][]model.Slot
	rows = append(rows, slots[:1])
	i := 1
	for i < len(slots)-1 {
		n := len(slots) - 1 - i
		if n > 3 {
			n = 3
		}
		rows = append(rows, slots[i:i+n])
		i += n
	}
	if i < len(slots) {
		rows = append(rows, slots[len(slots)-1:])
	}
	return rows
}

// cellGroup is a horizontal run of one or more slots rendered as a single
// cell. Occupied slots holding the same container merge.
type cellGroup struct {
	slots []model.Slot
}

func (cg cellGroup) innerWidth() int {
	n := len(cg.slots)
	return n*cellWidth + (n - 1)
}

func groupRow(row []model.Slot) []cellGroup {
	var groups []cellGroup
	for _, s := range row {
		n := len(groups)
		if n > 0 && s.Occupied && groups[n-1].slots[0].Occupied &&
			groups[n-1].slots[0].OccupantID == s.OccupantID {
			groups[n-1].slots = append(groups[n-1].slots, s)
			continue
		}
		groups = append(groups, cellGroup{slots: []model.Slot{s}})
	}
	return groups
}

func renderRow(row []model.Slot, rowLength int, types catalog.ContainerTypes) []string {
	groups := groupRow(row)

	rowWidth := len(row)*(cellWidth+1) + 1
	leftPad := (rowLength*(cellWidth+1) - rowWidth) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	pad := strings.Repeat(" ", leftPad)

	border := pad + "+"
	for _, g := range groups {
		border += strings.Repeat("-", g.innerWidth()) + "+"
	}

	content := func(text func(cellGroup) string) string {
		line := pad + "|"
		for _, g := range groups {
			line += fit(text(g), g.innerWidth()) + "|"
		}
		return line
	}

	return []string{
		border,
		content(func(g cellGroup) string { return idText(g, types) }),
		content(numberText),
		content(weightText),
		border,
	}
}

// idText is the occupant ID plus its catalog type code, or the zone marker
// for an empty nose/tail slot.
func idText(g cellGroup, types catalog.ContainerTypes) string {
	s := g.slots[0]
	if s.Occupied {
		text := s.OccupantID
		if code := types.TypeCode(s.OccupantID); code != "" {
			text += "[" + code + "]"
		}
		return text
	}
	switch s.Zone {
	case model.ZoneNose:
		return "  N"
	case model.ZoneTail:
		return "  T"
	}
	return ""
}

// numberText shows the 1-based slot number, or the spanned range for a
// merged cell.
func numberText(g cellGroup) string {
	first := g.slots[0].Index + 1
	if len(g.slots) == 1 {
		return fmt.Sprintf("#%d", first)
	}
	return fmt.Sprintf("#%d-#%d", first, g.slots[len(g.slots)-1].Index+1)
}

// weightText shows the integer-truncated allocated weight; merged cells show
// the sum of their slots' shares.
func weightText(g cellGroup) string {
	if !g.slots[0].Occupied {
		return ""
	}
	total := 0.0
	for _, s := range g.slots {
		total += s.AllocatedWeight
	}
	return fmt.Sprintf("%d", int(total))
}

// fit truncates or right-pads a string to exactly w characters.
func fit(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}

// AssignmentLines renders the ordered per-container outcome table.
func AssignmentLines(result model.PlanResult) []string {
	lines := []string{
		"",
		"=== Assignment Results ===",
		fmt.Sprintf("%-14s%-22s%-10s", "ULD ID", "Assigned Slot", "Weight(kg)"),
		strings.Repeat("-", 46),
	}
	for _, a := range result.Assignments {
		lines = append(lines, fmt.Sprintf("%-14s%-22s%-10.1f", a.Container.ID, a.SlotLabel(), a.Container.Weight))
	}
	return lines
}

// SummaryLines renders the accumulated load state.
func SummaryLines(result model.PlanResult) []string {
	lines := []string{
		"",
		fmt.Sprintf("Placed %d of %d containers", result.PlacedCount(), len(result.Assignments)),
		fmt.Sprintf("Total weight: %.1f kg", result.TotalWeight),
		fmt.Sprintf("Total moment: %.1f kg*m", result.TotalMoment),
		fmt.Sprintf("Center of gravity: %.2f", result.CG()),
	}
	if result.OverMTW() {
		lines = append(lines, fmt.Sprintf("WARNING: total weight exceeds MTW (%d kg)", result.Aircraft.MTW))
	}
	return lines
}

// PlanLines renders the complete text artifact: assignment table, both deck
// diagrams, and the summary.
func PlanLines(result model.PlanResult, types catalog.ContainerTypes) []string {
	var lines []string
	lines = append(lines, AssignmentLines(result)...)
	lines = append(lines, DeckLines("Main", result.Aircraft.MainDeck, result.MainSlots, types)...)
	lines = append(lines, DeckLines("Lower", result.Aircraft.LowerDeck, result.LowerSlots, types)...)
	lines = append(lines, SummaryLines(result)...)
	return lines
}

// WriteFile persists lines as a plain-text artifact.
func WriteFile(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
