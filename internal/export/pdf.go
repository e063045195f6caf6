// Package export writes a finished plan to distributable file formats:
// a PDF load sheet, QR-coded ULD labels, a DXF deck layout, and an Excel
// assignment summary.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/skylane/loadplan/internal/catalog"
	"github.com/skylane/loadplan/internal/model"
)

// slotColor represents an RGB color for a placed container.
type slotColor struct {
	R, G, B int
}

// slotColors cycles per placed container in assignment order.
var slotColors = []slotColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	stripHeight  = 30.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates the PDF load sheet: one page per non-empty deck with a
// slot-strip diagram, followed by a summary page with the assignment table
// and load totals.
func ExportPDF(path string, result model.PlanResult, types catalog.ContainerTypes) error {
	if len(result.MainSlots) == 0 && len(result.LowerSlots) == 0 {
		return fmt.Errorf("no decks to export")
	}

	colors := occupantColors(result)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	if len(result.MainSlots) > 0 {
		pdf.AddPage()
		renderDeckPage(pdf, "Main Deck", result.MainSlots, types, colors)
	}
	if len(result.LowerSlots) > 0 {
		pdf.AddPage()
		renderDeckPage(pdf, "Lower Deck", result.LowerSlots, types, colors)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// occupantColors assigns each placed container a color by assignment order.
func occupantColors(result model.PlanResult) map[string]slotColor {
	colors := make(map[string]slotColor)
	i := 0
	for _, a := range result.Assignments {
		if !a.Placed {
			continue
		}
		colors[a.Container.ID] = slotColors[i%len(slotColors)]
		i++
	}
	return colors
}

// renderDeckPage draws a single deck as a horizontal strip of slot cells.
func renderDeckPage(pdf *fpdf.Fpdf, title string, slots []model.Slot, types catalog.ContainerTypes, colors map[string]slotColor) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight,
		fmt.Sprintf("%s (%d slots)", title, len(slots)), "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	cellW := drawWidth / float64(len(slots))
	y := drawAreaTop + 10

	for i, s := range slots {
		x := marginLeft + float64(i)*cellW

		if s.Occupied {
			col := colors[s.OccupantID]
			pdf.SetFillColor(col.R, col.G, col.B)
		} else {
			pdf.SetFillColor(240, 240, 240)
		}
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, cellW, stripHeight, "FD")

		if !s.Occupied && s.Zone != model.ZoneNormal {
			drawHatchPattern(pdf, x, y, cellW, stripHeight)
		}

		// Slot number below the cell
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(80, 80, 80)
		num := fmt.Sprintf("%d", s.Index+1)
		pdf.SetXY(x+(cellW-pdf.GetStringWidth(num))/2, y+stripHeight+1)
		pdf.CellFormat(pdf.GetStringWidth(num), 3, num, "", 0, "C", false, 0, "")

		// Arm annotation
		arm := fmt.Sprintf("%.1f", s.Arm)
		pdf.SetXY(x+(cellW-pdf.GetStringWidth(arm))/2, y+stripHeight+4.5)
		pdf.CellFormat(pdf.GetStringWidth(arm), 3, arm, "", 0, "C", false, 0, "")

		if s.Occupied && cellW > 8 {
			pdf.SetFont("Helvetica", "B", labelFontSize(cellW))
			pdf.SetTextColor(0, 0, 0)
			label := s.OccupantID
			if code := types.TypeCode(s.OccupantID); code != "" {
				label += " [" + code + "]"
			}
			for len(label) > 0 && pdf.GetStringWidth(label) > cellW-2 {
				label = label[:len(label)-1]
			}
			pdf.SetXY(x+(cellW-pdf.GetStringWidth(label))/2, y+stripHeight/2-4)
			pdf.CellFormat(pdf.GetStringWidth(label), 4, label, "", 0, "C", false, 0, "")

			w := fmt.Sprintf("%.0f kg", s.AllocatedWeight)
			pdf.SetFont("Helvetica", "", labelFontSize(cellW))
			pdf.SetXY(x+(cellW-pdf.GetStringWidth(w))/2, y+stripHeight/2)
			pdf.CellFormat(pdf.GetStringWidth(w), 4, w, "", 0, "C", false, 0, "")
		} else if !s.Occupied && s.Zone != model.ZoneNormal {
			marker := "N"
			if s.Zone == model.ZoneTail {
				marker = "T"
			}
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetTextColor(180, 0, 0)
			pdf.SetXY(x+(cellW-pdf.GetStringWidth(marker))/2, y+stripHeight/2-2)
			pdf.CellFormat(pdf.GetStringWidth(marker), 4, marker, "", 0, "C", false, 0, "")
		}
	}

	// FWD/AFT direction markers
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, y-6)
	pdf.CellFormat(20, 4, "FWD", "", 0, "L", false, 0, "")
	pdf.SetXY(pageWidth-marginRight-20, y-6)
	pdf.CellFormat(20, 4, "AFT", "", 0, "R", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark
// restricted nose/tail cells.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// renderSummaryPage draws the assignment table and load totals.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PlanResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10,
		fmt.Sprintf("Load Plan Summary - %s", result.Aircraft.Model), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Containers Placed", fmt.Sprintf("%d of %d", result.PlacedCount(), len(result.Assignments))},
		{"Total Weight", fmt.Sprintf("%.1f kg", result.TotalWeight)},
		{"Total Moment", fmt.Sprintf("%.1f kg*m", result.TotalMoment)},
		{"Center of Gravity", fmt.Sprintf("%.2f", result.CG())},
	}
	if result.Aircraft.MTW > 0 {
		summaryItems = append(summaryItems, struct {
			label string
			value string
		}{"Max Takeoff Weight", fmt.Sprintf("%d kg", result.Aircraft.MTW)})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if result.OverMTW() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(120, 6, "WARNING: total weight exceeds MTW", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 7
	}

	y += 5

	// Assignment table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Assignments", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 60, 40}
	headers := []string{"ULD ID", "Assigned Slot", "Weight (kg)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, a := range result.Assignments {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		rowData := []string{a.Container.ID, a.SlotLabel(), fmt.Sprintf("%.1f", a.Container.Weight)}
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by LoadPlan - ULD Load Planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size for a cell width.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}
