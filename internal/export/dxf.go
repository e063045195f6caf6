package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/skylane/loadplan/internal/model"
)

// Slot cell dimensions in the DXF drawing, in drawing units.
const (
	dxfSlotWidth  = 10.0
	dxfSlotHeight = 25.0
	dxfDeckGap    = 15.0
)

// ExportDXF writes the deck layouts as a DXF drawing: one horizontal strip
// of slot rectangles per deck, with occupant IDs as text and nose/tail cells
// on a separate restricted layer. Intended for import into CAD-based
// weight-and-balance tooling.
func ExportDXF(path string, result model.PlanResult) error {
	if len(result.MainSlots) == 0 && len(result.LowerSlots) == 0 {
		return fmt.Errorf("no decks to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("SLOTS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	if _, err := d.AddLayer("RESTRICTED", color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	if _, err := d.AddLayer("TEXT", color.Green, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}

	y := 0.0
	if len(result.MainSlots) > 0 {
		if err := drawDeck(d, result.MainSlots, "MAIN", y); err != nil {
			return err
		}
		y -= dxfSlotHeight + dxfDeckGap
	}
	if len(result.LowerSlots) > 0 {
		if err := drawDeck(d, result.LowerSlots, "LOWER", y); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

// drawDeck draws one deck strip with its origin at (0, yTop).
func drawDeck(d *drawing.Drawing, slots []model.Slot, title string, yTop float64) error {
	if err := d.ChangeLayer("TEXT"); err != nil {
		return err
	}
	if _, err := d.Text(title, 0, yTop+2.0, 0, 3.5); err != nil {
		return fmt.Errorf("deck title: %w", err)
	}

	for _, s := range slots {
		layer := "SLOTS"
		if s.Zone != model.ZoneNormal {
			layer = "RESTRICTED"
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}

		x := float64(s.Index) * dxfSlotWidth
		if err := drawRect(d, x, yTop-dxfSlotHeight, dxfSlotWidth, dxfSlotHeight); err != nil {
			return fmt.Errorf("slot %s[%d]: %w", s.Deck, s.Index+1, err)
		}

		if s.Occupied {
			if err := d.ChangeLayer("TEXT"); err != nil {
				return err
			}
			if _, err := d.Text(s.OccupantID, x+1.0, yTop-dxfSlotHeight/2, 0, 1.8); err != nil {
				return fmt.Errorf("occupant text: %w", err)
			}
		}
	}
	return nil
}

// drawRect draws an axis-aligned rectangle from four line segments.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	segments := [][4]float64{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
	for _, seg := range segments {
		if _, err := d.Line(seg[0], seg[1], 0, seg[2], seg[3], 0); err != nil {
			return err
		}
	}
	return nil
}
