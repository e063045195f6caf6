package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/skylane/loadplan/internal/model"
)

// ExportXLSX writes the assignment summary to an Excel workbook: one row per
// container in input order, followed by the load totals.
func ExportXLSX(path string, result model.PlanResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Assignments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"ULD ID", "Assigned Slot", "Deck", "Start Slot", "Width (slots)", "Weight (kg)"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, a := range result.Assignments {
		row := i + 2
		values := []interface{}{a.Container.ID, a.SlotLabel(), "", "", "", a.Container.Weight}
		if a.Placed {
			values[2] = a.Deck
			values[3] = a.StartIndex + 1
			values[4] = a.Width
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	totalsRow := len(result.Assignments) + 3
	totals := []struct {
		label string
		value interface{}
	}{
		{"Total weight (kg)", result.TotalWeight},
		{"Total moment (kg*m)", result.TotalMoment},
		{"Center of gravity", result.CG()},
		{"Placed", fmt.Sprintf("%d of %d", result.PlacedCount(), len(result.Assignments))},
	}
	for i, t := range totals {
		labelCell, err := excelize.CoordinatesToCellName(1, totalsRow+i)
		if err != nil {
			return err
		}
		valueCell, err := excelize.CoordinatesToCellName(2, totalsRow+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, labelCell, t.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, valueCell, t.value); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
