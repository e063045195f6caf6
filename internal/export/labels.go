package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/skylane/loadplan/internal/catalog"
	"github.com/skylane/loadplan/internal/model"
)

// LabelInfo holds the data encoded into each ULD label's QR code.
type LabelInfo struct {
	ULDID    string  `json:"id"`
	TypeCode string  `json:"type,omitempty"`
	Deck     string  `json:"deck"`
	Slot     int     `json:"slot"` // 1-based start slot
	Width    int     `json:"width_slots"`
	Weight   float64 `json:"weight_kg"`
	Aircraft string  `json:"aircraft"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded handling labels for all placed
// containers. Each label carries the ULD ID, its assigned slot, and a QR
// code encoding the placement metadata as JSON.
func ExportLabels(path string, result model.PlanResult, types catalog.ContainerTypes) error {
	labels := CollectLabelInfos(result, types)
	if len(labels) == 0 {
		return fmt.Errorf("no placed containers to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.ULDID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%s_%d", info.ULDID, info.Deck, info.Slot)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// ULD ID with type code
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := info.ULDID
	if info.TypeCode != "" {
		title += " [" + info.TypeCode + "]"
	}
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	// Slot assignment
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	slot := fmt.Sprintf("%s deck, slot %d", info.Deck, info.Slot)
	if info.Width > 1 {
		slot = fmt.Sprintf("%s deck, slots %d-%d", info.Deck, info.Slot, info.Slot+info.Width-1)
	}
	pdf.CellFormat(textW, 3.5, slot, "", 1, "L", false, 0, "")

	// Weight and aircraft
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%.1f kg - %s", info.Weight, info.Aircraft), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a plan result for use in
// testing or alternative export formats.
func CollectLabelInfos(result model.PlanResult, types catalog.ContainerTypes) []LabelInfo {
	var labels []LabelInfo
	for _, a := range result.Assignments {
		if !a.Placed {
			continue
		}
		labels = append(labels, LabelInfo{
			ULDID:    a.Container.ID,
			TypeCode: types.TypeCode(a.Container.ID),
			Deck:     a.Deck,
			Slot:     a.StartIndex + 1,
			Width:    a.Width,
			Weight:   a.Container.Weight,
			Aircraft: result.Aircraft.Model,
		})
	}
	return labels
}
