package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/panelplan/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// PanelLabelInfo holds the data encoded into each panel label's QR code.
type PanelLabelInfo struct {
	PanelID      string  `json:"panel_id"`
	RoomID       string  `json:"room_id,omitempty"`
	ZoneID       string  `json:"zone_id,omitempty"`
	Width        float64 `json:"width_mm"`
	Length       float64 `json:"length_mm"`
	IsCut        bool    `json:"is_cut"`
	FromLeftover bool    `json:"from_leftover"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page).
const (
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportPanelLabelsPDF generates a PDF of QR-coded labels, one per panel,
// encoding {panel_id, room_id, rect-derived dims, is_cut} as JSON, laid
// out Avery-5160-style.
func ExportPanelLabelsPDF(path string, panels []model.Panel) error {
	if len(panels) == 0 {
		return fmt.Errorf("no panels to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, p := range panels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		info := PanelLabelInfo{
			PanelID:      p.PanelID,
			RoomID:       p.RoomID,
			ZoneID:       p.ZoneID,
			Width:        p.Width,
			Length:       p.Length,
			IsCut:        p.IsCut,
			FromLeftover: p.FromLeftover,
		}
		if err := renderPanelLabel(pdf, x, y, info); err != nil {
			return fmt.Errorf("rendering label for %q: %w", info.PanelID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderPanelLabel(pdf *fpdf.Fpdf, x, y float64, info PanelLabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", info.PanelID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, info.PanelID, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm", info.Width, info.Length)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	roomInfo := fmt.Sprintf("Room %s", info.RoomID)
	if info.ZoneID != "" {
		roomInfo = fmt.Sprintf("Zone %s", info.ZoneID)
	}
	pdf.CellFormat(textW, 3, roomInfo, "", 1, "L", false, 0, "")

	if info.FromLeftover {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(0, 100, 150)
		pdf.CellFormat(textW, 3, "From leftover", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
