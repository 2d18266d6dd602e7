package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

// DejaVu Sans covers Latin and the Arabic block, so Persian names render.
const fontFamily = "DejaVu"

var (
	//go:embed fonts/DejaVuSans.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSans-Bold.ttf
	fontBold []byte
)

// column widths in mm, A4 portrait minus 10mm margins
var columns = []struct {
	title string
	width float64
}{
	{"Time", 28},
	{"Client", 48},
	{"Phone", 36},
	{"Service", 48},
	{"Status", 30},
}

// cell padding gofpdf keeps on each side of a CellFormat
const cellPadding = 2.0

// BookingsPDF renders the day sheet handed to the front desk.
func BookingsPDF(day time.Time, rows []dto.BookingListDTO) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load pdf fonts: %w", err)
	}

	pdf.SetTitle("Bookings "+dates.DayKey(day), true)
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.Cell(0, 10, "Bookings")
	pdf.Ln(10)

	pdf.SetFont(fontFamily, "", 11)
	pdf.Cell(0, 6, day.UTC().Format("Monday, 02 January 2006"))
	pdf.Ln(10)

	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for _, col := range columns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 10)
	if len(rows) == 0 {
		pdf.CellFormat(totalWidth(), 8, "No bookings for this day.", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	for _, r := range rows {
		cells := []string{
			timeRange(r),
			r.ClientName,
			r.ClientPhone,
			r.ServiceName,
			r.Status,
		}
		for i, col := range columns {
			text := fit(cells[i], col.width-cellPadding, pdf.GetStringWidth)
			pdf.CellFormat(col.width, 7, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		if r.Notes != "" {
			pdf.SetFont(fontFamily, "", 9)
			pdf.MultiCell(totalWidth(), 5, "Notes: "+r.Notes, "LRB", "L", false)
			pdf.SetFont(fontFamily, "", 10)
		}
	}

	pdf.Ln(4)
	pdf.SetFont(fontFamily, "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Total: %d  |  Generated %s UTC", len(rows), dates.Now().Format("2006-01-02 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render bookings pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func timeRange(r dto.BookingListDTO) string {
	s := r.StartTime.UTC().Format(dates.ClockLayout)
	if r.EndTime != nil {
		s += " - " + r.EndTime.UTC().Format(dates.ClockLayout)
	}
	return s
}

func totalWidth() float64 {
	w := 0.0
	for _, col := range columns {
		w += col.width
	}
	return w
}

// fit shortens s rune by rune until it fits width, marking the cut with ".".
func fit(s string, width float64, measure func(string) float64) string {
	if measure(s) <= width {
		return s
	}
	r := []rune(s)
	for n := len(r) - 1; n > 0; n-- {
		if out := string(r[:n]) + "."; measure(out) <= width {
			return out
		}
	}
	return ""
}
