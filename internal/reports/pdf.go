package reports

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
)

// Report is the assembled material an export renders.
type Report struct {
	Reference   string             `json:"reference"`
	GeneratedAt time.Time          `json:"generated_at"`
	Window      Window             `json:"window"`
	Summary     Summary            `json:"summary"`
	ByEventType map[string]float64 `json:"revenue_by_event_type"`
	BySeatType  map[string]float64 `json:"revenue_by_seat_type"`
	Bookings    []bookings.Booking `json:"bookings"`
}

const (
	pageWidth  = 210.0
	pageBottom = 277.0
	tableRowH  = 7.0
	tableX     = 10.0
)

// ExportPDF renders the report as an A4 document: headline figures, revenue
// breakdowns, the booking table paginated against the page height, and a QR
// stamp of the report reference for later lookup.
func ExportPDF(report *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "DexView Cinema - Sales Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Reference: %s", report.Reference))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	if !report.Window.From.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s",
			report.Window.From.Format("2006-01-02"),
			report.Window.To.AddDate(0, 0, -1).Format("2006-01-02")))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	writeSummary(pdf, report.Summary)
	writeBreakdown(pdf, "Revenue by event type", report.ByEventType)
	writeBreakdown(pdf, "Revenue by seat type", report.BySeatType)
	if err := writeBookingTable(pdf, report.Bookings); err != nil {
		return nil, err
	}
	if err := stampQR(pdf, report.Reference); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(pdf *gofpdf.Fpdf, s Summary) {
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	rows := [][2]string{
		{"Total revenue", fmt.Sprintf("NGN %.2f", s.TotalRevenue)},
		{"Bookings", fmt.Sprintf("%d", s.BookingCount)},
		{"Seats sold", fmt.Sprintf("%d", s.SeatsSold)},
		{"Unique customers", fmt.Sprintf("%d", s.UniqueCustomers)},
		{"Repeat customers", fmt.Sprintf("%d", s.RepeatCustomers)},
		{"Average booking value", fmt.Sprintf("NGN %.2f", s.AverageBookingValue)},
	}
	for _, row := range rows {
		pdf.Cell(60, 6, row[0])
		pdf.Cell(0, 6, row[1])
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func writeBreakdown(pdf *gofpdf.Fpdf, title string, breakdown map[string]float64) {
	if len(breakdown) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)

	keys := make([]string, 0, len(breakdown))
	for k := range breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pdf.SetFont("Arial", "", 10)
	for _, k := range keys {
		pdf.Cell(60, 6, k)
		pdf.Cell(0, 6, fmt.Sprintf("NGN %.2f", breakdown[k]))
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func writeBookingTable(pdf *gofpdf.Fpdf, rows []bookings.Booking) error {
	if len(rows) == 0 {
		return nil
	}

	widths := []float64{38, 50, 45, 32, 25}
	headers := []string{"Code", "Customer", "Event", "Seats", "Total"}

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetX(tableX)
		for i, h := range headers {
			pdf.CellFormat(widths[i], tableRowH, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(tableRowH)
		pdf.SetFont("Arial", "", 9)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Bookings")
	pdf.Ln(8)
	writeHeader()

	for _, b := range rows {
		if pdf.GetY()+tableRowH > pageBottom {
			pdf.AddPage()
			writeHeader()
		}
		cells := []string{
			b.BookingCode,
			truncate(b.CustomerName, 28),
			truncate(b.EventTitle, 24),
			fmt.Sprintf("%d x %s", len(b.Claims), b.SeatType),
			fmt.Sprintf("%.2f", b.TotalAmount),
		}
		pdf.SetX(tableX)
		for i, cell := range cells {
			pdf.CellFormat(widths[i], tableRowH, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(tableRowH)
	}
	pdf.Ln(4)
	return pdf.Error()
}

func stampQR(pdf *gofpdf.Fpdf, reference string) error {
	png, err := qrcode.Encode(reference, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate report QR stamp: %w", err)
	}

	if pdf.GetY()+40 > pageBottom {
		pdf.AddPage()
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("report_qr_"+reference, opts, bytes.NewReader(png))
	pdf.ImageOptions("report_qr_"+reference, pageWidth-45, pdf.GetY(), 30, 30, false, opts, 0, "")
	return pdf.Error()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "~"
}
