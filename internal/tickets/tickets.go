package tickets

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"ecohaven_backend/internal/models"
)

const qrSize = 256

// QRCode renders text as a PNG.
func QRCode(text string) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	return png, nil
}

// TicketPDF renders a single-page ticket for the booking. event may be nil
// when the booking has been orphaned.
func TicketPDF(booking *models.Booking, event *models.Event) ([]byte, error) {
	qrPNG, err := QRCode(booking.QRCodeText)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(46, 125, 50)
	pdf.Cell(0, 15, "ECOHAVEN EVENT TICKET")
	pdf.Ln(20)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	yStart := pdf.GetY()
	pdf.SetFillColor(241, 248, 233)
	pdf.Rect(15, yStart, 120, 55, "F")

	pdf.SetXY(20, yStart+7)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "BOOKING")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Booking #%d", booking.ID),
		fmt.Sprintf("Guest: %s", booking.FullName),
		fmt.Sprintf("Email: %s", booking.Email),
		fmt.Sprintf("Tickets: %d", booking.Tickets),
		fmt.Sprintf("Status: %s", booking.Status),
	} {
		pdf.SetX(20)
		pdf.Cell(0, 8, line)
		pdf.Ln(6)
	}

	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 63)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Check-in code: %s", booking.QRCodeText))
	pdf.Ln(12)

	sectionTitle(pdf, "EVENT")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, booking.EventName)
	pdf.Ln(6)
	if event != nil {
		pdf.Cell(0, 8, fmt.Sprintf("When: %s %s - %s %s",
			event.StartDate.Format("02 Jan 2006"), event.StartTime, event.EndDate.Format("02 Jan 2006"), event.EndTime))
		pdf.Ln(6)
		if event.Location != "" {
			pdf.Cell(0, 8, fmt.Sprintf("Where: %s", event.Location))
			pdf.Ln(6)
		}
	}
	if booking.LeafPoints > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Attend to earn %d leaf points", booking.LeafPoints))
		pdf.Ln(6)
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, 285, 195, 285)
	pdf.SetY(288)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 8, "EcoHaven community events", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
}
