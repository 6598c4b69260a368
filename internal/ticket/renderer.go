package ticket

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/signintech/gopdf"

	"heli-ticketing/internal/logger"
	"heli-ticketing/internal/models"
)

// One millimetre in PDF points.
const mm = 72.0 / 25.4

const (
	pageWidth  = 595.28 // A4 portrait
	pageHeight = 841.89

	margin        = 15 * mm
	headerHeight  = 25 * mm
	footerReserve = 12 * mm
)

// Renderer produces the one-page A4 passenger ticket. It never fails for
// malformed image bytes: undecodable signatures and photos degrade to the
// placeholder path and rendering continues.
type Renderer struct {
	LogoPath string
	FontDir  string
	Logger   *logger.Logger
}

func NewRenderer(logoPath, fontDir string, log *logger.Logger) *Renderer {
	return &Renderer{LogoPath: logoPath, FontDir: fontDir, Logger: log}
}

// Render lays out the ticket for one submission. clipped reports that the
// conditions text did not fit even at the smallest candidate font size and
// was drawn anyway.
func (r *Renderer) Render(sub models.Submission, signature, photo1, photo2 []byte) (pdfBytes []byte, clipped bool, err error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := r.loadFonts(pdf); err != nil {
		return nil, false, err
	}

	contentWidth := pageWidth - 2*margin
	y := margin

	// Header band with logo and title.
	pdf.SetFillColor(26, 54, 93)
	pdf.RectFromUpperLeftWithStyle(0, y, pageWidth, headerHeight, "F")

	if logo := r.loadLogo(); logo != nil {
		r.drawImageFitted(pdf, logo, margin, y+(headerHeight-18*mm)/2, 50*mm, 18*mm)
	} else {
		pdf.SetTextColor(255, 255, 255)
		setFont(pdf, "sans-bold", 18)
		r.textAt(pdf, margin, y+headerHeight-14*mm, "BAC HELICOPTERS")
	}

	pdf.SetTextColor(255, 255, 255)
	setFont(pdf, "sans-bold", 16)
	r.textRight(pdf, pageWidth-margin, y+headerHeight-13*mm, "PASSENGER TICKET")

	y += headerHeight + 8*mm

	// Flight details box.
	pdf.SetTextColor(0, 0, 0)
	setFont(pdf, "sans-bold", 12)
	r.textAt(pdf, margin, y, "FLIGHT DETAILS")
	y += 6 * mm

	boxHeight := 22 * mm
	pdf.SetStrokeColor(204, 204, 204)
	pdf.SetFillColor(248, 249, 250)
	pdf.Rectangle(margin, y, margin+contentWidth, y+boxHeight, "DF", 3, 10)

	pdf.SetTextColor(0, 0, 0)
	setFont(pdf, "sans", 10)
	col1X := margin + 5*mm
	col2X := margin + contentWidth/2
	detailsY := y + 6*mm
	r.textAt(pdf, col1X, detailsY, "Date: "+sub.FlightDate)
	r.textAt(pdf, col2X, detailsY, "Time: "+sub.FlightTime)
	detailsY += 5 * mm
	r.textAt(pdf, col1X, detailsY, "Route: "+sub.Route)
	r.textAt(pdf, col2X, detailsY, "Registration: "+sub.Registration)
	detailsY += 5 * mm
	r.textAt(pdf, col1X, detailsY, "Pilot: "+sub.Pilot)

	y += boxHeight + 8*mm

	// Passenger details.
	setFont(pdf, "sans-bold", 12)
	r.textAt(pdf, margin, y, "PASSENGER DETAILS")
	y += 6 * mm
	setFont(pdf, "sans-bold", 11)
	r.textAt(pdf, margin, y, fmt.Sprintf("Name: %s (Ticket #%d)", sub.Name, sub.TicketNo))
	y += 5 * mm
	setFont(pdf, "sans", 9)
	r.textAt(pdf, margin, y, "Email: "+sub.Email)
	y += 8 * mm

	// Weight declaration with photo evidence slots.
	colWidth := (contentWidth - 10*mm) / 2
	photoWidth := colWidth - 10*mm
	photoHeight := 35 * mm

	setFont(pdf, "sans-bold", 10)
	r.textAt(pdf, margin, y, "BODY WEIGHT")
	r.textAt(pdf, margin+colWidth+10*mm, y, "BAG WEIGHT")
	y += 5 * mm

	setFont(pdf, "sans", 10)
	r.textAt(pdf, margin, y, sub.BodyWeight+" kg")
	r.textAt(pdf, margin+colWidth+10*mm, y, fmt.Sprintf("%s kg (%s bag(s))", sub.BagWeight, sub.NumBags))
	y += 5 * mm

	photoTop := y
	r.drawPhotoSlot(pdf, photo1, margin, photoTop, photoWidth, photoHeight)
	r.drawPhotoSlot(pdf, photo2, margin+colWidth+10*mm, photoTop, photoWidth, photoHeight)
	y = photoTop + photoHeight + 8*mm

	// Signature block. The baseline rule is drawn whether or not an image
	// was supplied.
	pdf.SetTextColor(0, 0, 0)
	setFont(pdf, "sans-bold", 12)
	r.textAt(pdf, margin, y, "PASSENGER SIGNATURE")
	y += 3 * mm

	sigWidth := 95 * mm
	sigHeight := 42 * mm
	if img, derr := decodeImage(signature); derr == nil {
		r.drawImageFitted(pdf, img, margin, y, sigWidth, sigHeight)
	} else if len(signature) > 0 {
		r.logError("RENDER", fmt.Sprintf("Failed to decode signature image: %v", derr))
	}
	pdf.SetStrokeColor(0, 0, 0)
	pdf.SetLineWidth(0.7)
	pdf.Line(margin, y+sigHeight+2*mm, margin+sigWidth, y+sigHeight+2*mm)

	setFont(pdf, "sans", 8)
	infoX := margin + sigWidth + 10*mm
	infoY := y + 5*mm
	r.textAt(pdf, infoX, infoY, "Signed: "+sub.Timestamp)
	infoY += 4 * mm
	dgAck := "No"
	if sub.DGAck {
		dgAck = "Yes"
	}
	r.textAt(pdf, infoX, infoY, "Dangerous Goods Acknowledged: "+dgAck)
	infoY += 4 * mm
	r.textAt(pdf, infoX, infoY, "Conditions Accepted: Yes")

	y += sigHeight + 12*mm

	// Conditions of carriage, two columns, auto-fit.
	setFont(pdf, "sans-bold", 10)
	r.textAt(pdf, margin, y, "CONDITIONS OF CARRIAGE")
	y += 5 * mm

	available := pageHeight - margin - footerReserve - y
	clipped = r.drawConditions(pdf, y, contentWidth, available)
	if clipped {
		r.logWarn("RENDER", fmt.Sprintf("Conditions text clipped at smallest font size for ticket #%d", sub.TicketNo))
	}

	// Footer.
	pdf.SetTextColor(102, 102, 102)
	setFont(pdf, "sans-italic", 7)
	r.textCenter(pdf, pageWidth/2, pageHeight-margin, "This ticket is valid only for the flight details shown above. Please retain for your records.")

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		return nil, false, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), clipped, nil
}

func (r *Renderer) loadFonts(pdf *gopdf.GoPdf) error {
	fonts := map[string]string{
		"sans":        "DejaVuSans.ttf",
		"sans-bold":   "DejaVuSans-Bold.ttf",
		"sans-italic": "DejaVuSans-Oblique.ttf",
	}
	for family, file := range fonts {
		if err := pdf.AddTTFFont(family, filepath.Join(r.FontDir, file)); err != nil {
			return fmt.Errorf("failed to load font %s: %w", file, err)
		}
	}
	return nil
}

// drawConditions splits the legal text into two columns and draws them at the
// largest candidate size that fits, falling back to the smallest.
func (r *Renderer) drawConditions(pdf *gopdf.GoPdf, top, contentWidth, available float64) bool {
	lines := strings.Split(strings.TrimSpace(ConditionsOfCarriage), "\n")
	col1, col2 := splitConditionColumns(lines)
	colWidth := (contentWidth - 5*mm) / 2

	measure := func(size float64) (float64, float64) {
		setFont(pdf, "sans", size)
		leading := size * conditionsLeadingFactor
		h1 := float64(len(r.wrapLines(pdf, col1, colWidth))) * leading
		h2 := float64(len(r.wrapLines(pdf, col2, colWidth))) * leading
		return h1, h2
	}

	size, clipped := fitConditionsSize(conditionsFontSizes, available, measure)

	setFont(pdf, "sans", size)
	pdf.SetTextColor(0, 0, 0)
	r.drawColumn(pdf, r.wrapLines(pdf, col1, colWidth), margin, top, size)
	r.drawColumn(pdf, r.wrapLines(pdf, col2, colWidth), margin+colWidth+5*mm, top, size)
	return clipped
}

func (r *Renderer) drawColumn(pdf *gopdf.GoPdf, lines []string, x, top, size float64) {
	leading := size * conditionsLeadingFactor
	y := top
	for _, line := range lines {
		if line != "" {
			r.textAt(pdf, x, y, line)
		}
		y += leading
	}
}

// wrapLines word-wraps each source line at the column width. Blank source
// lines survive as blank output lines so paragraph breaks keep their height.
func (r *Renderer) wrapLines(pdf *gopdf.GoPdf, lines []string, width float64) []string {
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		wrapped, err := pdf.SplitText(line, width)
		if err != nil {
			out = append(out, line)
			continue
		}
		out = append(out, wrapped...)
	}
	return out
}

// drawPhotoSlot draws the photo when it decodes, the dashed placeholder
// otherwise. Decode failures are logged, never returned.
func (r *Renderer) drawPhotoSlot(pdf *gopdf.GoPdf, data []byte, x, y, w, h float64) {
	if img, err := decodeImage(data); err == nil {
		r.drawImageFitted(pdf, img, x, y, w, h)
		return
	} else if len(data) > 0 {
		r.logError("RENDER", fmt.Sprintf("Failed to decode photo: %v", err))
	}

	pdf.SetStrokeColor(204, 204, 204)
	pdf.SetLineWidth(0.5)
	pdf.SetLineType("dashed")
	pdf.RectFromUpperLeftWithStyle(x, y, w, h, "D")
	pdf.SetLineType("solid")

	pdf.SetTextColor(153, 153, 153)
	setFont(pdf, "sans-italic", 8)
	r.textCenter(pdf, x+w/2, y+h/2, "No photo provided")
	pdf.SetTextColor(0, 0, 0)
}

// drawImageFitted scales the image into the box preserving aspect ratio and
// centers it.
func (r *Renderer) drawImageFitted(pdf *gopdf.GoPdf, img image.Image, x, y, boxW, boxH float64) {
	bounds := img.Bounds()
	iw := float64(bounds.Dx())
	ih := float64(bounds.Dy())
	if iw <= 0 || ih <= 0 {
		return
	}

	scale := boxW / iw
	if s := boxH / ih; s < scale {
		scale = s
	}
	w := iw * scale
	h := ih * scale

	if err := pdf.ImageFrom(img, x+(boxW-w)/2, y+(boxH-h)/2, &gopdf.Rect{W: w, H: h}); err != nil {
		r.logError("RENDER", fmt.Sprintf("Failed to draw image: %v", err))
	}
}

func (r *Renderer) loadLogo() image.Image {
	data, err := os.ReadFile(r.LogoPath)
	if err != nil {
		return nil
	}
	img, err := decodeImage(data)
	if err != nil {
		r.logError("RENDER", fmt.Sprintf("Failed to decode logo: %v", err))
		return nil
	}
	return img
}

func (r *Renderer) textAt(pdf *gopdf.GoPdf, x, y float64, text string) {
	pdf.SetX(x)
	pdf.SetY(y)
	pdf.Cell(nil, text)
}

func (r *Renderer) textRight(pdf *gopdf.GoPdf, right, y float64, text string) {
	w, err := pdf.MeasureTextWidth(text)
	if err != nil {
		w = 0
	}
	r.textAt(pdf, right-w, y, text)
}

func (r *Renderer) textCenter(pdf *gopdf.GoPdf, centerX, y float64, text string) {
	w, err := pdf.MeasureTextWidth(text)
	if err != nil {
		w = 0
	}
	r.textAt(pdf, centerX-w/2, y, text)
}

func (r *Renderer) logError(category, msg string) {
	if r.Logger != nil {
		r.Logger.Error(category, msg)
	}
}

func (r *Renderer) logWarn(category, msg string) {
	if r.Logger != nil {
		r.Logger.Warn(category, msg)
	}
}

func setFont(pdf *gopdf.GoPdf, family string, size float64) {
	// Fonts are registered in loadFonts; selecting them cannot fail after
	// that, so the error is dropped here to keep layout code readable.
	_ = pdf.SetFont(family, "", size)
}

func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no image data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}
