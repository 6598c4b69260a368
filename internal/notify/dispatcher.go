package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"heli-ticketing/internal/logger"
	"heli-ticketing/internal/models"
)

// ManifestSource is what the pilot update needs from the manifest store.
type ManifestSource interface {
	ReadAll(flightID string) ([]models.Submission, error)
	FilePath(flightID string) string
}

// TicketArchive is what the pilot update needs from the ticket store.
type TicketArchive interface {
	ZipAll(flightID string) ([]byte, error)
	HasTickets(flightID string) bool
}

// Dispatcher composes the three notification kinds and hands them to the
// resilient Sender. Every method is best-effort: outcomes are logged, never
// returned as errors.
type Dispatcher struct {
	Sender     Sender
	Manifest   ManifestSource
	Tickets    TicketArchive
	PilotEmail string
	DocsDir    string
	Logger     *logger.Logger
}

// SplitRecipients splits a comma/semicolon separated address list, dropping
// empties.
func SplitRecipients(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SendPassengerReceipt mails the ticket to every address on the submission,
// attaching the dangerous-goods sheet when it exists on disk.
func (d *Dispatcher) SendPassengerReceipt(sub models.Submission, ticketPDF []byte) Outcome {
	recipients := SplitRecipients(sub.Email)
	if len(recipients) == 0 {
		d.Logger.Warn("MAIL", "Passenger submission has no usable email address")
		return OutcomeSkipped
	}

	subject := fmt.Sprintf("Your BAC Helicopters Ticket — %s %s (%s)",
		sub.FlightDate, sub.Route, sub.Registration)

	body := fmt.Sprintf(`Dear %s,

Thank you for choosing BAC Helicopters.

Please find attached your ticket for the following flight:

Date: %s
Time: %s
Route: %s
Aircraft: %s
Pilot: %s

Also attached is the Dangerous Goods information sheet for your reference.

Please arrive at the designated check-in location at least 15 minutes before your scheduled departure time.

Safe travels!

BAC Helicopters
`, sub.Name, sub.FlightDate, sub.FlightTime, sub.Route, sub.Registration, sub.Pilot)

	attachments := []Attachment{{
		Filename: fmt.Sprintf("ticket_%s.pdf", strings.ReplaceAll(sub.Name, " ", "_")),
		Data:     ticketPDF,
		MIMEType: "application/pdf",
	}}

	if dg, err := os.ReadFile(filepath.Join(d.DocsDir, "dg.pdf")); err == nil {
		attachments = append(attachments, Attachment{
			Filename: "Dangerous_Goods_Information.pdf",
			Data:     dg,
			MIMEType: "application/pdf",
		})
	}

	return d.Sender.Send(recipients, subject, body, attachments)
}

// SendPilotUpdate mails the full manifest state to the configured pilot
// address. It is re-sent in full on every new passenger, not diffed.
func (d *Dispatcher) SendPilotUpdate(flightID string, summary models.FlightSummary) Outcome {
	if d.PilotEmail == "" {
		d.Logger.Warn("MAIL", "PILOT_EMAIL not configured, skipping pilot notification")
		return OutcomeSkipped
	}

	rows, err := d.Manifest.ReadAll(flightID)
	if err != nil {
		d.Logger.Error("MAIL", fmt.Sprintf("Failed to read manifest for pilot update: %v", err))
		rows = nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, `Flight Manifest Summary

Flight ID: %s
Date: %s
Time: %s
Route: %s
Registration: %s

TOTALS:
Passengers: %d
Total Body Weight: %.1f kg
Total Bag Weight: %.1f kg
Total Bags: %d

PASSENGER LIST:
`, flightID, orNA(summary.Date), orNA(summary.Time), orNA(summary.Route),
		orNA(summary.Registration), summary.PassengerCount,
		summary.TotalBodyWeight, summary.TotalBagWeight, summary.TotalBags)

	for i, row := range rows {
		dgAck := "No"
		if row.DGAck {
			dgAck = "Yes"
		}
		fmt.Fprintf(&body, "\n%d. %s", i+1, row.Name)
		fmt.Fprintf(&body, "\n   Body: %s kg   Bags: %s (%s kg)   DG Ack: %s\n",
			row.BodyWeight, row.NumBags, row.BagWeight, dgAck)
	}

	var attachments []Attachment
	if d.Tickets.HasTickets(flightID) {
		if zipped, err := d.Tickets.ZipAll(flightID); err != nil {
			d.Logger.Error("MAIL", fmt.Sprintf("Failed to zip tickets for pilot update: %v", err))
		} else {
			attachments = append(attachments, Attachment{
				Filename: fmt.Sprintf("tickets_%s.zip", flightID),
				Data:     zipped,
				MIMEType: "application/zip",
			})
		}
	}
	if csvData, err := os.ReadFile(d.Manifest.FilePath(flightID)); err == nil {
		attachments = append(attachments, Attachment{
			Filename: fmt.Sprintf("%s_manifest.csv", flightID),
			Data:     csvData,
			MIMEType: "text/csv",
		})
	}

	subject := fmt.Sprintf("Manifest — %s", flightID)
	return d.Sender.Send([]string{d.PilotEmail}, subject, body.String(), attachments)
}

// SendFlightLink mails a booking link and its QR code to the given
// recipients.
func (d *Dispatcher) SendFlightLink(fields models.FlightFields, recipients []string, shareURL string, qrPNG []byte) Outcome {
	subject := fmt.Sprintf("BAC Helicopters Flight Link — %s %s", fields.Date, fields.Route)

	body := fmt.Sprintf(`Hello,

You have been sent a flight booking link for BAC Helicopters.

Flight Details:
Date: %s
Time: %s
Route: %s
Aircraft: %s
Pilot: %s

Click the link below or scan the attached QR code to complete your ticket:
%s

Thank you,
BAC Helicopters
`, fields.Date, fields.Time, fields.Route, fields.Registration, fields.Pilot, shareURL)

	attachments := []Attachment{{
		Filename: "flight_qr.png",
		Data:     qrPNG,
		MIMEType: "image/png",
	}}

	return d.Sender.Send(recipients, subject, body, attachments)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
