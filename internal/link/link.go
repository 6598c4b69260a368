package link

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"heli-ticketing/internal/models"
)

// BuildShareURL produces the canonical booking-form URL for a flight. The
// query keys match what the form handler prefills from.
func BuildShareURL(baseURL string, fields models.FlightFields) string {
	params := url.Values{}
	params.Set("date", fields.Date)
	params.Set("time", fields.Time)
	params.Set("route", fields.Route)
	params.Set("reg", fields.Registration)
	params.Set("pilot", fields.Pilot)
	return strings.TrimRight(baseURL, "/") + "/?" + params.Encode()
}

// QRCodePNG renders the share URL as a 256px medium-error-correction PNG.
func QRCodePNG(shareURL string) ([]byte, error) {
	png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// Validate rejects a share-link request with any empty flight field.
func Validate(fields models.FlightFields) error {
	if fields.Date == "" || fields.Time == "" || fields.Route == "" ||
		fields.Registration == "" || fields.Pilot == "" {
		return fmt.Errorf("all flight details are required")
	}
	return nil
}
