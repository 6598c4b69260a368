package link

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heli-ticketing/internal/models"
)

func sampleFields() models.FlightFields {
	return models.FlightFields{
		Date:         "2025-01-01",
		Time:         "09:30",
		Route:        "CPT-ROBBEN",
		Registration: "ZS-ABC",
		Pilot:        "A Pilot",
	}
}

func TestBuildShareURL(t *testing.T) {
	shareURL := BuildShareURL("https://book.bachelicopters.com/", sampleFields())

	parsed, err := url.Parse(shareURL)
	require.NoError(t, err)
	assert.Equal(t, "book.bachelicopters.com", parsed.Host)
	assert.Equal(t, "/", parsed.Path)

	q := parsed.Query()
	assert.Equal(t, "2025-01-01", q.Get("date"))
	assert.Equal(t, "09:30", q.Get("time"))
	assert.Equal(t, "CPT-ROBBEN", q.Get("route"))
	assert.Equal(t, "ZS-ABC", q.Get("reg"))
	assert.Equal(t, "A Pilot", q.Get("pilot"))
}

func TestBuildShareURLIsCanonical(t *testing.T) {
	a := BuildShareURL("https://x.com", sampleFields())
	b := BuildShareURL("https://x.com/", sampleFields())
	assert.Equal(t, a, b)
}

func TestQRCodePNG(t *testing.T) {
	png, err := QRCodePNG("https://x.com/?date=2025-01-01")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sampleFields()))

	missing := sampleFields()
	missing.Pilot = ""
	assert.Error(t, Validate(missing))

	assert.Error(t, Validate(models.FlightFields{}))
}
