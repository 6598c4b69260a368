package notify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heli-ticketing/internal/config"
	"heli-ticketing/internal/logger"
)

func newTestMailer(t *testing.T, smtp config.SMTPConfig) (*Mailer, string) {
	t.Helper()
	t.Chdir(t.TempDir()) // logger writes its file under ./logs
	log := logger.NewLogger()
	t.Cleanup(log.Close)

	outbox := filepath.Join(t.TempDir(), "outbox")
	m, err := NewMailer(smtp, "noreply@bachelicopters.com", outbox, log)
	require.NoError(t, err)
	return m, outbox
}

func outboxFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSendQueuesWhenSMTPUnconfigured(t *testing.T) {
	m, outbox := newTestMailer(t, config.SMTPConfig{})

	outcome := m.Send([]string{"pax@example.com"}, "Your BAC Helicopters Ticket", "body", nil)
	assert.Equal(t, OutcomeQueued, outcome)

	files := outboxFiles(t, outbox)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], ".eml"))
	assert.Contains(t, files[0], "your-bac-helicopters-ticket")
}

func TestSendQueuesOnTransportFailure(t *testing.T) {
	// Port 1 on loopback refuses the connection immediately.
	m, outbox := newTestMailer(t, config.SMTPConfig{
		Host:     "127.0.0.1",
		Port:     1,
		Username: "user",
		Password: "pass",
	})

	outcome := m.Send([]string{"pax@example.com"}, "Manifest", "body", []Attachment{
		{Filename: "ticket.pdf", Data: []byte("%PDF-fake"), MIMEType: "application/pdf"},
	})
	assert.Equal(t, OutcomeQueued, outcome)
	assert.Len(t, outboxFiles(t, outbox), 1)
}

func TestQueuedMessageIsCompleteRFC822(t *testing.T) {
	m, outbox := newTestMailer(t, config.SMTPConfig{})

	m.Send([]string{"pax@example.com"}, "Subject Line", "hello body", []Attachment{
		{Filename: "a.txt", Data: []byte("attachment-data"), MIMEType: "text/plain"},
	})

	files := outboxFiles(t, outbox)
	require.Len(t, files, 1)

	raw, err := os.ReadFile(filepath.Join(outbox, files[0]))
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "From: noreply@bachelicopters.com")
	assert.Contains(t, content, "To: pax@example.com")
	assert.Contains(t, content, "Subject: Subject Line")
	assert.Contains(t, content, "hello body")
	assert.Contains(t, content, "a.txt")
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "delivered", OutcomeDelivered.String())
	assert.Equal(t, "queued", OutcomeQueued.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
}
