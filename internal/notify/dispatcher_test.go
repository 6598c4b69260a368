package notify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"heli-ticketing/internal/logger"
	"heli-ticketing/internal/models"
)

// MockSender is a mock implementation of the Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(to []string, subject, body string, attachments []Attachment) Outcome {
	args := m.Called(to, subject, body, attachments)
	return args.Get(0).(Outcome)
}

type fakeManifest struct {
	rows []models.Submission
	path string
}

func (f *fakeManifest) ReadAll(flightID string) ([]models.Submission, error) { return f.rows, nil }
func (f *fakeManifest) FilePath(flightID string) string                      { return f.path }

type fakeTickets struct {
	zipData []byte
	has     bool
}

func (f *fakeTickets) ZipAll(flightID string) ([]byte, error) { return f.zipData, nil }
func (f *fakeTickets) HasTickets(flightID string) bool        { return f.has }

func newTestDispatcher(t *testing.T, sender Sender) *Dispatcher {
	t.Helper()
	t.Chdir(t.TempDir())
	log := logger.NewLogger()
	t.Cleanup(log.Close)

	manifestPath := filepath.Join(t.TempDir(), "flight.csv")
	require.NoError(t, os.WriteFile(manifestPath, []byte("header\nrow\n"), 0644))

	return &Dispatcher{
		Sender: sender,
		Manifest: &fakeManifest{
			rows: []models.Submission{
				{TicketNo: 1, Name: "J Smith", BodyWeight: "80", NumBags: "1", BagWeight: "10", DGAck: true},
			},
			path: manifestPath,
		},
		Tickets:    &fakeTickets{zipData: []byte("zip"), has: true},
		PilotEmail: "pilot@bachelicopters.com",
		DocsDir:    t.TempDir(),
		Logger:     log,
	}
}

func TestSplitRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, SplitRecipients("a@x.com, b@x.com"))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, SplitRecipients("a@x.com;b@x.com"))
	assert.Nil(t, SplitRecipients("  , ; "))
	assert.Nil(t, SplitRecipients(""))
}

func TestSendPassengerReceipt(t *testing.T) {
	sender := new(MockSender)
	d := newTestDispatcher(t, sender)

	sub := models.Submission{
		Name:         "J Smith",
		Email:        "j@x.com, partner@x.com",
		FlightDate:   "2025-01-01",
		FlightTime:   "09:30",
		Route:        "CPT-ROBBEN",
		Registration: "ZS-ABC",
		Pilot:        "A Pilot",
	}

	sender.On("Send",
		[]string{"j@x.com", "partner@x.com"},
		"Your BAC Helicopters Ticket — 2025-01-01 CPT-ROBBEN (ZS-ABC)",
		mock.MatchedBy(func(body string) bool { return len(body) > 0 }),
		mock.MatchedBy(func(atts []Attachment) bool {
			return len(atts) == 1 && atts[0].Filename == "ticket_J_Smith.pdf"
		}),
	).Return(OutcomeDelivered)

	outcome := d.SendPassengerReceipt(sub, []byte("%PDF-fake"))
	assert.Equal(t, OutcomeDelivered, outcome)
	sender.AssertExpectations(t)
}

func TestSendPassengerReceiptAttachesDGSheet(t *testing.T) {
	sender := new(MockSender)
	d := newTestDispatcher(t, sender)
	require.NoError(t, os.WriteFile(filepath.Join(d.DocsDir, "dg.pdf"), []byte("%PDF-dg"), 0644))

	sender.On("Send", mock.Anything, mock.Anything, mock.Anything,
		mock.MatchedBy(func(atts []Attachment) bool {
			return len(atts) == 2 && atts[1].Filename == "Dangerous_Goods_Information.pdf"
		}),
	).Return(OutcomeDelivered)

	d.SendPassengerReceipt(models.Submission{Name: "A", Email: "a@x.com"}, []byte("pdf"))
	sender.AssertExpectations(t)
}

func TestSendPilotUpdate(t *testing.T) {
	sender := new(MockSender)
	d := newTestDispatcher(t, sender)

	summary := models.FlightSummary{
		FlightID:        "2025-01-01_cpt-robben_zs-abc",
		PassengerCount:  1,
		TotalBodyWeight: 80,
		TotalBagWeight:  10,
		TotalBags:       1,
		Date:            "2025-01-01",
		Route:           "CPT-ROBBEN",
		Registration:    "ZS-ABC",
	}

	sender.On("Send",
		[]string{"pilot@bachelicopters.com"},
		"Manifest — 2025-01-01_cpt-robben_zs-abc",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Passengers: 1") &&
				strings.Contains(body, "J Smith") &&
				strings.Contains(body, "DG Ack: Yes")
		}),
		mock.MatchedBy(func(atts []Attachment) bool {
			// ticket zip plus the manifest CSV itself
			return len(atts) == 2 &&
				atts[0].Filename == "tickets_2025-01-01_cpt-robben_zs-abc.zip" &&
				atts[1].MIMEType == "text/csv"
		}),
	).Return(OutcomeDelivered)

	outcome := d.SendPilotUpdate("2025-01-01_cpt-robben_zs-abc", summary)
	assert.Equal(t, OutcomeDelivered, outcome)
	sender.AssertExpectations(t)
}

func TestSendPassengerReceiptSkippedWithoutRecipients(t *testing.T) {
	sender := new(MockSender)
	d := newTestDispatcher(t, sender)

	outcome := d.SendPassengerReceipt(models.Submission{Name: "A", Email: " ; , "}, []byte("pdf"))
	assert.Equal(t, OutcomeSkipped, outcome)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendPilotUpdateSkippedWithoutAddress(t *testing.T) {
	sender := new(MockSender)
	d := newTestDispatcher(t, sender)
	d.PilotEmail = ""

	outcome := d.SendPilotUpdate("2025-01-01_x_y", models.FlightSummary{})
	assert.Equal(t, OutcomeSkipped, outcome)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendFlightLink(t *testing.T) {
	sender := new(MockSender)
	d := newTestDispatcher(t, sender)

	fields := models.FlightFields{
		Date: "2025-01-01", Time: "09:30", Route: "CPT-ROBBEN",
		Registration: "ZS-ABC", Pilot: "A Pilot",
	}

	sender.On("Send",
		[]string{"guest@x.com"},
		"BAC Helicopters Flight Link — 2025-01-01 CPT-ROBBEN",
		mock.MatchedBy(func(body string) bool { return strings.Contains(body, "https://example.com/?date=2025-01-01") }),
		mock.MatchedBy(func(atts []Attachment) bool {
			return len(atts) == 1 && atts[0].Filename == "flight_qr.png"
		}),
	).Return(OutcomeQueued)

	outcome := d.SendFlightLink(fields, []string{"guest@x.com"}, "https://example.com/?date=2025-01-01", []byte("png"))
	assert.Equal(t, OutcomeQueued, outcome)
	sender.AssertExpectations(t)
}
