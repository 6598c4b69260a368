package notify

import (
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/gomail.v2"

	"heli-ticketing/internal/config"
	"heli-ticketing/internal/flight"
	"heli-ticketing/internal/logger"
)

// Outcome distinguishes a live delivery from one parked in the outbox, and
// from one never composed at all. The caller never gets an error from Send;
// delivery failure is not fatal to the enclosing request.
type Outcome int

const (
	OutcomeDelivered Outcome = iota
	OutcomeQueued
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeQueued:
		return "queued"
	default:
		return "skipped"
	}
}

type Attachment struct {
	Filename string
	Data     []byte
	MIMEType string
}

// Sender is the shared delivery primitive the dispatchers build on.
type Sender interface {
	Send(to []string, subject, body string, attachments []Attachment) Outcome
}

// Mailer delivers over SMTP, falling back to a durable .eml file in the
// outbox directory when the transport is unconfigured or fails.
type Mailer struct {
	SMTP      config.SMTPConfig
	From      string
	OutboxDir string
	Logger    *logger.Logger
}

func NewMailer(smtp config.SMTPConfig, from, outboxDir string, log *logger.Logger) (*Mailer, error) {
	if err := os.MkdirAll(outboxDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create outbox dir: %w", err)
	}
	return &Mailer{SMTP: smtp, From: from, OutboxDir: outboxDir, Logger: log}, nil
}

func (m *Mailer) Send(to []string, subject, body string, attachments []Attachment) Outcome {
	msg := m.compose(to, subject, body, attachments)

	if m.SMTP.Configured() {
		dialer := gomail.NewDialer(m.SMTP.Host, m.SMTP.Port, m.SMTP.Username, m.SMTP.Password)
		if m.SMTP.UseTLS {
			dialer.TLSConfig = &tls.Config{ServerName: m.SMTP.Host}
		}
		if err := dialer.DialAndSend(msg); err == nil {
			m.Logger.LogMail("SEND", fmt.Sprint(to), "Delivered: "+subject)
			return OutcomeDelivered
		} else {
			m.Logger.Error("MAIL", fmt.Sprintf("SMTP delivery failed: %v", err))
		}
	} else {
		m.Logger.Warn("MAIL", "SMTP not configured, queueing message to outbox")
	}

	if path, err := m.queue(msg, subject); err != nil {
		m.Logger.Error("MAIL", fmt.Sprintf("Failed to queue message to outbox: %v", err))
	} else {
		m.Logger.LogMail("QUEUE", fmt.Sprint(to), "Saved to "+path)
	}
	return OutcomeQueued
}

func (m *Mailer) compose(to []string, subject, body string, attachments []Attachment) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	for _, att := range attachments {
		data := att.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if att.MIMEType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.MIMEType},
			}))
		}
		msg.Attach(att.Filename, settings...)
	}
	return msg
}

// queue persists the fully composed message for manual resend. The system
// never reads these back itself.
func (m *Mailer) queue(msg *gomail.Message, subject string) (string, error) {
	slug := flight.Slugify(subject)
	if len(slug) > 30 {
		slug = slug[:30]
	}
	name := fmt.Sprintf("%s_%s.eml", time.Now().Format("20060102_150405"), slug)
	path := filepath.Join(m.OutboxDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := msg.WriteTo(f); err != nil {
		return "", err
	}
	return path, nil
}
