package mailer

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"ecohaven_backend/internal/config"
	"ecohaven_backend/pkg/utils"
)

// Attachment is an in-memory file sent with a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outbound email.
type Message struct {
	To          string
	ReplyTo     string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer, or a LogMailer when SMTP is not configured.
func New(cfg config.SMTPConfig) Mailer {
	if !cfg.Enabled() {
		utils.LogWarn("SMTP_HOST not set, outgoing email will only be logged")
		return LogMailer{}
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	if msg.HTML != "" {
		gm.SetBody("text/html", msg.HTML)
		if msg.Text != "" {
			gm.AddAlternative("text/plain", msg.Text)
		}
	} else {
		gm.SetBody("text/plain", msg.Text)
	}
	for _, a := range msg.Attachments {
		content := a.Content
		gm.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	utils.LogInfo("Email sent", map[string]interface{}{"to": msg.To, "subject": msg.Subject})
	return nil
}

// LogMailer records messages in the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	utils.LogInfo("Mock email", map[string]interface{}{
		"to":          msg.To,
		"subject":     msg.Subject,
		"body":        msg.Text,
		"attachments": len(msg.Attachments),
	})
	return nil
}
