package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"ecohaven_backend/internal/config"
)

func TestNewFallsBackToLogMailer(t *testing.T) {
	m := New(config.SMTPConfig{})
	_, ok := m.(LogMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), SubscriptionConfirmed("a@b.co")))
}

func TestNewUsesSMTPWhenConfigured(t *testing.T) {
	m := New(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "x@example.com"})
	_, ok := m.(*SMTPMailer)
	assert.True(t, ok)
}

func TestSMTPMailerHonoursCancelledContext(t *testing.T) {
	m := New(config.SMTPConfig{Host: "smtp.example.com", Port: 587})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, SubscriptionConfirmed("a@b.co")), context.Canceled)
}

func TestTemplatesEscapeInput(t *testing.T) {
	msg := ContactForm("inbox@eco.test", "<b>x</b>", "v@eco.test", "", "hi & bye")
	assert.Equal(t, "v@eco.test", msg.ReplyTo)
	assert.Equal(t, "[Contact] Website enquiry", msg.Subject)
	assert.Contains(t, msg.HTML, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, msg.HTML, "hi &amp; bye")
}

func TestBookingConfirmedAttachesTicket(t *testing.T) {
	msg := BookingConfirmed("g@eco.test", "Jo", "Beach Cleanup", "ABC123", []byte("%PDF"))
	if assert.Len(t, msg.Attachments, 1) {
		assert.Equal(t, "ecohaven-ticket-ABC123.pdf", msg.Attachments[0].Filename)
	}
	assert.Empty(t, BookingConfirmed("g@eco.test", "Jo", "Beach Cleanup", "ABC123", nil).Attachments)
}
