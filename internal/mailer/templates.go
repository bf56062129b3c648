package mailer

import (
	"fmt"
	"html"
)

func wrap(title, body string) string {
	return fmt.Sprintf(`<div style="font-family:Arial,sans-serif;color:#1d3b2a">
<h2 style="color:#2e7d32">%s</h2>
%s
<p style="color:#777;font-size:12px">EcoHaven community events</p>
</div>`, html.EscapeString(title), body)
}

// ResetCode is the password reset email.
func ResetCode(to, code string, validMinutes int) Message {
	text := fmt.Sprintf("Your EcoHaven password reset code is %s. It expires in %d minutes.", code, validMinutes)
	return Message{
		To:      to,
		Subject: "EcoHaven password reset code",
		Text:    text,
		HTML: wrap("Password reset", fmt.Sprintf(
			"<p>Your reset code is:</p><p style=\"font-size:24px;letter-spacing:4px\"><b>%s</b></p><p>It expires in %d minutes.</p>",
			html.EscapeString(code), validMinutes)),
	}
}

// SubscriptionConfirmed welcomes a newsletter subscriber.
func SubscriptionConfirmed(to string) Message {
	return Message{
		To:      to,
		Subject: "Welcome to the EcoHaven newsletter",
		Text:    "Thanks for subscribing. You will hear about upcoming events first.",
		HTML:    wrap("You're subscribed", "<p>Thanks for subscribing. You will hear about upcoming events first.</p>"),
	}
}

// RedemptionConfirmed tells the account where to pick up its reward.
func RedemptionConfirmed(to, fullName, productName, collectID string, leaves int) Message {
	text := fmt.Sprintf("Hi %s, you redeemed %s for %d leaf points. Show collection code %s at the EcoHaven counter.",
		fullName, productName, leaves, collectID)
	return Message{
		To:      to,
		Subject: "Your EcoHaven reward is ready to collect",
		Text:    text,
		HTML: wrap("Reward redeemed", fmt.Sprintf(
			"<p>Hi %s,</p><p>You redeemed <b>%s</b> for %d leaf points.</p><p>Collection code: <b>%s</b></p>",
			html.EscapeString(fullName), html.EscapeString(productName), leaves, html.EscapeString(collectID))),
	}
}

// BookingConfirmed carries the PDF ticket when one is supplied.
func BookingConfirmed(to, fullName, eventName, qrCode string, ticket []byte) Message {
	text := fmt.Sprintf("Hi %s, your booking for %s is confirmed. Your check-in code is %s.", fullName, eventName, qrCode)
	msg := Message{
		To:      to,
		Subject: "Booking confirmed: " + eventName,
		Text:    text,
		HTML: wrap("Booking confirmed", fmt.Sprintf(
			"<p>Hi %s,</p><p>Your booking for <b>%s</b> is confirmed.</p><p>Check-in code: <b>%s</b></p><p>Your ticket is attached.</p>",
			html.EscapeString(fullName), html.EscapeString(eventName), html.EscapeString(qrCode))),
	}
	if len(ticket) > 0 {
		msg.Attachments = []Attachment{{Filename: "ecohaven-ticket-" + qrCode + ".pdf", Content: ticket}}
	}
	return msg
}

// ContactForm forwards a visitor message to the contact inbox.
func ContactForm(inbox, name, email, subject, body string) Message {
	if subject == "" {
		subject = "Website enquiry"
	}
	return Message{
		To:      inbox,
		ReplyTo: email,
		Subject: "[Contact] " + subject,
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", name, email, body),
		HTML: wrap("New contact message", fmt.Sprintf("<p><b>From:</b> %s &lt;%s&gt;</p><p>%s</p>",
			html.EscapeString(name), html.EscapeString(email), html.EscapeString(body))),
	}
}
