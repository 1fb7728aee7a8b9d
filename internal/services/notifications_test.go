package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
)

func testRecord(method domain.ContactMethod, info string) *domain.InquiryRecord {
	return &domain.InquiryRecord{
		ID: "rec-42",
		Inquiry: domain.Inquiry{
			Name:           "Jane <b>Doe</b>",
			ContactMethod:  method,
			ContactInfo:    info,
			PhotoshootType: domain.ShootFashion,
			Location:       "Kampala",
			NeedServices:   domain.ServicesYes,
			Budget:         "1,000 USD",
			Message:        "Editorial shoot\nTwo looks",
		},
		Status:      domain.StatusNew,
		SubmittedAt: time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC),
	}
}

func sentTo(t *testing.T, m *fakeMailer, to string) *EmailMessage {
	t.Helper()
	for _, msg := range m.sent {
		if msg.To == to {
			return msg
		}
	}
	t.Fatalf("no message sent to %s", to)
	return nil
}

func TestDispatchSubmitterAcknowledgment(t *testing.T) {
	mailer := &fakeMailer{}
	NewNotificationDispatcher(mailer, testNotify()).Dispatch(context.Background(), testRecord(domain.ContactEmail, "jane@example.com"))

	msg := sentTo(t, mailer, "jane@example.com")
	assert.Equal(t, "We received your inquiry - Portfolio", msg.Subject)
	assert.Equal(t, "studio@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Text, "24-48 hours")
	assert.Contains(t, msg.Text, "via Email at jane@example.com")
	assert.Contains(t, msg.Text, "Photoshoot type: Fashion")
	assert.Contains(t, msg.HTML, "24-48 hours")
}

func TestDispatchOperatorAlert(t *testing.T) {
	mailer := &fakeMailer{}
	NewNotificationDispatcher(mailer, testNotify()).Dispatch(context.Background(), testRecord(domain.ContactEmail, "jane@example.com"))

	msg := sentTo(t, mailer, "studio@example.com")
	assert.Equal(t, "New Inquiry: Jane <b>Doe</b> (Fashion)", msg.Subject)
	assert.Equal(t, "jane@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Text, "Inquiry ID: rec-42")
	assert.Contains(t, msg.Text, "Submitted: 2026-03-14T09:26:53.589Z")
	assert.Contains(t, msg.Text, "Additional services: Yes")
	assert.Contains(t, msg.HTML, "rec-42")
}

func TestDispatchEscapesHTML(t *testing.T) {
	mailer := &fakeMailer{}
	NewNotificationDispatcher(mailer, testNotify()).Dispatch(context.Background(), testRecord(domain.ContactEmail, "jane@example.com"))

	for _, msg := range mailer.sent {
		assert.NotContains(t, msg.HTML, "<b>Doe</b>")
		assert.Contains(t, msg.HTML, "&lt;b&gt;Doe&lt;/b&gt;")
		assert.Contains(t, msg.Text, "<b>Doe</b>")
	}
}

func TestDispatchOperatorReplyToOnlyForEmailContact(t *testing.T) {
	mailer := &fakeMailer{}
	NewNotificationDispatcher(mailer, testNotify()).Dispatch(context.Background(), testRecord(domain.ContactWhatsApp, "+256700000000"))

	msg := sentTo(t, mailer, "studio@example.com")
	assert.Empty(t, msg.ReplyTo)

	// the acknowledgment is still attempted to whatever was entered
	sentTo(t, mailer, "+256700000000")
}

func TestDispatchWithoutOperatorAddress(t *testing.T) {
	mailer := &fakeMailer{}
	notify := testNotify()
	notify.OperatorEmail = ""

	NewNotificationDispatcher(mailer, notify).Dispatch(context.Background(), testRecord(domain.ContactEmail, "jane@example.com"))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jane@example.com", mailer.sent[0].To)
}

func TestDispatchOperatorAlertWithHostileContactInfo(t *testing.T) {
	mailer := &fakeMailer{}
	rec := testRecord(domain.ContactEmail, injectedContact)
	rec.Inquiry.Name = "Jane\r\nBcc: victim@example.org"

	NewNotificationDispatcher(mailer, testNotify()).Dispatch(context.Background(), rec)

	msg := sentTo(t, mailer, "studio@example.com")
	assert.Empty(t, msg.ReplyTo)
	assert.Equal(t, "New Inquiry: Jane Bcc: victim@example.org (Fashion)", msg.Subject)
	assert.NotContains(t, msg.Subject, "\n")
}
